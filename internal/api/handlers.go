package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Spok95/smart-meter/internal/domain/billing"
	"github.com/Spok95/smart-meter/internal/domain/devices"
	"github.com/Spok95/smart-meter/internal/domain/households"
	"github.com/Spok95/smart-meter/internal/domain/notifications"
	"github.com/Spok95/smart-meter/internal/domain/thresholds"
)

// Handler serves the dashboard-facing API. It reads and writes the same
// records the simulation engine does, but runs no simulation logic.
type Handler struct {
	log           *slog.Logger
	households    *households.Repo
	devices       *devices.Repo
	thresholds    *thresholds.Repo
	bills         *billing.Repo
	notifications *notifications.Repo
}

func NewHandler(log *slog.Logger,
	householdsRepo *households.Repo, devicesRepo *devices.Repo,
	thresholdsRepo *thresholds.Repo, billsRepo *billing.Repo,
	notificationsRepo *notifications.Repo) *Handler {

	return &Handler{
		log:           log,
		households:    householdsRepo,
		devices:       devicesRepo,
		thresholds:    thresholdsRepo,
		bills:         billsRepo,
		notifications: notificationsRepo,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	existing, err := h.households.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error("register lookup failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if existing != nil {
		h.writeError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if _, err := h.households.Create(r.Context(), req.Email, string(hash)); err != nil {
		h.log.Error("register failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "User registered successfully"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.households.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error("login lookup failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		h.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Login successful", "token": u.Email})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ds, err := h.devices.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("dashboard devices failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	var totalWatts float64
	for _, d := range ds {
		totalWatts += d.PowerUsage
	}

	bills, err := h.bills.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("dashboard bills failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	var currentBill float64
	if len(bills) > 0 {
		currentBill = bills[0].Amount
	}

	latest, err := h.notifications.Latest(r.Context(), email)
	if err != nil {
		h.log.Error("dashboard notifications failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	latestMsg := "No alerts"
	if latest != nil {
		latestMsg = latest.Message
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"current_usage":       totalWatts,
		"current_bill":        currentBill,
		"latest_notification": latestMsg,
	})
}

type billJSON struct {
	Month       string  `json:"month"`
	Year        int     `json:"year"`
	Units       float64 `json:"units"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	GeneratedAt string  `json:"generated_at"`
}

func toBillJSON(b billing.Bill) billJSON {
	return billJSON{
		Month:       b.Month,
		Year:        b.Year,
		Units:       b.Units,
		Amount:      b.Amount,
		Status:      b.Status,
		GeneratedAt: b.GeneratedAt.Format("2006-01-02 15:04:05"),
	}
}

func (h *Handler) BillingHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	bills, err := h.bills.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("billing history failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	out := make([]billJSON, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillJSON(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Month string `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Month == "" {
		h.writeError(w, http.StatusBadRequest, "Email and month are required")
		return
	}

	paid, err := h.bills.MarkPaid(r.Context(), req.Email, req.Month)
	if err != nil {
		h.log.Error("pay bill failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if !paid {
		h.writeError(w, http.StatusNotFound, "No unpaid bill found for this month")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Bill paid successfully!"})
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ns, err := h.notifications.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("notifications failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	type notifJSON struct {
		Message   string  `json:"message"`
		Type      string  `json:"type"`
		Timestamp float64 `json:"timestamp"`
		Month     string  `json:"month"`
		Year      int     `json:"year"`
	}
	out := make([]notifJSON, 0, len(ns))
	for _, n := range ns {
		out = append(out, notifJSON{
			Message:   n.Message,
			Type:      n.Type,
			Timestamp: float64(n.Timestamp.UnixMilli()) / 1000,
			Month:     n.Month,
			Year:      n.Year,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) SetThreshold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string      `json:"email"`
		Threshold json.Number `json:"threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		h.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	limit, err := parseThreshold(req.Threshold)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Threshold must be a positive integer")
		return
	}
	if err := h.thresholds.Set(r.Context(), req.Email, limit); err != nil {
		h.log.Error("set threshold failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Threshold updated successfully!"})
}

func (h *Handler) AddDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string   `json:"email"`
		DeviceName string   `json:"device_name"`
		PowerUsage *float64 `json:"power_usage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.DeviceName == "" {
		h.writeError(w, http.StatusBadRequest, "Email and device_name are required")
		return
	}

	power := devices.PresetPower(req.DeviceName)
	if req.PowerUsage != nil {
		power = *req.PowerUsage
	}
	if _, err := h.devices.Add(r.Context(), req.Email, req.DeviceName, power); err != nil {
		h.log.Error("add device failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Device added successfully!"})
}

func (h *Handler) UserDevices(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ds, err := h.devices.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("user devices failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	type deviceJSON struct {
		DeviceName string  `json:"device_name"`
		PowerUsage float64 `json:"power_usage"`
	}
	out := make([]deviceJSON, 0, len(ds))
	for _, d := range ds {
		out = append(out, deviceJSON{DeviceName: d.Name, PowerUsage: d.PowerUsage})
	}
	writeJSON(w, http.StatusOK, out)
}
