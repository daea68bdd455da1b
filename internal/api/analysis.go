package api

import (
	"math"
	"net/http"
	"sort"

	"github.com/Spok95/smart-meter/internal/sim"
)

type trendEntry struct {
	Month  string  `json:"month"`
	Units  float64 `json:"units"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

type analysisSummary struct {
	TotalUnits       float64 `json:"total_units"`
	TotalPaid        float64 `json:"total_paid"`
	UnpaidBills      int     `json:"unpaid_bills"`
	ThresholdCrosses int     `json:"threshold_crosses"`
	Threshold        int     `json:"threshold"`
}

// Analysis aggregates a household's bills into a monthly trend plus a
// summary against its threshold.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	bills, err := h.bills.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("analysis bills failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if len(bills) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "No billing data found."})
		return
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].GeneratedAt.Before(bills[j].GeneratedAt) })

	threshold, ok, err := h.thresholds.Get(r.Context(), email)
	if err != nil {
		h.log.Error("analysis threshold failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if !ok {
		threshold = sim.DefaultThreshold
	}

	trend := make([]trendEntry, 0, len(bills))
	var sum analysisSummary
	sum.Threshold = threshold
	for _, b := range bills {
		units := round2(b.Units)
		amount := round2(b.Amount)
		trend = append(trend, trendEntry{Month: b.Month, Units: units, Amount: amount, Status: b.Status})

		sum.TotalUnits += units
		if b.Status == "Paid" {
			sum.TotalPaid += amount
		} else {
			sum.UnpaidBills++
		}
		if units > float64(threshold) {
			sum.ThresholdCrosses++
		}
	}
	sum.TotalUnits = round2(sum.TotalUnits)
	sum.TotalPaid = round2(sum.TotalPaid)

	ds, err := h.devices.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("analysis devices failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	type deviceJSON struct {
		DeviceName string  `json:"device_name"`
		PowerUsage float64 `json:"power_usage"`
	}
	deviceData := make([]deviceJSON, 0, len(ds))
	for _, d := range ds {
		deviceData = append(deviceData, deviceJSON{DeviceName: d.Name, PowerUsage: d.PowerUsage})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"monthly_trend": trend,
		"summary":       sum,
		"devices":       deviceData,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
