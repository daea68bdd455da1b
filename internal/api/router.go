package api

import "net/http"

// Routes mirrors the dashboard SPA's API surface.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", h.Register)
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("GET /api/dashboard", h.Dashboard)
	mux.HandleFunc("GET /api/billing_history", h.BillingHistory)
	mux.HandleFunc("GET /api/billing_history/export", h.ExportBillingHistory)
	mux.HandleFunc("POST /api/pay_bill", h.PayBill)
	mux.HandleFunc("GET /api/notifications", h.Notifications)
	mux.HandleFunc("POST /api/set_threshold", h.SetThreshold)
	mux.HandleFunc("POST /api/add_device", h.AddDevice)
	mux.HandleFunc("GET /api/user_devices", h.UserDevices)
	mux.HandleFunc("GET /api/analysis", h.Analysis)

	return mux
}
