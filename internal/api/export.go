package api

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

// ExportBillingHistory streams the household's bills as an Excel file.
func (h *Handler) ExportBillingHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	bills, err := h.bills.ListByHousehold(r.Context(), email)
	if err != nil {
		h.log.Error("export bills failed", "err", err)
		h.writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"month", "year", "units", "amount", "status", "generated_at"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to build file")
		return
	}

	row := 2
	for _, b := range bills {
		excelRow := []interface{}{
			b.Month,
			b.Year,
			b.Units,
			b.Amount,
			b.Status,
			b.GeneratedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "Failed to build file")
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			h.writeError(w, http.StatusInternalServerError, "Failed to build file")
			return
		}
		row++
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "billing_history.xlsx"))
	if err := f.Write(w); err != nil {
		h.log.Error("export write failed", "err", err)
	}
}
