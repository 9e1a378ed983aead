package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// Export handles GET /api/export: an XLSX workbook with the roster and
// the earnings ledger on separate sheets.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Clients")
	clientHeader := []any{"Client ID", "Name", "Email", "Phone", "Age", "Status", "Sessions", "Created"}
	if err := f.SetSheetRow("Clients", "A1", &clientHeader); err != nil {
		writeError(w, err)
		return
	}
	for i, c := range h.svc.Clients(r.Context()) {
		row := []any{
			c.ClientID,
			c.Name,
			c.Email,
			c.Phone,
			c.Age,
			c.Status,
			c.SessionCount,
			time.UnixMilli(c.CreatedAt).Format("2006-01-02"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Clients", cell, &row); err != nil {
			writeError(w, err)
			return
		}
	}

	if _, err := f.NewSheet("Earnings"); err != nil {
		writeError(w, err)
		return
	}
	earningHeader := []any{"Date", "Amount", "Recorded"}
	if err := f.SetSheetRow("Earnings", "A1", &earningHeader); err != nil {
		writeError(w, err)
		return
	}
	for i, e := range h.svc.Earnings(r.Context()) {
		// Month is stored zero-based.
		row := []any{
			fmt.Sprintf("%04d-%02d-%02d", e.Year, e.Month+1, e.Day),
			e.Amount,
			time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow("Earnings", cell, &row); err != nil {
			writeError(w, err)
			return
		}
	}

	name := fmt.Sprintf("therapy-notes-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := f.Write(w); err != nil {
		// Headers are already out; nothing more to send the client.
		slog.Error("export write failed", slog.String("error", err.Error()))
	}
}
