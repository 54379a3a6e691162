package admin

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cuure-health/booking-bot/pkg/logging"
)

//go:embed static
var staticFS embed.FS

const exportSheet = "Appointments"

var exportHeader = []string{"ID", "Phone", "Name", "Date", "Time Slot", "Time (24h)", "Booked At"}

// Handler serves the dashboard endpoints.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler wires the dashboard handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("admin: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

type listResponse struct {
	Success bool                `json:"success"`
	Data    []AppointmentRecord `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
}

// ListAppointments returns every appointment, newest first.
// GET /api/admin/appointments
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("admin listing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, listResponse{
			Success: false,
			Message: "Failed to fetch appointments",
		})
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: records})
}

// ExportAppointments streams the appointment book as a spreadsheet.
// GET /api/admin/appointments/export
func (h *Handler) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ExportRows(r.Context())
	if err != nil {
		h.logger.Error("admin export failed", "error", err)
		http.Error(w, "Failed to export appointments", http.StatusInternalServerError)
		return
	}

	file, err := BuildWorkbook(records)
	if err != nil {
		h.logger.Error("admin export failed", "error", err)
		http.Error(w, "Failed to export appointments", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("appointments_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := file.Write(w); err != nil {
		h.logger.Error("admin export write failed", "error", err)
	}
}

// Dashboard serves the static admin UI.
// GET /admin
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/admin.html")
	if err != nil {
		h.logger.Error("admin page missing", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// BuildWorkbook renders export rows into a spreadsheet. The export command
// uses it too.
func BuildWorkbook(records []ExportRow) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("admin: rename sheet: %w", err)
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("admin: header cell: %w", err)
		}
		if err := file.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, fmt.Errorf("admin: write header: %w", err)
		}
	}

	for i, rec := range records {
		values := []any{rec.ID, rec.Phone, rec.PatientName, rec.Date, rec.TimeLabel, rec.TimeValue, rec.BookedAt}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("admin: row cell: %w", err)
			}
			if err := file.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("admin: write row: %w", err)
			}
		}
	}
	return file, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
