// FilePath: api/resources/api.resource.export.go
package resources

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/emogo-app/emogo-server/internal/errors"
	"github.com/emogo-app/emogo-server/internal/export"
	"github.com/emogo-app/emogo-server/internal/monitoring"
	"github.com/emogo-app/emogo-server/internal/timefmt"
	nuts "github.com/vaudience/go-nuts"
)

//go:embed templates/export.html
var templateFS embed.FS

var exportTemplate = template.Must(
	template.New("export.html").
		Funcs(template.FuncMap{"now": timefmt.Now}).
		ParseFS(templateFS, "templates/export.html"),
)

// ExportHandlers encapsulates the export-view HTTP handlers
type ExportHandlers struct {
	service    RecordService
	monitoring *monitoring.Service
}

// @Summary View all records as an HTML table
// @Description Render every stored record, oldest first, with video download links
// @Tags export
// @Produce html
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /export [get]
func (h *ExportHandlers) ExportHTML(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListRecords(r.Context())
	if err != nil {
		h.monitoring.RecordStoreError()
		respondWithHTMLError(w, err)
		return
	}

	h.monitoring.RecordExport("html")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := exportTemplate.Execute(w, export.BuildRows(records)); err != nil {
		nuts.L.Errorf("[ExportHandlers] Failed to render export table: %v", err)
	}
}

// @Summary Download all records as CSV
// @Description One row per stored record, oldest first, fixed column order
// @Tags export
// @Produce text/csv
// @Success 200 {string} string
// @Failure 500 {object} errors.APIError
// @Router /export/csv [get]
func (h *ExportHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	records, err := h.service.ListRecords(r.Context())
	if err != nil {
		h.monitoring.RecordStoreError()
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	h.monitoring.RecordExport("csv")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.CSVFilename))
	if err := export.WriteCSV(w, export.BuildRows(records)); err != nil {
		nuts.L.Errorf("[ExportHandlers] Failed to write CSV: %v", err)
	}
}

// respondWithHTMLError writes a minimal HTML error fragment with a proper
// error status.
func respondWithHTMLError(w http.ResponseWriter, err error) {
	apiErr := errors.AsAPIError(err)
	nuts.L.Errorf("[API] %s", apiErr.Error())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(apiErr.Code)
	fmt.Fprintf(w, "<h1>Error</h1><p>%s</p>", template.HTMLEscapeString(apiErr.Message))
}
