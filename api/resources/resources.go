// FilePath: api/resources/resources.go
package resources

import (
	"context"
	"net/http"

	"github.com/emogo-app/emogo-server/internal/models"
	"github.com/emogo-app/emogo-server/internal/monitoring"
)

// RecordService is the service surface the handlers depend on.
type RecordService interface {
	IngestBatch(ctx context.Context, batch *models.Batch) (int, error)
	ListRecords(ctx context.Context) ([]*models.StoredRecord, error)
	ResolveVideo(ctx context.Context, idHex string) (*models.StoredRecord, []byte, error)
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Records *RecordHandlers
	Export  *ExportHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc RecordService, mon *monitoring.Service) *Resources {
	return &Resources{
		Records: &RecordHandlers{service: svc, monitoring: mon},
		Export:  &ExportHandlers{service: svc, monitoring: mon},
	}
}

// Root lists the service capabilities, doubling as a liveness probe for
// the mobile client.
func (r *Resources) Root(w http.ResponseWriter, req *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Emogo backend is running",
		"endpoints": map[string]string{
			"POST /records":           "Submit emotion records from the app",
			"GET /export":             "View all records as HTML table",
			"GET /export/csv":         "Download all records as CSV file",
			"GET /records/{id}/video": "Download the video stored for a record",
		},
	})
}
