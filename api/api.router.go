// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/emogo-app/emogo-server/api/resources"
	"github.com/emogo-app/emogo-server/internal/monitoring"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc resources.RecordService, mon *monitoring.Service) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc, mon),
	}

	r.setupRoutes(mon)
	return r
}

func (r *Router) setupRoutes(mon *monitoring.Service) {
	// Capability listing, doubles as the mobile client's liveness check
	r.router.HandleFunc("/", r.resources.Root).Methods(http.MethodGet)
	r.router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.router.Handle("/metrics", mon.Handler()).Methods(http.MethodGet)

	// Records
	r.router.HandleFunc("/records", r.resources.Records.SubmitRecords).Methods(http.MethodPost)
	r.router.HandleFunc("/records/{id}/video", r.resources.Records.GetRecordVideo).Methods(http.MethodGet)

	// Exports
	r.router.HandleFunc("/export", r.resources.Export.ExportHTML).Methods(http.MethodGet)
	r.router.HandleFunc("/export/csv", r.resources.Export.ExportCSV).Methods(http.MethodGet)
}

// handleHealth returns a simple health check response
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
