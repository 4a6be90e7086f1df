// FilePath: api/resources/api.resource.records.go
package resources

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/emogo-app/emogo-server/internal/errors"
	"github.com/emogo-app/emogo-server/internal/models"
	"github.com/emogo-app/emogo-server/internal/monitoring"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// RecordHandlers encapsulates the record-related HTTP handlers
type RecordHandlers struct {
	service    RecordService
	monitoring *monitoring.Service
}

// @Summary Submit emotion records
// @Description Receive a batch of emotion records from the mobile client
// @Tags records
// @Accept json
// @Produce json
// @Param batch body models.Batch true "Record batch"
// @Success 200 {object} map[string]any
// @Failure 400 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /records [post]
func (h *RecordHandlers) SubmitRecords(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var batch models.Batch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := batch.Validate(); err != nil {
		respondWithError(w, errors.NewValidationError(err.Error(), nil).WithRequestID(requestID))
		return
	}

	h.monitoring.RecordBatchReceived()

	inserted, err := h.service.IngestBatch(r.Context(), &batch)
	if err != nil {
		h.monitoring.RecordStoreError()
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	h.monitoring.RecordIngest(inserted)

	message := fmt.Sprintf("Successfully inserted %d record(s)", inserted)
	if inserted == 0 {
		message = "No records to insert"
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"inserted": inserted,
		"message":  message,
	})
}

// @Summary Download a record's video
// @Description Stream the video stored for a record, resolved by its store identity
// @Tags records
// @Produce video/mp4
// @Param id path string true "Store identity (ObjectID hex)"
// @Success 200 {file} file
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /records/{id}/video [get]
func (h *RecordHandlers) GetRecordVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)
	id := vars["id"]

	record, video, err := h.service.ResolveVideo(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	h.monitoring.RecordVideoServed()

	// The filename reuses the client's own sequence number. It is cosmetic
	// and may collide across stored records; the lookup key is the path id.
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="emogo_record_%d.mp4"`, record.LocalID))
	w.Header().Set("Content-Length", strconv.Itoa(len(video)))
	if _, err := w.Write(video); err != nil {
		nuts.L.Errorf("[RecordHandlers] Failed to stream video for record %s: %v", id, err)
	}
}

// Helper functions

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
