// FilePath: api/resources/api.resource.records_test.go
package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emogo-app/emogo-server/internal/errors"
	"github.com/emogo-app/emogo-server/internal/models"
	"github.com/emogo-app/emogo-server/internal/monitoring"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) IngestBatch(ctx context.Context, batch *models.Batch) (int, error) {
	args := m.Called(ctx, batch)
	return args.Int(0), args.Error(1)
}

func (m *mockService) ListRecords(ctx context.Context) ([]*models.StoredRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StoredRecord), args.Error(1)
}

func (m *mockService) ResolveVideo(ctx context.Context, idHex string) (*models.StoredRecord, []byte, error) {
	args := m.Called(ctx, idHex)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.StoredRecord), args.Get(1).([]byte), args.Error(2)
}

func newTestResources(svc RecordService) *Resources {
	return NewResources(svc, monitoring.NewService())
}

func TestSubmitRecords_Success(t *testing.T) {
	svc := new(mockService)
	svc.On("IngestBatch", mock.Anything, mock.MatchedBy(func(b *models.Batch) bool {
		return len(b.Records) == 2 && b.RecordCount == 2
	})).Return(2, nil)
	res := newTestResources(svc)

	body := `{
		"exportDate": "2024-07-01T09:00:00",
		"recordCount": 2,
		"records": [
			{"id":1,"sentiment":"happy","sentimentValue":4,"timestamp":"2024-07-01T08:00:00","videoPath":"/a.mp4"},
			{"id":2,"sentiment":"tired","sentimentValue":2,"timestamp":"2024-07-01T08:30:00","videoPath":"/b.mp4"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(body))
	rr := httptest.NewRecorder()
	res.Records.SubmitRecords(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["inserted"])
	assert.Equal(t, "Successfully inserted 2 record(s)", resp["message"])
	svc.AssertExpectations(t)
}

func TestSubmitRecords_EmptyBatch(t *testing.T) {
	svc := new(mockService)
	svc.On("IngestBatch", mock.Anything, mock.Anything).Return(0, nil)
	res := newTestResources(svc)

	body := `{"exportDate":"2024-07-01T09:00:00","recordCount":0,"records":[]}`
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(body))
	rr := httptest.NewRecorder()
	res.Records.SubmitRecords(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["inserted"])
	assert.Equal(t, "No records to insert", resp["message"])
}

func TestSubmitRecords_MalformedBody(t *testing.T) {
	svc := new(mockService)
	res := newTestResources(svc)

	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	res.Records.SubmitRecords(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, errors.ErrorTypeValidation, apiErr.Type)
	svc.AssertNotCalled(t, "IngestBatch", mock.Anything, mock.Anything)
}

func TestSubmitRecords_InvalidRecordShape(t *testing.T) {
	svc := new(mockService)
	res := newTestResources(svc)

	// Missing sentiment: rejected before the store is reached
	body := `{
		"exportDate": "2024-07-01T09:00:00",
		"recordCount": 1,
		"records": [{"id":1,"sentimentValue":4,"timestamp":"2024-07-01T08:00:00","videoPath":""}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(body))
	rr := httptest.NewRecorder()
	res.Records.SubmitRecords(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "IngestBatch", mock.Anything, mock.Anything)
}

func TestSubmitRecords_StoreFailure(t *testing.T) {
	svc := new(mockService)
	svc.On("IngestBatch", mock.Anything, mock.Anything).
		Return(0, errors.NewStoreError("failed to insert records", assert.AnError))
	res := newTestResources(svc)

	body := `{
		"exportDate": "2024-07-01T09:00:00",
		"recordCount": 1,
		"records": [{"id":1,"sentiment":"happy","sentimentValue":4,"timestamp":"2024-07-01T08:00:00","videoPath":""}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(body))
	rr := httptest.NewRecorder()
	res.Records.SubmitRecords(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, errors.ErrorTypeStore, apiErr.Type)
}

func TestSubmitRecords_StoreFailureStillCountsBatch(t *testing.T) {
	svc := new(mockService)
	svc.On("IngestBatch", mock.Anything, mock.Anything).
		Return(0, errors.NewStoreError("failed to insert records", assert.AnError))
	mon := monitoring.NewService()
	res := NewResources(svc, mon)

	body := `{
		"exportDate": "2024-07-01T09:00:00",
		"recordCount": 1,
		"records": [{"id":1,"sentiment":"happy","sentimentValue":4,"timestamp":"2024-07-01T08:00:00","videoPath":""}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(body))
	rr := httptest.NewRecorder()
	res.Records.SubmitRecords(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	// The batch was received even though the store call failed
	metrics := httptest.NewRecorder()
	mon.Handler().ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metrics.Body.String(), "emogo_batches_received_total 1")
	assert.Contains(t, metrics.Body.String(), "emogo_store_errors_total 1")
}

func videoRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/records/"+id+"/video", nil)
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestGetRecordVideo_Success(t *testing.T) {
	payload := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}
	record := &models.StoredRecord{
		Record:     models.Record{LocalID: 7, Sentiment: "happy"},
		ExportDate: time.Now(),
	}

	svc := new(mockService)
	svc.On("ResolveVideo", mock.Anything, "66a0b1c2d3e4f5a6b7c8d9e0").Return(record, payload, nil)
	res := newTestResources(svc)

	rr := httptest.NewRecorder()
	res.Records.GetRecordVideo(rr, videoRequest("66a0b1c2d3e4f5a6b7c8d9e0"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "video/mp4", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="emogo_record_7.mp4"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, payload, rr.Body.Bytes())
}

func TestGetRecordVideo_InvalidIdentity(t *testing.T) {
	svc := new(mockService)
	svc.On("ResolveVideo", mock.Anything, "zzz").
		Return(nil, nil, errors.NewInvalidIDError("invalid record id", assert.AnError))
	res := newTestResources(svc)

	rr := httptest.NewRecorder()
	res.Records.GetRecordVideo(rr, videoRequest("zzz"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, errors.ErrorTypeInvalidID, apiErr.Type)
}

func TestGetRecordVideo_NotFoundVariants(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"record missing", "record not found"},
		{"video missing", "no video stored for this record"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("ResolveVideo", mock.Anything, mock.Anything).
				Return(nil, nil, errors.NewNotFoundError(tc.message, nil))
			res := newTestResources(svc)

			rr := httptest.NewRecorder()
			res.Records.GetRecordVideo(rr, videoRequest("66a0b1c2d3e4f5a6b7c8d9e0"))

			assert.Equal(t, http.StatusNotFound, rr.Code)

			var apiErr errors.APIError
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
			assert.Equal(t, tc.message, apiErr.Message)
		})
	}
}

func TestGetRecordVideo_DecodeFailure(t *testing.T) {
	svc := new(mockService)
	svc.On("ResolveVideo", mock.Anything, mock.Anything).
		Return(nil, nil, errors.NewDecodeError("error decoding video", assert.AnError))
	res := newTestResources(svc)

	rr := httptest.NewRecorder()
	res.Records.GetRecordVideo(rr, videoRequest("66a0b1c2d3e4f5a6b7c8d9e0"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRoot_ListsCapabilities(t *testing.T) {
	res := newTestResources(new(mockService))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	res.Root(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Emogo backend is running", resp["message"])
	assert.Contains(t, resp["endpoints"], "POST /records")
}
