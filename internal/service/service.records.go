// FilePath: internal/service/service.records.go
package service

import (
	"context"

	"github.com/emogo-app/emogo-server/internal/errors"
	"github.com/emogo-app/emogo-server/internal/models"
	"github.com/emogo-app/emogo-server/internal/repository"
	"github.com/emogo-app/emogo-server/internal/videocodec"
	nuts "github.com/vaudience/go-nuts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngestBatch stamps every record with the batch's export date and submits
// the ordered sequence to the store in one call. An empty records list is
// legal and reports 0 without touching the store.
func (s *RecordService) IngestBatch(ctx context.Context, batch *models.Batch) (int, error) {
	if batch.RecordCount != len(batch.Records) {
		// Advisory metadata only; the client-reported count is never
		// validated against the actual list length.
		nuts.L.Infof("[RecordService] Batch reports %d record(s), payload carries %d", batch.RecordCount, len(batch.Records))
	}

	stored := make([]*models.StoredRecord, len(batch.Records))
	for i, rec := range batch.Records {
		stored[i] = &models.StoredRecord{
			Record:     rec,
			ExportDate: batch.ExportDate,
		}
	}

	return s.records.InsertBatch(ctx, stored)
}

// ListRecords returns the full corpus in ascending timestamp order.
func (s *RecordService) ListRecords(ctx context.Context) ([]*models.StoredRecord, error) {
	return s.records.ListAllSortedByTimestamp(ctx)
}

// ResolveVideo resolves a record by its store identity string and returns
// the record together with its decoded video bytes. "record not found" and
// "no video stored" are distinct error kinds even though both map to 404.
func (s *RecordService) ResolveVideo(ctx context.Context, idHex string) (*models.StoredRecord, []byte, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, nil, errors.NewInvalidIDError("invalid record id", err)
	}

	record, err := s.records.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, nil, errors.NewNotFoundError("record not found", err)
	}
	if err != nil {
		return nil, nil, err
	}

	if record.VideoBase64 == "" {
		return nil, nil, errors.NewNotFoundError("no video stored for this record", nil)
	}

	video, err := videocodec.Decode(record.VideoBase64)
	if err != nil {
		return nil, nil, errors.NewDecodeError("error decoding video", err)
	}
	return record, video, nil
}
