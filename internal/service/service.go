// FilePath: internal/service/service.go
package service

import (
	"github.com/emogo-app/emogo-server/internal/errors"
	"github.com/emogo-app/emogo-server/internal/repository"
)

// RecordService owns the ingestion and retrieval semantics on top of the
// record repository.
type RecordService struct {
	records repository.RecordRepository
}

// New creates a new RecordService instance
func New(records repository.RecordRepository) *RecordService {
	return &RecordService{records: records}
}

// Validate checks if all required repositories are initialized
func (s *RecordService) Validate() error {
	if s.records == nil {
		return ErrMissingRepository("records")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
