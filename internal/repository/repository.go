// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/emogo-app/emogo-server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("record not found")
)

// RecordRepository defines the interface for stored-record operations.
// Records are append-only: there are no update or delete operations.
type RecordRepository interface {
	// InsertBatch persists the ordered sequence in a single bulk call and
	// returns the number of records inserted. An empty input is legal and
	// returns 0 without contacting the store. The insert is best-effort,
	// not transactional: a mid-batch failure leaves earlier documents in
	// place and surfaces the store error.
	InsertBatch(ctx context.Context, records []*models.StoredRecord) (int, error)

	// ListAllSortedByTimestamp returns every stored record in ascending
	// timestamp order. Ties are returned in store-native order, which is
	// non-deterministic for equal timestamps.
	ListAllSortedByTimestamp(ctx context.Context) ([]*models.StoredRecord, error)

	// FindByID resolves one record by its store-assigned identity.
	// Returns ErrNotFound when no record has that identity.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoredRecord, error)
}
