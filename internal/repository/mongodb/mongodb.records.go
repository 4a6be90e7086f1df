// FilePath: internal/repository/mongodb/mongodb.records.go
package mongodb

import (
	"context"
	"time"

	"github.com/emogo-app/emogo-server/internal/database"
	"github.com/emogo-app/emogo-server/internal/errors"
	"github.com/emogo-app/emogo-server/internal/models"
	"github.com/emogo-app/emogo-server/internal/repository"
	nuts "github.com/vaudience/go-nuts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordRepository is the MongoDB-backed implementation of
// repository.RecordRepository. Sorting by timestamp needs no secondary
// index at this corpus size; adding one is an operational concern.
type RecordRepository struct {
	db           database.DB
	queryTimeout time.Duration
}

// NewRecordRepository creates a new MongoDB record repository
func NewRecordRepository(db database.DB, queryTimeout time.Duration) *RecordRepository {
	return &RecordRepository{db: db, queryTimeout: queryTimeout}
}

func (r *RecordRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

// InsertBatch issues a single ordered InsertMany for the whole batch.
func (r *RecordRepository) InsertBatch(ctx context.Context, records []*models.StoredRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(records))
	for i, rec := range records {
		docs[i] = rec
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.Collection().InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, errors.NewStoreError("failed to insert records", err)
	}

	nuts.L.Infof("[RecordRepository] Inserted %d record(s)", len(result.InsertedIDs))
	return len(result.InsertedIDs), nil
}

// timestampAscending is the sort specification for full scans: oldest
// first, ties left in store-native order.
var timestampAscending = bson.D{{Key: "timestamp", Value: 1}}

// ListAllSortedByTimestamp scans the full collection ascending by timestamp.
func (r *RecordRepository) ListAllSortedByTimestamp(ctx context.Context) ([]*models.StoredRecord, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	findOpts := options.Find().SetSort(timestampAscending)
	cursor, err := r.db.Collection().Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, errors.NewStoreError("failed to query records", err)
	}
	defer cursor.Close(ctx)

	records := make([]*models.StoredRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.NewStoreError("failed to read records", err)
	}
	return records, nil
}

// FindByID resolves one record by its store-assigned ObjectID.
func (r *RecordRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoredRecord, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var record models.StoredRecord
	err := r.db.Collection().FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, errors.NewStoreError("failed to look up record", err)
	}
	return &record, nil
}
