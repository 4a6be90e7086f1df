// FilePath: internal/models/models.record.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record represents a single emotion observation captured on-device.
// LocalID is the client's own sequence number; it is only unique within
// one client's batch and is never used for lookups.
type Record struct {
	LocalID        int       `json:"id" bson:"id"`
	Sentiment      string    `json:"sentiment" bson:"sentiment"`
	SentimentValue int       `json:"sentimentValue" bson:"sentimentValue"`
	Latitude       *float64  `json:"latitude" bson:"latitude"`
	Longitude      *float64  `json:"longitude" bson:"longitude"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
	VideoPath      string    `json:"videoPath" bson:"videoPath"`
	VideoBase64    string    `json:"videoBase64,omitempty" bson:"videoBase64,omitempty"`
}

// Batch represents one upload transaction from the mobile client.
// RecordCount is client-reported and advisory only; it is never validated
// against len(Records).
type Batch struct {
	ExportDate  time.Time `json:"exportDate"`
	RecordCount int       `json:"recordCount"`
	Records     []Record  `json:"records"`
}

// StoredRecord is a Record persisted with the batch's export date and the
// store-assigned identity. ID is the only globally unique key.
type StoredRecord struct {
	ID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Record     `bson:",inline"`
	ExportDate time.Time `json:"exportDate" bson:"exportDate"`
}

// Validate checks the batch shape before it reaches the store.
// An empty records list is legal.
func (b *Batch) Validate() error {
	if b.ExportDate.IsZero() {
		return fmt.Errorf("exportDate is required")
	}
	for i, rec := range b.Records {
		if rec.Sentiment == "" {
			return fmt.Errorf("record %d: sentiment is required", i)
		}
		if rec.Timestamp.IsZero() {
			return fmt.Errorf("record %d: timestamp is required", i)
		}
	}
	return nil
}

// clientTime unmarshals the timestamp formats the mobile client emits:
// RFC3339 with offset, or an offset-less local form that is taken as UTC.
type clientTime time.Time

// Layouts tried in order. Fractional seconds are covered by the
// .999999999 variants.
var clientTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (ct *clientTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ct = clientTime(time.Time{})
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		*ct = clientTime(time.Time{})
		return nil
	}
	t, err := ParseClientTime(raw)
	if err != nil {
		return err
	}
	*ct = clientTime(t)
	return nil
}

// ParseClientTime parses a client-supplied instant. Values without an
// explicit offset are interpreted as UTC, never as the display timezone.
func ParseClientTime(raw string) (time.Time, error) {
	for _, layout := range clientTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// UnmarshalJSON decodes a Record, accepting offset-less timestamps.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		Timestamp clientTime `json:"timestamp"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Timestamp = time.Time(aux.Timestamp)
	return nil
}

// UnmarshalJSON decodes a Batch, accepting offset-less export dates.
func (b *Batch) UnmarshalJSON(data []byte) error {
	type alias Batch
	aux := struct {
		ExportDate clientTime `json:"exportDate"`
		*alias
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.ExportDate = time.Time(aux.ExportDate)
	return nil
}
