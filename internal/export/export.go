// FilePath: internal/export/export.go

// Package export builds the flat display rows shared by the HTML table and
// the CSV download, and writes the CSV form.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/emogo-app/emogo-server/internal/models"
	"github.com/emogo-app/emogo-server/internal/timefmt"
)

// CSVFilename is the fixed attachment name for the CSV download.
const CSVFilename = "emogo_records.csv"

// CSVHeader is the fixed, ordered CSV header. Labels are cosmetic; column
// order and count are contractual.
var CSVHeader = []string{
	"ID",
	"心情",
	"心情值",
	"緯度",
	"經度",
	"記錄時間（台北時間）",
	"上傳時間（台北時間）",
	"影片路徑",
}

// Row is one denormalized display row: every instant pre-formatted in the
// display timezone, optional coordinates coerced to empty strings.
type Row struct {
	// StoreID is the hex form of the store-assigned identity; it keys the
	// video download link.
	StoreID string
	// LocalID is the client-assigned sequence number, shown and used in
	// the video attachment filename only.
	LocalID        int
	Sentiment      string
	SentimentValue int
	Latitude       string
	Longitude      string
	Timestamp      string
	ExportDate     string
	VideoPath      string
	HasVideo       bool
}

// BuildRows maps stored records to display rows, preserving order.
func BuildRows(records []*models.StoredRecord) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			StoreID:        rec.ID.Hex(),
			LocalID:        rec.LocalID,
			Sentiment:      rec.Sentiment,
			SentimentValue: rec.SentimentValue,
			Latitude:       formatCoord(rec.Latitude),
			Longitude:      formatCoord(rec.Longitude),
			Timestamp:      timefmt.Format(rec.Timestamp),
			ExportDate:     timefmt.Format(rec.ExportDate),
			VideoPath:      rec.VideoPath,
			HasVideo:       rec.VideoBase64 != "",
		}
	}
	return rows
}

// WriteCSV writes the header and one row per record. The ID column carries
// the client-assigned local id, matching the mobile app's own numbering.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		err := cw.Write([]string{
			strconv.Itoa(row.LocalID),
			row.Sentiment,
			strconv.Itoa(row.SentimentValue),
			row.Latitude,
			row.Longitude,
			row.Timestamp,
			row.ExportDate,
			row.VideoPath,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
