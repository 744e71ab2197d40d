package loader

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// ReadCSV parses activity records from a CSV stream. The first row is the
// header; columns are matched by normalized name and unknown columns are
// ignored. Rows with fewer fields than the header are still mapped as far as
// they go.
func ReadCSV(r io.Reader) ([]model.ActivityRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "loader: read CSV header")
	}
	cols := normalizeHeader(header)

	var records []model.ActivityRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "loader: read CSV row")
		}
		records = append(records, rowToRecord(cols, row))
	}
	return records, nil
}
