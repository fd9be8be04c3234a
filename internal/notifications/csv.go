package notifications

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"govpub/internal/content/models"
)

// DocumentListCSV renders editions as the document_list attachment.
func DocumentListCSV(editions []*models.Edition, publicHost string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "title", "format", "state", "url"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range editions {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Title,
			e.Type.FormatName(),
			string(e.State),
			publicHost + e.PublicPath(),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
