package queue

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// ReadPairs parses "cnpj,nf" rows. Blank lines and a leading header row whose
// first cell is "cnpj" are skipped. Rows are not validated here; the tracking
// service rejects empty identifiers itself.
func ReadPairs(r io.Reader) ([]domain.FormInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []domain.FormInput
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read pairs: %w", err)
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "cnpj") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("read pairs: record %d: expected 2 fields, got %d", line, len(rec))
		}
		out = append(out, domain.FormInput{TaxID: rec[0], InvoiceNumber: rec[1]})
	}
}
