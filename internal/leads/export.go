package leads

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

var csvHeader = []string{"Name", "Email", "Phone", "Product", "Product URL", "Saved", "Captured At"}

// ExportCSV writes every lead for the store as CSV, oldest first.
func (s *service) ExportCSV(ctx context.Context, storeID uuid.UUID, w io.Writer) error {
	rows, err := s.repo.ListAllByStore(ctx, storeID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing csv header")
	}

	for i := range rows {
		lead := &rows[i]
		record := []string{
			lead.Name,
			deref(lead.Email),
			deref(lead.Phone),
			lead.ProductName,
			deref(lead.ProductURL),
			boolString(lead.IsSaved),
			lead.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing csv row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flushing csv")
	}
	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func boolString(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
