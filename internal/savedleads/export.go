package savedleads

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/memohit/boostacart-backend/pkg/errors"
)

var csvHeader = []string{"Name", "Email", "Phone", "Product", "Product URL", "Captured At", "Saved At"}

// ExportCSV writes every saved lead for the store as CSV, newest save first.
func (s *service) ExportCSV(ctx context.Context, storeID uuid.UUID, w io.Writer) error {
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing csv header")
	}

	for i := range rows {
		saved := &rows[i]
		record := []string{
			saved.Name,
			deref(saved.Email),
			deref(saved.Phone),
			saved.ProductName,
			deref(saved.ProductURL),
			saved.LeadCreatedAt.Format(time.RFC3339),
			saved.SavedAt.Format(time.RFC3339),
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
