package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil error", nil, "", false},
		{"pgconn duplicate", &pgconn.PgError{Code: "23505", ConstraintName: "stores_shopify_domain_key"}, "", true},
		{"pgconn named constraint", &pgconn.PgError{Code: "23505", ConstraintName: "stores_shopify_domain_key"}, "stores_shopify_domain_key", true},
		{"pgconn other constraint", &pgconn.PgError{Code: "23505", ConstraintName: "stores_user_id_key"}, "stores_shopify_domain_key", false},
		{"pgconn other class", &pgconn.PgError{Code: "23503"}, "", false},
		{"pq duplicate", &pq.Error{Code: "23505", Constraint: "leads_pkey"}, "", true},
		{"gorm sentinel", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), "", true},
		{"sqlite message", errors.New("UNIQUE constraint failed: stores.shopify_domain"), "", true},
		{"unrelated", errors.New("connection refused"), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
				t.Fatalf("IsUniqueViolation(%v, %q) = %v, want %v", tc.err, tc.constraint, got, tc.want)
			}
		})
	}
}
