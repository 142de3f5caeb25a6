package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsPGUniqueViolation(t *testing.T) {
	uniq := &pgconn.PgError{Code: "23505"}
	if !IsPGUniqueViolation(uniq) {
		t.Error("expected true for code 23505")
	}
	if !IsPGUniqueViolation(fmt.Errorf("insert: %w", uniq)) {
		t.Error("expected true for wrapped error")
	}
	if IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("expected false for other code")
	}
	if IsPGUniqueViolation(errors.New("plain")) {
		t.Error("expected false for non-pg error")
	}
}

func TestIsPGForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}
	if !IsPGForeignKeyViolation(fk) {
		t.Error("expected true for code 23503")
	}
	if IsPGForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected false for other code")
	}
	if IsPGForeignKeyViolation(nil) {
		t.Error("expected false for nil")
	}
}
