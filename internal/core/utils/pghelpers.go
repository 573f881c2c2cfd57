package utils

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// TextPtr converts a pgtype.Text to a *string.
// A NULL value is converted to nil.
func TextPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// ToNullString converts a *string (pointer) to a pgtype.Text.
// A nil pointer is considered invalid (NULL).
func ToNullString(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{
		String: *s,
		Valid:  true,
	}
}

// Float8Ptr converts a nullable aggregate to a *float64.
func Float8Ptr(f pgtype.Float8) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// ToUUID wraps a uuid for use as a query parameter.
func ToUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// ToNullUUID converts an optional uuid; nil becomes NULL.
func ToNullUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return ToUUID(*id)
}
