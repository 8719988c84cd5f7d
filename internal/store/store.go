// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL access methods for all blog entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
// Lookups return (nil, nil) when no row matches; writes return ErrNotFound
// for a missing target row and *DuplicateError when a unique index rejects
// the write.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the stores translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// ErrNotFound is returned by writes whose target row does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrReferenced is returned when a delete is blocked by rows that
	// still reference the record.
	ErrReferenced = errors.New("store: record is still referenced")
)

// DuplicateError reports a write rejected by a uniqueness constraint.
// Field names the logical column ("email", "name", "slug", ...).
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "store: duplicate key"
	}
	return "store: duplicate " + e.Field
}

// IsDuplicate reports whether err is a *DuplicateError, returning the
// offending field.
func IsDuplicate(err error) (string, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Field, true
	}
	return "", false
}

// constraintFields maps unique index names from the migrations to the
// field they protect.
var constraintFields = map[string]string{
	"users_email_key":      "email",
	"profiles_user_id_key": "user_id",
	"categories_name_key":  "name",
	"categories_slug_key":  "slug",
}

// writeErr translates driver errors from INSERT/UPDATE/DELETE into the
// store's sentinel errors, wrapping anything else with op.
func writeErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &DuplicateError{Field: constraintFields[pgErr.ConstraintName]}
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrReferenced)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface{ Scan(...any) error }

// mustAffect returns ErrNotFound if res touched no rows.
func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
