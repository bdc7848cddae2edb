// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-valid-record/result"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNoPrimaryKey    = errors.New("entity declares no primary key attribute")
	ErrNothingToUpdate = errors.New("no assigned attributes to update")
)

// Classify maps a database error onto the framework's result codes:
// unique violations become AlreadyExists, missing rows become NotFound,
// anything else stays Undefined.
func Classify(err error) result.Code {
	if err == nil {
		return result.Success
	}
	if errors.Is(err, sql.ErrNoRows) {
		return result.NotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return result.AlreadyExists
		case pgerrcode.ForeignKeyViolation, pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
			return result.InputData
		}
	}
	return result.Undefined
}
