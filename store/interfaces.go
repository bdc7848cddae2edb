// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store turns entity record metadata into SQL. Entities declare
// their table and primary key; the package derives INSERT/UPDATE/DELETE/
// SELECT statements from the attribute declaration (squirrel builders,
// Postgres placeholders) and offers a thin repository that executes them
// and classifies driver errors into OperationResult codes.
//
// Column names are assumed to equal attribute names; declare attributes
// in snake_case when they are persisted.
package store

import (
	"github.com/MKhiriev/go-valid-record/record"
)

// Entity is the contract a record type must satisfy to be persisted:
// a validated record (Definition + attribute access) flagged with a
// primary key and bound to a table.
//
// Types embedding record.Entity satisfy everything except TableName.
type Entity interface {
	record.Definition

	GetAttributes(subset ...string) map[string]any
	AttributeNames() []string
	Options(name string) record.Option
	PrimaryKeyAttr() (name string, value any, ok bool)

	// TableName returns the name of the database table associated with
	// the entity.
	TableName() string
}
