// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-valid-record/record"
)

// builder is the statement builder shared by all query constructors,
// preconfigured for Postgres $N placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// InsertQuery builds an INSERT covering every assigned attribute of e,
// in declaration order.
func InsertQuery(e Entity) (string, []any, error) {
	attrs := e.GetAttributes()

	columns := make([]string, 0, len(attrs))
	values := make([]any, 0, len(attrs))
	for _, name := range e.AttributeNames() {
		v, assigned := attrs[name]
		if !assigned {
			continue
		}
		columns = append(columns, name)
		values = append(values, v)
	}
	if len(columns) == 0 {
		return "", nil, ErrNothingToUpdate
	}

	return builder.Insert(e.TableName()).
		Columns(columns...).
		Values(values...).
		ToSql()
}

// UpdateQuery builds an UPDATE for e's assigned attributes, keyed by the
// primary key. The primary key itself and read-only attributes are never
// part of the SET clause. A non-empty subset narrows the update further.
func UpdateQuery(e Entity, subset ...string) (string, []any, error) {
	pkName, pkValue, ok := e.PrimaryKeyAttr()
	if !ok {
		return "", nil, ErrNoPrimaryKey
	}

	attrs := e.GetAttributes(subset...)
	update := builder.Update(e.TableName())

	assigned := 0
	for _, name := range e.AttributeNames() {
		if name == pkName || e.Options(name).Has(record.ReadOnly) {
			continue
		}
		v, inSet := attrs[name]
		if !inSet {
			continue
		}
		update = update.Set(name, v)
		assigned++
	}
	if assigned == 0 {
		return "", nil, ErrNothingToUpdate
	}

	return update.Where(sq.Eq{pkName: pkValue}).ToSql()
}

// DeleteQuery builds a DELETE keyed by the primary key.
func DeleteQuery(e Entity) (string, []any, error) {
	pkName, pkValue, ok := e.PrimaryKeyAttr()
	if !ok {
		return "", nil, ErrNoPrimaryKey
	}

	return builder.Delete(e.TableName()).
		Where(sq.Eq{pkName: pkValue}).
		ToSql()
}

// SelectQuery builds a SELECT of every declared attribute keyed by the
// primary key.
func SelectQuery(e Entity) (string, []any, error) {
	pkName, pkValue, ok := e.PrimaryKeyAttr()
	if !ok {
		return "", nil, ErrNoPrimaryKey
	}

	return builder.Select(e.AttributeNames()...).
		From(e.TableName()).
		Where(sq.Eq{pkName: pkValue}).
		ToSql()
}
