// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-valid-record/logger"
	"github.com/MKhiriev/go-valid-record/result"
)

// EntityRepository executes the derived entity statements and reports
// failures through the caller's OperationResult, using the same codes
// the validation layer uses. Validation never happens here: entities
// reaching the repository already passed their factories.
type EntityRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewEntityRepository constructs a repository over db. A nil log is
// replaced with the silent logger.
func NewEntityRepository(db *DB, log *logger.Logger) *EntityRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &EntityRepository{db: db, logger: log}
}

// Insert persists every assigned attribute of e as a new row. Returns
// false and records one error (AlreadyExists on unique violations) when
// the statement fails.
func (r *EntityRepository) Insert(ctx context.Context, e Entity, res *result.OperationResult) bool {
	query, args, err := InsertQuery(e)
	if err != nil {
		return r.fail(res, e, result.Undefined, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return r.fail(res, e, Classify(err), err)
	}
	return true
}

// Update writes e's assigned non-read-only attributes to the row matching
// its primary key. A subset narrows the statement to the named
// attributes. Zero affected rows is reported as NotFound.
func (r *EntityRepository) Update(ctx context.Context, e Entity, res *result.OperationResult, subset ...string) bool {
	query, args, err := UpdateQuery(e, subset...)
	if err != nil {
		return r.fail(res, e, result.Undefined, err)
	}

	execResult, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.fail(res, e, Classify(err), err)
	}
	if affected, err := execResult.RowsAffected(); err == nil && affected == 0 {
		return r.fail(res, e, result.NotFound, sqlNoRows(e))
	}
	return true
}

// Delete removes the row matching e's primary key. Zero affected rows is
// reported as NotFound.
func (r *EntityRepository) Delete(ctx context.Context, e Entity, res *result.OperationResult) bool {
	query, args, err := DeleteQuery(e)
	if err != nil {
		return r.fail(res, e, result.Undefined, err)
	}

	execResult, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.fail(res, e, Classify(err), err)
	}
	if affected, err := execResult.RowsAffected(); err == nil && affected == 0 {
		return r.fail(res, e, result.NotFound, sqlNoRows(e))
	}
	return true
}

// fail records err under the entity's table name and logs it.
func (r *EntityRepository) fail(res *result.OperationResult, e Entity, code result.Code, err error) bool {
	if res != nil {
		res.AddError(code, e.TableName(), err.Error())
	}
	r.logger.Err(err).
		Str("table", e.TableName()).
		Int("code", int(code)).
		Msg("entity statement failed")
	return false
}

func sqlNoRows(e Entity) error {
	return &noRowError{table: e.TableName()}
}

type noRowError struct {
	table string
}

func (e *noRowError) Error() string {
	return "no matching row in " + e.table
}
