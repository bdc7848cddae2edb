// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store_test

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-valid-record/record"
	"github.com/MKhiriev/go-valid-record/result"
	"github.com/MKhiriev/go-valid-record/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// account is the entity fixture used across the store tests.
type account struct {
	record.Entity
}

func (a *account) TableName() string {
	return "accounts"
}

func (a *account) Attributes() []record.Attr {
	return []record.Attr{
		{Name: "account_id", Spec: record.Spec{
			Options:    record.PrimaryKey | record.ReadOnly,
			Default:    func() any { return uuid.NewString() },
			Validators: []any{"uuid"},
		}},
		{Name: "login", Spec: record.Spec{Validators: []any{"trim", "notEmpty"}}},
		{Name: "balance", Spec: record.Spec{Validators: []any{"int"}}},
	}
}

func newAccount(t *testing.T) *account {
	t.Helper()

	res := result.New()
	a := record.New[account](map[string]any{
		"login":   "ada",
		"balance": 100,
	}, "", res)
	require.NotNil(t, a, "account creation failed: %v", res.Errors())
	return a
}

func TestInsertQuery(t *testing.T) {
	a := newAccount(t)

	query, args, err := store.InsertQuery(a)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into accounts")
	require.Contains(t, q, "account_id")
	require.Contains(t, q, "login")
	require.Contains(t, q, "balance")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	// args follow declaration order
	require.Len(t, args, 3)
	assert.Equal(t, "ada", args[1])
	assert.Equal(t, int64(100), args[2])
}

func TestUpdateQuery(t *testing.T) {
	a := newAccount(t)
	_, pk, _ := a.PrimaryKeyAttr()

	t.Run("excludes primary key and read-only attributes from SET", func(t *testing.T) {
		query, args, err := store.UpdateQuery(a)
		require.NoError(t, err)

		q := strings.ToLower(query)
		require.Contains(t, q, "update accounts set")
		require.Contains(t, q, "login = $1")
		require.Contains(t, q, "balance = $2")
		require.Contains(t, q, "where account_id = $3")
		assert.NotContains(t, strings.Split(q, "where")[0], "account_id")

		require.Len(t, args, 3)
		assert.Equal(t, pk, args[2])
	})

	t.Run("subset narrows the SET clause", func(t *testing.T) {
		query, args, err := store.UpdateQuery(a, "balance")
		require.NoError(t, err)

		q := strings.ToLower(query)
		require.Contains(t, q, "balance = $1")
		assert.NotContains(t, q, "login")
		require.Len(t, args, 2)
	})

	t.Run("empty subset match fails", func(t *testing.T) {
		_, _, err := store.UpdateQuery(a, "no-such-attribute")
		assert.ErrorIs(t, err, store.ErrNothingToUpdate)
	})
}

func TestDeleteQuery(t *testing.T) {
	a := newAccount(t)
	_, pk, _ := a.PrimaryKeyAttr()

	query, args, err := store.DeleteQuery(a)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "delete from accounts")
	require.Contains(t, q, "where account_id = $1")
	require.Equal(t, []any{pk}, args)
}

func TestSelectQuery(t *testing.T) {
	a := newAccount(t)

	query, args, err := store.SelectQuery(a)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select account_id, login, balance from accounts")
	require.Contains(t, q, "where account_id = $1")
	require.Len(t, args, 1)
}

// noKeyEntity has no primary key flag; key-based statements must refuse it.
type noKeyEntity struct {
	record.Entity
}

func (n *noKeyEntity) TableName() string {
	return "flags"
}

func (n *noKeyEntity) Attributes() []record.Attr {
	return []record.Attr{
		{Name: "name", Spec: record.Spec{Validators: []any{"notEmpty"}}},
	}
}

func TestQueriesRequirePrimaryKey(t *testing.T) {
	res := result.New()
	n := record.New[noKeyEntity](map[string]any{"name": "x"}, "", res)
	require.NotNil(t, n)

	_, _, err := store.UpdateQuery(n)
	assert.ErrorIs(t, err, store.ErrNoPrimaryKey)

	_, _, err = store.DeleteQuery(n)
	assert.ErrorIs(t, err, store.ErrNoPrimaryKey)

	_, _, err = store.SelectQuery(n)
	assert.ErrorIs(t, err, store.ErrNoPrimaryKey)
}
