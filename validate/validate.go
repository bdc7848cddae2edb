// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validate defines the validator function contract used by record
// attribute specifications and ships the base set of named validators
// (type coercion, trimming, email, UUID and timestamp parsing).
//
// A validator is a pure function: it inspects the candidate value, may
// normalize it in place on success, and on failure appends exactly one
// human-readable message to the supplied OperationResult keyed by the
// path-qualified attribute name.
package validate

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-valid-record/result"
)

// Func is the contract every attribute validator implements.
//
// attribute is the declared attribute name, path is the record path used to
// qualify error keys, value points at the candidate value so the validator
// can normalize it in place (e.g. trimming), and res receives failure
// messages. res may be nil when the caller only needs the boolean outcome.
//
// A Func returns true on success. On failure it must record exactly one
// message and leave the value for the caller to discard.
type Func func(attribute, path string, value *any, res *result.OperationResult) bool

// registry maps validator names to functions. Guarded by registryMu so
// Register can be called from init functions of independent packages.
var (
	registryMu sync.RWMutex
	registry   = map[string]Func{
		"emptyToNull":    EmptyToNull,
		"trim":           Trim,
		"notNull":        NotNull,
		"notEmpty":       NotEmpty,
		"string":         String,
		"nullableString": Nullable(String),
		"int":            Int,
		"nullableInt":    Nullable(Int),
		"float":          Float,
		"nullableFloat":  Nullable(Float),
		"bool":           Bool,
		"nullableBool":   Nullable(Bool),
		"email":          Email,
		"uuid":           UUID,
		"dateTime":       DateTime,
	}
)

// Lookup resolves a validator by its registered name.
func Lookup(name string) (Func, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	fn, ok := registry[name]
	return fn, ok
}

// Register adds fn under name so attribute specifications can reference it
// by string. Registering an existing name replaces the previous function.
func Register(name string, fn Func) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = fn
}

// Nullable wraps fn so that a nil value passes without invoking fn.
// All base validators have nullable counterparts registered this way.
func Nullable(fn Func) Func {
	return func(attribute, path string, value *any, res *result.OperationResult) bool {
		if *value == nil {
			return true
		}
		return fn(attribute, path, value, res)
	}
}

// Object returns a validator that checks the value is an instance of T.
// Useful for attributes holding already-constructed domain objects.
func Object[T any]() Func {
	return func(attribute, path string, value *any, res *result.OperationResult) bool {
		if _, ok := (*value).(T); ok {
			return true
		}
		var zero T
		return fail(attribute, path, fmt.Sprintf("must be of type %T", zero), res)
	}
}

// fail records message for the qualified attribute and returns false.
func fail(attribute, path, message string, res *result.OperationResult) bool {
	if res != nil {
		res.AddError(result.Validation, result.FullName(path, attribute), message)
	}
	return false
}
