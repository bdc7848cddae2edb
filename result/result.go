// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package result provides the caller-owned error accumulator that is passed
// by pointer through every validation operation of the framework.
//
// An OperationResult collects human-readable messages grouped first by
// error code and then by the path-qualified attribute name that produced
// them. Records never own an OperationResult; the caller creates one,
// threads it through a factory or SetAttributes call and inspects
// IsSuccess afterwards.
package result

// Code classifies an error added to an OperationResult.
// The numeric values are part of the public contract and must not change.
type Code int

const (
	// Undefined marks errors that could not be classified.
	Undefined Code = -1

	// Success is the neutral code; adding a message under it does not
	// flip the result into a failed state.
	Success Code = 0

	// InputData marks malformed or undecodable input supplied by the caller.
	InputData Code = 1

	// AccessDenied marks operations rejected by access control.
	AccessDenied Code = 2

	// Validation marks attribute values rejected by a validator chain.
	Validation Code = 3

	// NotFound marks lookups that matched no stored entity.
	NotFound Code = 4

	// AlreadyExists marks uniqueness conflicts on entity persistence.
	AlreadyExists Code = 5
)

// Delimiter separates path segments in qualified attribute names.
const Delimiter = "/"

// OperationResult accumulates errors produced during a validation
// operation. The zero value is not ready for use; construct with New.
//
// It is a plain single-goroutine accumulator: one OperationResult must not
// be shared across concurrent operations.
type OperationResult struct {
	errors    map[Code]map[string][]string
	hasErrors bool
}

// New returns an empty OperationResult in the success state.
func New() *OperationResult {
	return &OperationResult{
		errors: make(map[Code]map[string][]string),
	}
}

// AddError appends message under the given code and key. The key is
// usually produced by FullName so that nested record errors stay
// distinguishable from their parents'.
//
// Adding a message with the Success code is allowed (informational) and
// does not change the outcome of IsSuccess.
func (r *OperationResult) AddError(code Code, key, message string) {
	byKey, ok := r.errors[code]
	if !ok {
		byKey = make(map[string][]string)
		r.errors[code] = byKey
	}
	byKey[key] = append(byKey[key], message)

	if code != Success {
		r.hasErrors = true
	}
}

// IsSuccess reports whether no error with a non-Success code has been added.
func (r *OperationResult) IsSuccess() bool {
	return !r.hasErrors
}

// Errors returns the accumulated messages grouped by code and qualified
// attribute name. The returned map is the live internal state; callers
// must treat it as read-only.
func (r *OperationResult) Errors() map[Code]map[string][]string {
	return r.errors
}

// Messages collects every message recorded for key across all codes,
// in unspecified code order. Returns nil when the key has no errors.
func (r *OperationResult) Messages(key string) []string {
	var out []string
	for _, byKey := range r.errors {
		out = append(out, byKey[key]...)
	}
	return out
}

// FullName qualifies an attribute name with the record path it belongs to.
// An empty path yields the bare attribute name, so errors on top-level
// records keep short keys.
func FullName(path, attribute string) string {
	if path == "" {
		return attribute
	}
	return path + Delimiter + attribute
}
