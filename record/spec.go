// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package record implements a declarative attribute framework: a concrete
// record type declares an ordered list of attributes with per-attribute
// specifications (validator chain, nested record class, default, getter,
// setter, generator, option flags) and gets factory construction,
// whole-batch validate-then-assign mutation and DTO conversion for free.
//
// A record is created only through the generic factories New and
// NewFromDTO; both return nil when validation fails, so a partially
// constructed record is never observable. Validation errors accumulate in
// a caller-owned result.OperationResult, while broken declarations
// (unknown validator names, misplaced specification keys) panic at
// metadata resolution time: they are programming errors, not bad input.
package record

import (
	"github.com/MKhiriev/go-valid-record/validate"
)

// Option is a bitmask of per-attribute flags.
type Option uint8

const (
	// ReadOnly marks an attribute that, once holding a non-nil value,
	// is silently dropped from later mutation batches.
	ReadOnly Option = 1 << iota

	// PrimaryKey marks the attribute identifying an entity in storage.
	PrimaryKey
)

// Has reports whether every flag in mask is set.
func (o Option) Has(mask Option) bool {
	return o&mask == mask
}

// NamedValidator attaches an explicit name to an inline validator
// function. Under strict naming (the default) inline validators must be
// wrapped this way so that broken chains are diagnosable by name.
type NamedValidator struct {
	Name string
	Fn   validate.Func
}

// Named wraps fn with an explicit name for use in a Spec validator chain.
func Named(name string, fn validate.Func) NamedValidator {
	return NamedValidator{Name: name, Fn: fn}
}

// Spec is the declarative specification of a single attribute. Every
// field is optional; an absent field is a no-op.
type Spec struct {
	// Validators is the ordered chain applied to candidate values.
	// Each element is a registered validator name (string), a
	// NamedValidator, or a bare validate.Func (rejected under strict
	// naming).
	Validators []any

	// Class names the nested record type this attribute holds. Candidate
	// values that are not already instances are built recursively via the
	// class's DTO factory with a derived record path.
	Class Class

	// Default is the value filled in when the attribute is absent from a
	// creation batch (value objects and entities only). A func() any is
	// invoked exactly once per creation; anything else is used literally.
	Default any

	// Getter transforms the stored value on read (entities only).
	Getter func(value any) any

	// Setter transforms the validated value before assignment
	// (entities only).
	Setter func(value any) any

	// Generator produces the value to validate, invoked unconditionally
	// during mutation even when the attribute is absent from the batch
	// (entities only). present reports whether the batch carried a value.
	Generator func(value any, present bool) any

	// Options carries the ReadOnly / PrimaryKey flags (entities only).
	Options Option
}

// Attr pairs an attribute name with its specification. Declaration order
// is significant: it fixes validation order and the order of GetAttributes.
type Attr struct {
	Name string
	Spec Spec
}

// Definition is implemented by every concrete record type. Attributes
// must return the same declaration on every call; the framework resolves
// it once per concrete type and memoizes the result.
type Definition interface {
	Attributes() []Attr
}

// DataTransfer marks records that can cross a serialization boundary:
// they flatten to an attribute map and convert to a DTO. Both Base
// methods satisfy it, so every record is DataTransfer-capable.
type DataTransfer interface {
	GetAttributes(subset ...string) map[string]any
	ToDTO(subset ...string) any
}

// DTOCarrier is optionally implemented by record types that declare a
// structural DTO counterpart. DTO must return a pointer to a fresh DTO
// struct; ToDTO decodes the attribute map into it via mapstructure, so
// DTO fields should carry `mapstructure` tags matching attribute names.
type DTOCarrier interface {
	DTO() any
}
