// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"reflect"

	"github.com/MKhiriev/go-valid-record/result"
	"github.com/mitchellh/mapstructure"
)

// recordPtr constrains the factories to pointer types that embed Base
// (directly or through ValueObject/Entity) and declare their attributes.
type recordPtr[T any] interface {
	*T
	Definition
	initRecord(self Definition, path string)
	internalSetAttributes(values map[string]any, res *result.OperationResult, creating bool) bool
}

// New creates a record of type T from an attribute map. path fixes the
// record's position for error qualification; res receives validation
// failures. Returns nil when any attribute fails, leaving no partially
// constructed record behind.
//
// Concrete types typically wrap New in a typed constructor:
//
//	func NewPhone(country, code, number string, path string, res *result.OperationResult) *Phone {
//		return record.New[Phone](map[string]any{
//			"country": country, "code": code, "number": number,
//		}, path, res)
//	}
func New[T any, PT recordPtr[T]](values map[string]any, path string, res *result.OperationResult) PT {
	rec := PT(new(T))
	rec.initRecord(rec, path)
	if !rec.internalSetAttributes(values, res, true) {
		return nil
	}
	return rec
}

// NewFromDTO creates a record of type T from loosely typed input: an
// attribute map, another record, or a DTO struct. DTO structs are
// flattened to an attribute map first and then routed through the same
// validate-then-assign path as New.
func NewFromDTO[T any, PT recordPtr[T]](input any, path string, res *result.OperationResult) PT {
	values, ok := flatten(input, path, res)
	if !ok {
		return nil
	}
	return New[T, PT](values, path, res)
}

// Class describes a nested record type inside an attribute
// specification. Obtain instances with ClassOf.
type Class interface {
	// Name identifies the class in type-mismatch messages.
	Name() string

	// Instance reports whether v already is a record of this class.
	Instance(v any) bool

	// construct builds a nested record through the class's DTO factory.
	construct(input any, path string, res *result.OperationResult) (any, bool)
}

// ClassOf returns the Class descriptor for record type T, for use as the
// Class field of a Spec.
func ClassOf[T any, PT recordPtr[T]]() Class {
	var zero T
	return class[T, PT]{name: reflect.TypeOf(zero).Name()}
}

type class[T any, PT recordPtr[T]] struct {
	name string
}

func (c class[T, PT]) Name() string {
	return c.name
}

func (c class[T, PT]) Instance(v any) bool {
	_, ok := v.(PT)
	return ok
}

func (c class[T, PT]) construct(input any, path string, res *result.OperationResult) (any, bool) {
	rec := NewFromDTO[T, PT](input, path, res)
	if rec == nil {
		return nil, false
	}
	return rec, true
}

// flatten turns factory input into a plain attribute map. Records are
// flattened through their own GetAttributes; DTO structs are decoded via
// mapstructure; anything undecodable records one InputData error.
func flatten(input any, path string, res *result.OperationResult) (map[string]any, bool) {
	switch v := input.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		out := make(map[string]any, len(v))
		for name, value := range v {
			out[name] = value
		}
		return out, true
	case DataTransfer:
		return v.GetAttributes(), true
	}

	out := map[string]any{}
	if err := mapstructure.Decode(input, &out); err != nil {
		if res != nil {
			res.AddError(result.InputData, inputKey(path), "cannot decode input: "+err.Error())
		}
		return nil, false
	}
	return out, true
}

// inputKey keys whole-input errors that cannot be pinned to a single
// attribute.
func inputKey(path string) string {
	if path == "" {
		return "input"
	}
	return path
}
