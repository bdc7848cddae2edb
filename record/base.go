// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"fmt"
)

// Base is the embeddable core of every record type. It holds the record
// path fixed at construction, the attribute values restricted to the
// declared allow-list, and the work-set of attributes that have been
// assigned at least once (partial DTO support).
//
// Base alone gives validate-then-assign semantics without default
// filling; embed ValueObject or Entity for the richer behaviors.
type Base struct {
	self    Definition
	meta    *metadata
	path    string
	attrs   map[string]any
	touched map[string]struct{}
}

// initRecord wires the concrete record into its Base. Called by the
// factories; a record that skipped the factory path fails loudly on
// first use.
func (b *Base) initRecord(self Definition, path string) {
	b.self = self
	b.meta = metadataFor(self)
	b.path = path
	b.attrs = make(map[string]any, len(b.meta.names))
	b.touched = make(map[string]struct{}, len(b.meta.names))
}

func (b *Base) mustMeta() *metadata {
	if b.meta == nil {
		panic("record: record was not created through a factory")
	}
	return b.meta
}

// Path returns the record's position in its containment tree. Top-level
// records have an empty path; nested records carry
// "parentPath/attributeName".
func (b *Base) Path() string {
	return b.path
}

// Get returns the current value of a declared attribute, with the
// attribute's getter applied. The second result is false for attribute
// names outside the declared set.
func (b *Base) Get(name string) (any, bool) {
	meta := b.mustMeta()
	if _, declared := meta.index[name]; !declared {
		return nil, false
	}

	v := b.attrs[name]
	if getter := meta.getters[name]; getter != nil {
		v = getter(v)
	}
	return v, true
}

// GetAttributes returns the assigned attributes as a plain map, getters
// applied, in a fresh map the caller may modify. With a non-empty subset
// only the named attributes are returned; unknown subset names are
// ignored. Attributes never assigned (outside the work-set) are omitted,
// which is what makes partial DTOs possible.
func (b *Base) GetAttributes(subset ...string) map[string]any {
	meta := b.mustMeta()

	wanted := subsetFilter(subset)
	out := make(map[string]any, len(b.touched))
	for _, name := range meta.names {
		if _, assigned := b.touched[name]; !assigned {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}

		v := b.attrs[name]
		if getter := meta.getters[name]; getter != nil {
			v = getter(v)
		}
		out[name] = v
	}
	return out
}

// AttributeNames returns the declared attribute names in declaration
// order, in a fresh slice.
func (b *Base) AttributeNames() []string {
	meta := b.mustMeta()
	names := make([]string, len(meta.names))
	copy(names, meta.names)
	return names
}

// Options returns the option flags declared for the named attribute;
// zero for unflagged or undeclared names.
func (b *Base) Options(name string) Option {
	return b.mustMeta().options[name]
}

func subsetFilter(subset []string) map[string]struct{} {
	if len(subset) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(subset))
	for _, name := range subset {
		wanted[name] = struct{}{}
	}
	return wanted
}

// ValueObject extends Base with default filling: attributes absent from
// the creation batch receive their declared defaults before the
// validation pipeline runs.
type ValueObject struct {
	Base
}

func (*ValueObject) appliesDefaults() {}

// Entity extends ValueObject with the entity-only specification keys:
// getters, setters, generators, and the ReadOnly / PrimaryKey options.
type Entity struct {
	ValueObject
}

func (*Entity) entityRecord() {}

// PrimaryKeyAttr returns the name and current value of the attribute
// flagged PrimaryKey. ok is false when the declaration has none.
func (e *Entity) PrimaryKeyAttr() (name string, value any, ok bool) {
	meta := e.mustMeta()
	for _, n := range meta.names {
		if meta.options[n].Has(PrimaryKey) {
			return n, e.attrs[n], true
		}
	}
	return "", nil, false
}

// String identifies the record by type and path for diagnostics. It
// deliberately omits attribute values, which may be sensitive.
func (b *Base) String() string {
	if b.meta == nil {
		return "record(uninitialized)"
	}
	if b.path == "" {
		return fmt.Sprintf("record(%s)", b.meta.typeName)
	}
	return fmt.Sprintf("record(%s at %s)", b.meta.typeName, b.path)
}
