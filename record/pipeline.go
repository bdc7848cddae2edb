// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"reflect"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-valid-record/result"
)

// SetAttributes re-runs the validate-then-assign pipeline on the given
// subset of attributes. input may be a map[string]any, another record, or
// a DTO struct; unknown keys are dropped silently.
//
// Either every attribute in the batch passes and all of them are assigned
// together, or nothing on the record changes and false is returned with
// the failures accumulated in res.
func (b *Base) SetAttributes(input any, res *result.OperationResult) bool {
	values, ok := flatten(input, b.path, res)
	if !ok {
		return false
	}
	return b.internalSetAttributes(values, res, false)
}

// internalSetAttributes is the whole-batch pipeline: narrow the batch,
// fill defaults (creation only), prepare nested records, run generators,
// validate every attribute, and commit atomically.
//
// The commit decision depends only on failures produced by this batch,
// never on errors the caller's res accumulated earlier, so one
// OperationResult can be threaded through several operations.
func (b *Base) internalSetAttributes(values map[string]any, res *result.OperationResult, creating bool) bool {
	meta := b.mustMeta()

	// Narrow to declared attributes; unknown keys are not an error.
	batch := make(map[string]any, len(values))
	for name, v := range values {
		if _, declared := meta.index[name]; declared {
			batch[name] = v
		}
	}

	b.excludeReadOnly(batch)

	if creating && meta.fillDefaults {
		b.fillDefaults(batch, res)
	}

	failed := !b.prepare(batch, res)
	b.generate(batch)
	if !b.validateBatch(batch, res) {
		failed = true
	}

	if failed {
		return false
	}

	for name, v := range batch {
		if setter := meta.setters[name]; setter != nil {
			v = setter(v)
		}
		b.attrs[name] = v
		b.touched[name] = struct{}{}
	}
	return true
}

// excludeReadOnly drops read-only attributes that already hold a non-nil
// value. This is not a validation error; at most a developer warning is
// emitted.
func (b *Base) excludeReadOnly(batch map[string]any) {
	if !b.meta.entity {
		return
	}

	for _, name := range b.meta.names {
		if !b.meta.options[name].Has(ReadOnly) {
			continue
		}
		if _, inBatch := batch[name]; !inBatch {
			continue
		}
		if current := b.attrs[name]; current != nil {
			delete(batch, name)
			if currentSettings().WarnOnReadOnly {
				frameworkLogger().Warn().
					Str("record", b.meta.typeName).
					Str("attribute", name).
					Msg("read-only attribute already set; value dropped from batch")
			}
		}
	}
}

// fillDefaults resolves defaults for attributes absent from the creation
// batch and merges them in. Provider functions are invoked exactly once
// per creation, and only for attributes that actually need a default.
func (b *Base) fillDefaults(batch map[string]any, res *result.OperationResult) {
	if len(b.meta.defaults) == 0 {
		return
	}

	resolved := make(map[string]any, len(b.meta.defaults))
	for name, provider := range b.meta.defaults {
		if _, present := batch[name]; !present {
			resolved[name] = provider.value()
		}
	}
	if len(resolved) == 0 {
		return
	}

	if err := mergo.Merge(&batch, resolved); err != nil {
		// Merging disjoint key sets cannot realistically fail; treat it
		// as undecodable input rather than panicking mid-pipeline.
		if res != nil {
			res.AddError(result.Undefined, inputKey(b.path), "cannot apply defaults: "+err.Error())
		}
	}
}

// prepare constructs nested records for attributes carrying a Class
// specification. A failed construction removes the attribute from the
// batch and counts as one failure; sibling attributes continue.
func (b *Base) prepare(batch map[string]any, res *result.OperationResult) bool {
	ok := true
	for _, name := range b.meta.names {
		cls, nested := b.meta.classes[name]
		if !nested {
			continue
		}
		v, inBatch := batch[name]
		if !inBatch || v == nil {
			continue
		}
		if cls.Instance(v) {
			continue
		}

		if !constructible(v) {
			if res != nil {
				res.AddError(result.Validation, result.FullName(b.path, name), "must be of type "+cls.Name())
			}
			delete(batch, name)
			ok = false
			continue
		}

		childPath := result.FullName(b.path, name)
		built, created := cls.construct(v, childPath, res)
		if !created {
			// Nested errors are already in res under the child path.
			delete(batch, name)
			ok = false
			continue
		}
		batch[name] = built
	}
	return ok
}

// constructible reports whether v can plausibly feed a nested factory:
// attribute maps, records, and DTO structs qualify.
func constructible(v any) bool {
	switch v.(type) {
	case map[string]any, DataTransfer:
		return true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct || rv.Kind() == reflect.Map
}

// generate runs entity generators unconditionally, after prepare and
// before validation, so generated values still pass through the chain.
func (b *Base) generate(batch map[string]any) {
	if !b.meta.entity {
		return
	}

	for _, name := range b.meta.names {
		gen, ok := b.meta.generators[name]
		if !ok {
			continue
		}
		v, present := batch[name]
		batch[name] = gen(v, present)
	}
}

// validateBatch runs every attribute's chain in declared order. A failing
// validator short-circuits the rest of that attribute's chain but the
// remaining attributes are still validated, so errors accumulate across
// the whole batch. Normalized values are written back into the batch.
func (b *Base) validateBatch(batch map[string]any, res *result.OperationResult) bool {
	ok := true
	for _, name := range b.meta.names {
		v, inBatch := batch[name]
		if !inBatch {
			continue
		}

		for _, fn := range b.meta.validators[name] {
			if !fn(name, b.path, &v, res) {
				ok = false
				break
			}
		}
		batch[name] = v
	}
	return ok
}
