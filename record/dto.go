// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ToDTO converts the record to its serialization counterpart. It is a
// pure read: getters are applied, nested records are converted through
// their own ToDTO, and the record itself never changes.
//
// When the concrete type implements DTOCarrier the attribute map is
// decoded into a fresh DTO struct and that struct is returned; otherwise
// the plain attribute map is returned. A non-empty subset restricts the
// conversion to the named attributes (partial DTO).
//
// A DTO struct that cannot hold the record's attributes is a broken
// declaration and panics, consistent with metadata resolution errors.
func (b *Base) ToDTO(subset ...string) any {
	meta := b.mustMeta()

	attrs := b.GetAttributes(subset...)
	for name, v := range attrs {
		if dt, ok := v.(DataTransfer); ok {
			attrs[name] = dt.ToDTO()
		}
	}

	carrier, ok := b.self.(DTOCarrier)
	if !ok {
		return attrs
	}

	dto := carrier.DTO()
	if err := mapstructure.Decode(attrs, dto); err != nil {
		panic(fmt.Sprintf("record: cannot convert %s attributes to %T: %v", meta.typeName, dto, err))
	}
	return dto
}
