// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validate

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-valid-record/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run applies fn to value and returns the outcome plus the possibly
// normalized value and the accumulated result.
func run(fn Func, value any) (bool, any, *result.OperationResult) {
	res := result.New()
	ok := fn("field", "", &value, res)
	return ok, value, res
}

func TestEmptyToNull(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{name: "empty string becomes nil", value: "", want: nil},
		{name: "whitespace string becomes nil", value: "   \t ", want: nil},
		{name: "non-empty string unchanged", value: "a", want: "a"},
		{name: "nil stays nil", value: nil, want: nil},
		{name: "non-string unchanged", value: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, got, res := run(EmptyToNull, tt.value)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.True(t, res.IsSuccess())
		})
	}
}

func TestTrim(t *testing.T) {
	ok, got, _ := run(Trim, "   222   ")
	assert.True(t, ok)
	assert.Equal(t, "222", got)

	ok, got, _ = run(Trim, 42)
	assert.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestNotNull(t *testing.T) {
	ok, _, res := run(NotNull, nil)
	assert.False(t, ok)
	assert.Equal(t, []string{"must not be null"}, res.Messages("field"))

	ok, _, res = run(NotNull, "")
	assert.True(t, ok)
	assert.True(t, res.IsSuccess())
}

func TestNotEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{name: "nil fails", value: nil, ok: false},
		{name: "empty string fails", value: "", ok: false},
		{name: "whitespace string fails", value: "  ", ok: false},
		{name: "empty slice fails", value: []int{}, ok: false},
		{name: "empty map fails", value: map[string]any{}, ok: false},
		{name: "string passes", value: "x", ok: true},
		{name: "zero int passes", value: 0, ok: true},
		{name: "filled slice passes", value: []int{1}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _, _ := run(NotEmpty, tt.value)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestString(t *testing.T) {
	ok, got, _ := run(String, "abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	ok, got, _ = run(String, []byte("abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	ok, _, res := run(String, 5)
	assert.False(t, ok)
	assert.Equal(t, []string{"must be a string"}, res.Messages("field"))
}

func TestInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
		want  int64
	}{
		{name: "int", value: 7, ok: true, want: 7},
		{name: "int64", value: int64(-3), ok: true, want: -3},
		{name: "uint32", value: uint32(9), ok: true, want: 9},
		{name: "integral float", value: 42.0, ok: true, want: 42},
		{name: "decimal string", value: "15", ok: true, want: 15},
		{name: "padded string", value: "  15 ", ok: true, want: 15},
		{name: "fractional float fails", value: 1.5, ok: false},
		{name: "word fails", value: "fifteen", ok: false},
		{name: "bool fails", value: true, ok: false},
		{name: "nil fails", value: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, got, res := run(Int, tt.value)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, []string{"must be an integer"}, res.Messages("field"))
			}
		})
	}
}

func TestFloat(t *testing.T) {
	ok, got, _ := run(Float, 1.5)
	assert.True(t, ok)
	assert.Equal(t, 1.5, got)

	ok, got, _ = run(Float, 3)
	assert.True(t, ok)
	assert.Equal(t, 3.0, got)

	ok, got, _ = run(Float, "2.25")
	assert.True(t, ok)
	assert.Equal(t, 2.25, got)

	ok, _, res := run(Float, "abc")
	assert.False(t, ok)
	assert.Equal(t, []string{"must be a number"}, res.Messages("field"))
}

func TestBool(t *testing.T) {
	trueForms := []any{true, 1, int64(1), "true", "TRUE", "1", "yes", "Y", "on"}
	for _, v := range trueForms {
		ok, got, _ := run(Bool, v)
		require.True(t, ok, "value %v", v)
		assert.Equal(t, true, got, "value %v", v)
	}

	falseForms := []any{false, 0, "false", "0", "no", "N", "off"}
	for _, v := range falseForms {
		ok, got, _ := run(Bool, v)
		require.True(t, ok, "value %v", v)
		assert.Equal(t, false, got, "value %v", v)
	}

	for _, v := range []any{"maybe", 2, 1.5, nil} {
		ok, _, _ := run(Bool, v)
		assert.False(t, ok, "value %v", v)
	}
}

func TestEmail(t *testing.T) {
	ok, _, _ := run(Email, "user@example.com")
	assert.True(t, ok)

	for _, v := range []any{"not-an-email", "User <user@example.com>", "", 5, nil} {
		ok, _, res := run(Email, v)
		assert.False(t, ok, "value %v", v)
		assert.Equal(t, []string{"must be a valid email address"}, res.Messages("field"))
	}
}

func TestUUID(t *testing.T) {
	ok, got, _ := run(UUID, "6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	assert.True(t, ok)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", got)

	ok, _, res := run(UUID, "not-a-uuid")
	assert.False(t, ok)
	assert.Equal(t, []string{"must be a UUID"}, res.Messages("field"))
}

func TestDateTime(t *testing.T) {
	t.Run("time value passes through", func(t *testing.T) {
		ts := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
		ok, got, _ := run(DateTime, ts)
		require.True(t, ok)
		assert.Equal(t, ts, got)
	})

	t.Run("unix seconds", func(t *testing.T) {
		ok, got, _ := run(DateTime, int64(1700000000))
		require.True(t, ok)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), got)
	})

	t.Run("RFC3339 string", func(t *testing.T) {
		ok, got, _ := run(DateTime, "2026-02-01T10:30:00Z")
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC), got)
	})

	t.Run("date-only string", func(t *testing.T) {
		ok, got, _ := run(DateTime, "2026-02-01")
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("invalid value fails with fixed message", func(t *testing.T) {
		ok, _, res := run(DateTime, "soon")
		require.False(t, ok)
		assert.Equal(t, []string{"must be a timestamp"}, res.Messages("field"))
	})
}

func TestNullable(t *testing.T) {
	nullableInt := Nullable(Int)

	ok, got, _ := run(nullableInt, nil)
	assert.True(t, ok)
	assert.Nil(t, got)

	ok, got, _ = run(nullableInt, "12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), got)

	ok, _, _ = run(nullableInt, "abc")
	assert.False(t, ok)
}

func TestObject(t *testing.T) {
	type marker struct{ id int }

	check := Object[*marker]()
	ok, _, _ := run(check, &marker{id: 1})
	assert.True(t, ok)

	ok, _, res := run(check, "nope")
	assert.False(t, ok)
	require.Len(t, res.Messages("field"), 1)
	assert.Contains(t, res.Messages("field")[0], "must be of type")
}

func TestLookupAndRegister(t *testing.T) {
	t.Run("base validators are registered", func(t *testing.T) {
		for _, name := range []string{
			"emptyToNull", "trim", "notNull", "notEmpty",
			"string", "nullableString", "int", "nullableInt",
			"float", "nullableFloat", "bool", "nullableBool",
			"email", "uuid", "dateTime",
		} {
			fn, ok := Lookup(name)
			require.True(t, ok, "validator %q", name)
			require.NotNil(t, fn, "validator %q", name)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, ok := Lookup("definitely-not-registered")
		assert.False(t, ok)
	})

	t.Run("registered validator is resolvable", func(t *testing.T) {
		Register("alwaysTrue", func(attribute, path string, value *any, res *result.OperationResult) bool {
			return true
		})

		fn, ok := Lookup("alwaysTrue")
		require.True(t, ok)
		v := any("x")
		assert.True(t, fn("field", "", &v, nil))
	})
}

func TestValidatorFailureUsesQualifiedKey(t *testing.T) {
	res := result.New()
	v := any(nil)
	ok := NotNull("code", "user/phone", &v, res)

	require.False(t, ok)
	assert.Equal(t, []string{"must not be null"}, res.Errors()[result.Validation]["user/phone/code"])
}
