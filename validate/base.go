// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validate

import (
	"math"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-valid-record/result"
	"github.com/google/uuid"
)

// EmptyToNull replaces an empty or whitespace-only string with nil.
// It never fails; use it ahead of nullable validators so that blank form
// input behaves like an omitted value.
func EmptyToNull(attribute, path string, value *any, res *result.OperationResult) bool {
	if s, ok := (*value).(string); ok && strings.TrimSpace(s) == "" {
		*value = nil
	}
	return true
}

// Trim removes surrounding whitespace from string values in place.
// Non-string values pass through untouched. Never fails.
func Trim(attribute, path string, value *any, res *result.OperationResult) bool {
	if s, ok := (*value).(string); ok {
		*value = strings.TrimSpace(s)
	}
	return true
}

// NotNull fails when the value is nil.
func NotNull(attribute, path string, value *any, res *result.OperationResult) bool {
	if *value == nil {
		return fail(attribute, path, "must not be null", res)
	}
	return true
}

// NotEmpty fails on nil, empty or whitespace-only strings, and empty
// slices or maps.
func NotEmpty(attribute, path string, value *any, res *result.OperationResult) bool {
	switch v := (*value).(type) {
	case nil:
		return fail(attribute, path, "must not be empty", res)
	case string:
		if strings.TrimSpace(v) == "" {
			return fail(attribute, path, "must not be empty", res)
		}
		return true
	}

	rv := reflect.ValueOf(*value)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.Len() == 0 {
		return fail(attribute, path, "must not be empty", res)
	}
	return true
}

// String checks the value is a string. Byte slices are converted in place.
func String(attribute, path string, value *any, res *result.OperationResult) bool {
	switch v := (*value).(type) {
	case string:
		return true
	case []byte:
		*value = string(v)
		return true
	default:
		return fail(attribute, path, "must be a string", res)
	}
}

// Int checks the value is an integer and normalizes it to int64.
//
// Accepted lexical forms are fixed: every Go integer kind, unsigned kinds
// that fit int64, floats with a zero fractional part, and decimal strings
// (surrounding whitespace allowed).
func Int(attribute, path string, value *any, res *result.OperationResult) bool {
	n, ok := coerceInt(*value)
	if !ok {
		return fail(attribute, path, "must be an integer", res)
	}
	*value = n
	return true
}

func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return coerceIntFromFloat(float64(n))
	case float64:
		return coerceIntFromFloat(n)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func coerceIntFromFloat(f float64) (int64, bool) {
	if math.Trunc(f) != f || f < math.MinInt64 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Float checks the value is numeric and normalizes it to float64.
// Integer kinds and parseable decimal strings are accepted.
func Float(attribute, path string, value *any, res *result.OperationResult) bool {
	switch n := (*value).(type) {
	case float64:
		return true
	case float32:
		*value = float64(n)
		return true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return fail(attribute, path, "must be a number", res)
		}
		*value = parsed
		return true
	}

	if n, ok := coerceInt(*value); ok {
		*value = float64(n)
		return true
	}
	return fail(attribute, path, "must be a number", res)
}

// Bool checks the value is a boolean and normalizes it to bool.
//
// Accepted lexical forms are fixed: native bools, the integers 0 and 1,
// and the case-insensitive strings "true", "1", "yes", "y", "on" /
// "false", "0", "no", "n", "off".
func Bool(attribute, path string, value *any, res *result.OperationResult) bool {
	switch v := (*value).(type) {
	case bool:
		return true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "y", "on":
			*value = true
			return true
		case "false", "0", "no", "n", "off":
			*value = false
			return true
		}
		return fail(attribute, path, "must be a boolean", res)
	}

	if n, ok := coerceInt(*value); ok && (n == 0 || n == 1) {
		*value = n == 1
		return true
	}
	return fail(attribute, path, "must be a boolean", res)
}

// Email checks the value is a plain RFC 5322 address without a display
// name. The value is not normalized.
func Email(attribute, path string, value *any, res *result.OperationResult) bool {
	s, ok := (*value).(string)
	if !ok {
		return fail(attribute, path, "must be a valid email address", res)
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fail(attribute, path, "must be a valid email address", res)
	}
	return true
}

// UUID checks the value parses as a UUID and normalizes it to the
// canonical lower-case string form.
func UUID(attribute, path string, value *any, res *result.OperationResult) bool {
	s, ok := (*value).(string)
	if !ok {
		return fail(attribute, path, "must be a UUID", res)
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return fail(attribute, path, "must be a UUID", res)
	}
	*value = parsed.String()
	return true
}

// dateTimeLayouts are the string forms DateTime accepts, tried in order.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateTime converts the value to a time.Time.
//
// time.Time values pass through, integers and integral floats are read as
// Unix seconds, strings must match one of dateTimeLayouts. String and
// numeric results are produced in UTC.
func DateTime(attribute, path string, value *any, res *result.OperationResult) bool {
	switch v := (*value).(type) {
	case time.Time:
		return true
	case *time.Time:
		if v != nil {
			*value = *v
			return true
		}
	case string:
		for _, layout := range dateTimeLayouts {
			if ts, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
				*value = ts
				return true
			}
		}
	default:
		if sec, ok := coerceInt(*value); ok {
			*value = time.Unix(sec, 0).UTC()
			return true
		}
	}
	return fail(attribute, path, "must be a timestamp", res)
}
