// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vo ships the value objects built on the record framework:
// Phone (validator chaining and normalization) and Password (peppered
// Argon2id hashing with constant-time verification).
package vo

import (
	"regexp"

	"github.com/MKhiriev/go-valid-record/record"
	"github.com/MKhiriev/go-valid-record/result"
)

// Phone is a validated phone number split into country calling code,
// area code and subscriber number. Create it only through NewPhone or
// the record factories.
type Phone struct {
	record.ValueObject
}

// PhoneDTO is the plain structural counterpart of Phone.
type PhoneDTO struct {
	Country string `json:"country" mapstructure:"country"`
	Code    string `json:"code" mapstructure:"code"`
	Number  string `json:"number" mapstructure:"number"`
}

var (
	countryPattern = regexp.MustCompile(`^\+[0-9]{1,3}$`)
	codePattern    = regexp.MustCompile(`^[0-9]{2,5}$`)
	numberPattern  = regexp.MustCompile(`^[0-9]{5,12}$`)
)

// Attributes declares the Phone attribute specifications. Each chain
// trims first so surrounding whitespace never reaches the format checks.
func (p *Phone) Attributes() []record.Attr {
	return []record.Attr{
		{Name: "country", Spec: record.Spec{Validators: []any{
			"trim", "notEmpty", record.Named("phoneCountry", matchPattern(countryPattern, "must be a country calling code like +7")),
		}}},
		{Name: "code", Spec: record.Spec{Validators: []any{
			"trim", "notEmpty", record.Named("phoneCode", matchPattern(codePattern, "must be 2 to 5 digits")),
		}}},
		{Name: "number", Spec: record.Spec{Validators: []any{
			"trim", "notEmpty", record.Named("phoneNumber", matchPattern(numberPattern, "must be 5 to 12 digits")),
		}}},
	}
}

// DTO declares PhoneDTO as the ToDTO counterpart.
func (p *Phone) DTO() any {
	return &PhoneDTO{}
}

// NewPhone is the typed factory. Returns nil and fills res when any part
// fails validation.
func NewPhone(country, code, number string, path string, res *result.OperationResult) *Phone {
	return record.New[Phone](map[string]any{
		"country": country,
		"code":    code,
		"number":  number,
	}, path, res)
}

// Country returns the validated country calling code.
func (p *Phone) Country() string { return p.stringAttr("country") }

// Code returns the validated, trimmed area code.
func (p *Phone) Code() string { return p.stringAttr("code") }

// Number returns the validated subscriber number.
func (p *Phone) Number() string { return p.stringAttr("number") }

func (p *Phone) stringAttr(name string) string {
	v, _ := p.Get(name)
	s, _ := v.(string)
	return s
}

// matchPattern builds a validator failing with message unless the value
// is a string matching re.
func matchPattern(re *regexp.Regexp, message string) func(string, string, *any, *result.OperationResult) bool {
	return func(attribute, path string, value *any, res *result.OperationResult) bool {
		s, ok := (*value).(string)
		if !ok || !re.MatchString(s) {
			if res != nil {
				res.AddError(result.Validation, result.FullName(path, attribute), message)
			}
			return false
		}
		return true
	}
}
