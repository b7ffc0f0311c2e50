// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/records/record.go
// Summary: User record type and by-name field access.

package records

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Field ids of a user record, in display order.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldIDNum    = "id_num"
	FieldPhone    = "phone"
	FieldSex      = "sex"
	FieldBirth    = "birth"
	FieldStation  = "station"
	FieldAddress  = "address"
	FieldBankName = "bank_name"
	FieldCardNum  = "card_num"
)

// Record is one user profile. All fields are opaque display values.
type Record struct {
	// Key is assigned by the Store and stays with the record across
	// reorderings and field edits.
	Key uuid.UUID `json:"-"`

	ID       int    `json:"id"`
	Name     string `json:"name"`
	IDNum    string `json:"id_num"`
	Phone    string `json:"phone"`
	Sex      string `json:"sex"`
	Birth    string `json:"birth"`
	Station  string `json:"station"`
	Address  string `json:"address"`
	BankName string `json:"bank_name"`
	CardNum  string `json:"card_num"`
}

type fieldAccess struct {
	get func(r *Record) string
	set func(r *Record, v string) bool
}

func stringField(p func(r *Record) *string) fieldAccess {
	return fieldAccess{
		get: func(r *Record) string { return *p(r) },
		set: func(r *Record, v string) bool { *p(r) = v; return true },
	}
}

var fieldOrder = []string{
	FieldID, FieldName, FieldIDNum, FieldPhone, FieldSex,
	FieldBirth, FieldStation, FieldAddress, FieldBankName, FieldCardNum,
}

var fields = map[string]fieldAccess{
	FieldID: {
		get: func(r *Record) string { return strconv.Itoa(r.ID) },
		set: func(r *Record, v string) bool {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return false
			}
			r.ID = n
			return true
		},
	},
	FieldName:     stringField(func(r *Record) *string { return &r.Name }),
	FieldIDNum:    stringField(func(r *Record) *string { return &r.IDNum }),
	FieldPhone:    stringField(func(r *Record) *string { return &r.Phone }),
	FieldSex:      stringField(func(r *Record) *string { return &r.Sex }),
	FieldBirth:    stringField(func(r *Record) *string { return &r.Birth }),
	FieldStation:  stringField(func(r *Record) *string { return &r.Station }),
	FieldAddress:  stringField(func(r *Record) *string { return &r.Address }),
	FieldBankName: stringField(func(r *Record) *string { return &r.BankName }),
	FieldCardNum:  stringField(func(r *Record) *string { return &r.CardNum }),
}

// Fields returns the record field ids in display order.
func Fields() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// HasField reports whether name is a known field id.
func HasField(name string) bool {
	_, ok := fields[name]
	return ok
}

// Get returns the display value of the named field, or "" for unknown fields.
func (r Record) Get(field string) string {
	fa, ok := fields[field]
	if !ok {
		return ""
	}
	return fa.get(&r)
}

// With returns a copy of r with the named field replaced. The second result
// is false when the field is unknown or cannot hold the value; r is returned
// unchanged in that case.
func (r Record) With(field, value string) (Record, bool) {
	fa, ok := fields[field]
	if !ok {
		return r, false
	}
	out := r
	if !fa.set(&out, value) {
		return r, false
	}
	return out, true
}

// Values returns the field values keyed by field id.
func (r Record) Values() map[string]string {
	out := make(map[string]string, len(fieldOrder))
	for _, name := range fieldOrder {
		out[name] = r.Get(name)
	}
	return out
}
