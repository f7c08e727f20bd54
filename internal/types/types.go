package types

import (
	"fmt"
	"sort"
	"strings"
)

// DataType is the declared type of a script parameter
type DataType int

const (
	None DataType = iota
	String
	Bool
	Switch
	UI32
	UI64
	I32
	I64
	F32
	F64
	Credential
)

var dataTypeNames = [...]string{
	None:       "none",
	String:     "string",
	Bool:       "bool",
	Switch:     "switch",
	UI32:       "ui32",
	UI64:       "ui64",
	I32:        "i32",
	I64:        "i64",
	F32:        "f32",
	F64:        "f64",
	Credential: "credential",
}

// String returns the lowercase name of the data type
func (dt DataType) String() string {
	if dt < 0 || int(dt) >= len(dataTypeNames) {
		return "unknown"
	}
	return dataTypeNames[dt]
}

// MarshalText renders the data type by name so YAML and JSON output stay readable
func (dt DataType) MarshalText() ([]byte, error) {
	if dt < 0 || int(dt) >= len(dataTypeNames) {
		return nil, fmt.Errorf("invalid data type: %d", int(dt))
	}
	return []byte(dataTypeNames[dt]), nil
}

// UnmarshalText accepts the names produced by MarshalText
func (dt *DataType) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range dataTypeNames {
		if n == name {
			*dt = DataType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown data type: %s", text)
}

// typeTokens maps declaration type tokens to data types. It is never written after init.
var typeTokens = map[string]DataType{
	"string":       String,
	"int":          I32,
	"int32":        I32,
	"int64":        I64,
	"single":       F32,
	"float":        F32,
	"double":       F64,
	"pscredential": Credential,
	"":             None,
}

// Resolve maps a type token such as "Int32" to its data type.
// Unknown tokens resolve to None; Resolve never fails.
func Resolve(token string) DataType {
	if dt, ok := typeTokens[strings.ToLower(token)]; ok {
		return dt
	}
	return None
}

// Known reports whether the token is in the type table
func Known(token string) bool {
	_, ok := typeTokens[strings.ToLower(token)]
	return ok
}

// TypeToken pairs a recognised token with the type it resolves to
type TypeToken struct {
	Token string   `json:"token" yaml:"token"`
	Type  DataType `json:"type" yaml:"type"`
}

// All returns the type table sorted by token
func All() []TypeToken {
	all := make([]TypeToken, 0, len(typeTokens))
	for token, dt := range typeTokens {
		all = append(all, TypeToken{Token: token, Type: dt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Token < all[j].Token
	})
	return all
}

// ParseBool parses a boolean literal. The "$" sigil is optional and case is ignored.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "$")) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", s)
	}
}
