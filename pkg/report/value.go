package report

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ListSeparator joins the elements of a list-valued plugin result into a
// single CSV cell. Element order is whatever the scanner emitted.
const ListSeparator = "; "

type valueKind int

const (
	kindAbsent valueKind = iota
	kindScalar
	kindList
)

// PluginValue is the decoded result of one plugin lookup in a scan record.
// WhatWeb leaves the value shape to each plugin, so the mapping to a CSV
// cell has to be total: a value is either absent, a single scalar, or a
// list of scalars.
type PluginValue struct {
	kind   valueKind
	scalar string
	items  []string
}

// Absent reports whether the plugin was missing from the record
func (v PluginValue) Absent() bool {
	return v.kind == kindAbsent
}

// Cell renders the value as its CSV cell representation. Absent values
// render as the empty string so every row keeps the full column count.
func (v PluginValue) Cell() string {
	switch v.kind {
	case kindScalar:
		return v.scalar
	case kindList:
		return strings.Join(v.items, ListSeparator)
	default:
		return ""
	}
}

// ValueOf converts a decoded JSON value into a PluginValue. Every JSON
// shape a scanner plugin can produce maps to something printable.
func ValueOf(raw interface{}) PluginValue {
	switch val := raw.(type) {
	case nil:
		return PluginValue{kind: kindScalar, scalar: ""}
	case string:
		return PluginValue{kind: kindScalar, scalar: val}
	case bool:
		return PluginValue{kind: kindScalar, scalar: strconv.FormatBool(val)}
	case float64:
		return PluginValue{kind: kindScalar, scalar: formatNumber(val)}
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, elem := range val {
			items = append(items, ValueOf(elem).Cell())
		}
		return PluginValue{kind: kindList, items: items}
	default:
		// Nested objects are scanner-defined; keep them inspectable
		encoded, err := json.Marshal(val)
		if err != nil {
			return PluginValue{kind: kindScalar, scalar: ""}
		}
		return PluginValue{kind: kindScalar, scalar: string(encoded)}
	}
}

// lookupField resolves a plugin name in a record to its PluginValue
func lookupField(record map[string]interface{}, field string) PluginValue {
	raw, ok := record[field]
	if !ok {
		return PluginValue{kind: kindAbsent}
	}
	return ValueOf(raw)
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
