// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package sanitize replaces non-finite floating-point values before they
// reach a JSON encoder, which cannot represent NaN or Infinity.
package sanitize

import (
	"encoding"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Score returns f, or 0 when f is NaN or infinite.
func Score(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// JSON returns a copy of v with every non-finite float replaced by nil.
// Maps, slices, arrays, pointers and structs are walked recursively; structs
// become maps keyed by their JSON field names. Values that marshal
// themselves, such as time.Time and json.RawMessage, are returned unchanged.
func JSON(v interface{}) interface{} {
	return walk(v, nil)
}

// Scores is JSON with non-finite floats replaced by 0.0 instead of nil.
func Scores(v interface{}) interface{} {
	return walk(v, 0.0)
}

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func walk(v interface{}, replacement interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return replacement
		}
		return t
	case float32:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return replacement
		}
		return t
	case string, bool, int, int64, []byte:
		return v
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = walk(val, replacement)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = walk(val, replacement)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	if rv.Type().Implements(jsonMarshalerType) || rv.Type().Implements(textMarshalerType) {
		return v
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, ok := mapKey(iter.Key())
			if !ok {
				return v
			}
			out[key] = walk(iter.Value().Interface(), replacement)
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return v
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = walk(rv.Index(i).Interface(), replacement)
		}
		return out
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return walk(rv.Elem().Interface(), replacement)
	case reflect.Struct:
		out := make(map[string]interface{}, rv.NumField())
		walkStruct(rv, out, replacement)
		return out
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return replacement
		}
	}
	return v
}

// walkStruct writes the JSON-visible fields of rv into out. Fields promoted
// from untagged embedded structs are written first so that outer fields of
// the same name win.
func walkStruct(rv reflect.Value, out map[string]interface{}, replacement interface{}) {
	rt := rv.Type()
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			tag := field.Tag.Get("json")
			if tag == "-" {
				continue
			}
			name, opts, _ := strings.Cut(tag, ",")

			fv := rv.Field(i)
			if field.Anonymous && name == "" && field.IsExported() {
				inner := fv
				if inner.Kind() == reflect.Ptr {
					if inner.IsNil() {
						continue
					}
					inner = inner.Elem()
				}
				if inner.Kind() == reflect.Struct && !inner.Type().Implements(jsonMarshalerType) {
					if pass == 0 {
						walkStruct(inner, out, replacement)
					}
					continue
				}
			}
			if pass == 0 || !field.IsExported() {
				continue
			}
			if name == "" {
				name = field.Name
			}
			if hasOption(opts, "omitempty") && isEmptyValue(fv) {
				continue
			}
			out[name] = walk(fv.Interface(), replacement)
		}
	}
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// isEmptyValue follows encoding/json's omitempty rule.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// mapKey renders a map key the way encoding/json does for string and
// integer kinds.
func mapKey(k reflect.Value) (string, bool) {
	switch k.Kind() {
	case reflect.String:
		return k.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), true
	}
	return "", false
}
