package yamlfile

import (
	"math"
	"strconv"
)

// AsString returns <v> as string and true if <v> is a scalar
func AsString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// AsInt returns <v> as int and true if <v> is a whole number or a string holding one
func AsInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i, true
		}
	}
	return 0, false
}

// AsFloat returns <v> as float64 and true if <v> is a number or a string holding one
func AsFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// AsBool returns <v> as bool and true if <v> is a boolean or a string holding one
func AsBool(v any) (bool, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	}
	return false, false
}

// AsStringList returns <v> as list of strings and true if <v> is a list of scalars
func AsStringList(v any) ([]string, bool) {
	return asList(v, AsString)
}

// AsIntList returns <v> as list of ints and true if <v> is a list of whole numbers
func AsIntList(v any) ([]int, bool) {
	return asList(v, AsInt)
}

// asList returns items of list <v> converted by <conv> and true if every item could be converted
func asList[T any](v any, conv func(any) (T, bool)) ([]T, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]T, 0, len(list))
	for _, item := range list {
		converted, ok := conv(item)
		if !ok {
			return nil, false
		}
		out = append(out, converted)
	}
	return out, true
}
