package signer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// canonical is the signed structure. Field order is fixed by the struct and
// encoding/json sorts map keys, which makes the encoding deterministic.
type canonical struct {
	Timestamp int64          `json:"timestamp"`
	Token     string         `json:"token"`
	Array     []any          `json:"array"`
	Object    map[string]any `json:"object"`
}

func (s *Signer) canonicalPayload(ts int64, token string) ([]byte, error) {
	ordered := make([]any, 0, len(s.ordered))
	keyed := make(map[string]any, len(s.keyed))

	if s.normalize {
		for _, v := range s.ordered {
			ordered = append(ordered, normalizeNFC(v))
		}
		for _, k := range slices.Sorted(maps.Keys(s.keyed)) {
			keyed[norm.NFC.String(k)] = normalizeNFC(s.keyed[k])
		}
	} else {
		ordered = append(ordered, s.ordered...)
		maps.Copy(keyed, s.keyed)
	}

	for i, v := range ordered {
		ordered[i] = positiveZero(v)
	}
	for k, v := range keyed {
		keyed[k] = positiveZero(v)
	}

	slices.SortStableFunc(ordered, compareValues)

	data, err := json.Marshal(canonical{
		Timestamp: ts,
		Token:     token,
		Array:     ordered,
		Object:    keyed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
	}
	return data, nil
}

// normalizeNFC converts strings, including those nested in []any and
// map[string]any, to Unicode normalization form C.
func normalizeNFC(v any) any {
	switch t := v.(type) {
	case string:
		return norm.NFC.String(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeNFC(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			out[norm.NFC.String(k)] = normalizeNFC(t[k])
		}
		return out
	default:
		return v
	}
}

// positiveZero maps a negative floating-point zero to +0, which encodes as 0
// like the integer zero it compares equal to.
func positiveZero(v any) any {
	switch f := v.(type) {
	case float64:
		if f == 0 {
			return float64(0)
		}
	case float32:
		if f == 0 {
			return float32(0)
		}
	}
	return v
}

var jsonNumberType = reflect.TypeFor[json.Number]()

// Sort ranks: values of different kinds never compare equal.
const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

func rank(v reflect.Value) int {
	if !v.IsValid() {
		return rankNil
	}
	if v.Type() == jsonNumberType {
		return rankNumber
	}
	switch v.Kind() {
	case reflect.Bool:
		return rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rankNumber
	case reflect.String:
		return rankString
	default:
		return rankOther
	}
}

// compareValues orders payload values by kind first (nil, bool, number,
// string, composite) and then by value. Numbers compare numerically across
// Go numeric types; composites compare by their JSON encoding. Remaining ties
// are broken by the JSON encoding, so the order never depends on insertion.
func compareValues(a, b any) int {
	if c := compareByKind(a, b); c != 0 {
		return c
	}
	return bytes.Compare(sortKey(a), sortKey(b))
}

func compareByKind(a, b any) int {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	ra, rb := rank(va), rank(vb)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case rankNil:
		return 0
	case rankBool:
		return boolInt(va.Bool()) - boolInt(vb.Bool())
	case rankNumber:
		return compareNumbers(va, vb)
	case rankString:
		return strings.Compare(va.String(), vb.String())
	default:
		return bytes.Compare(sortKey(a), sortKey(b))
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// compareNumbers compares exactly. NaN and unparsable json.Number values sort
// before every other number.
func compareNumbers(a, b reflect.Value) int {
	fa, fb := bigFloat(a), bigFloat(b)
	switch {
	case fa == nil && fb == nil:
		return 0
	case fa == nil:
		return -1
	case fb == nil:
		return 1
	}
	return fa.Cmp(fb)
}

func bigFloat(v reflect.Value) *big.Float {
	if v.Type() == jsonNumberType {
		f, ok := new(big.Float).SetString(v.String())
		if !ok {
			return nil
		}
		return f
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Float).SetInt64(v.Int())
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) {
			return nil
		}
		return new(big.Float).SetFloat64(f)
	default:
		return new(big.Float).SetUint64(v.Uint())
	}
}

func sortKey(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(fmt.Sprintf("%T:%v", v, v))
	}
	return b
}
