package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// ValuesEqual reports whether two attribute values or leaf contents are equal.
// Numbers compare by value regardless of their Go type, so an int 3 decoded
// from one source equals an int64 3 decoded from another. Integers compare
// exactly; floats are used only when one side is a float.
func ValuesEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}

	if an, ok := toNumber(a); ok {
		if bn, ok := toNumber(b); ok {
			return an.equal(bn)
		}
		return false
	}

	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}

// FormatValue renders a scalar in its canonical text form: strings as-is,
// numbers in shortest decimal form, booleans as true/false.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsNumber reports whether v holds a Go integer or float.
func IsNumber(v any) bool {
	_, ok := toNumber(v)
	return ok
}

type numberKind uint8

const (
	signedNumber numberKind = iota
	unsignedNumber
	floatNumber
)

// number holds a numeric value in the widest form of its kind.
type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func (n number) float() float64 {
	switch n.kind {
	case signedNumber:
		return float64(n.i)
	case unsignedNumber:
		return float64(n.u)
	}
	return n.f
}

func (n number) equal(o number) bool {
	if n.kind == floatNumber || o.kind == floatNumber {
		return n.float() == o.float()
	}
	if n.kind == o.kind {
		return n.i == o.i && n.u == o.u
	}
	if n.kind == unsignedNumber {
		n, o = o, n
	}
	return n.i >= 0 && uint64(n.i) == o.u
}

func toNumber(v any) (number, bool) {
	switch n := v.(type) {
	case int:
		return number{kind: signedNumber, i: int64(n)}, true
	case int8:
		return number{kind: signedNumber, i: int64(n)}, true
	case int16:
		return number{kind: signedNumber, i: int64(n)}, true
	case int32:
		return number{kind: signedNumber, i: int64(n)}, true
	case int64:
		return number{kind: signedNumber, i: n}, true
	case uint:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint8:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint16:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint32:
		return number{kind: unsignedNumber, u: uint64(n)}, true
	case uint64:
		return number{kind: unsignedNumber, u: n}, true
	case float32:
		return number{kind: floatNumber, f: float64(n)}, true
	case float64:
		return number{kind: floatNumber, f: n}, true
	}
	return number{}, false
}
