package quarry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValueType tags the SQL category of a Value. The tag survives a nil
// payload so a typed NULL still knows how it would have been encoded,
// which matters for array element rendering.
type ValueType uint8

// Value type tags.
const (
	TypeBool ValueType = iota
	TypeTinyInt
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeTinyUnsigned
	TypeSmallUnsigned
	TypeUnsigned
	TypeBigUnsigned
	TypeFloat
	TypeDouble
	TypeString
	TypeChar
	TypeBytes
	TypeJson
	TypeUuid
	TypeDecimal
	TypeDate
	TypeTime
	TypeDateTime
	TypeDateTimeTz
	TypeEnum
	TypeArray
)

// Value is a typed bind value. The payload is nil for NULL. Array values
// hold a homogeneous []Value payload and record the element type; enum
// values carry the SQL type name of the enum alongside the variant.
type Value struct {
	typ  ValueType
	v    any
	name string    // enum type name
	elem ValueType // array element type
}

// Values is the ordered bind list produced by Build.
type Values []Value

// Type returns the value's type tag.
func (v Value) Type() ValueType { return v.typ }

// IsNull reports whether the value renders as NULL.
func (v Value) IsNull() bool { return v.v == nil }

// Payload returns the raw payload, nil for NULL.
func (v Value) Payload() any { return v.v }

// NullValue returns a typed NULL.
func NullValue(t ValueType) Value { return Value{typ: t} }

// CharValue wraps a single character. Distinct from ValueOf because Go
// runes are indistinguishable from int32 at the type level.
func CharValue(r rune) Value { return Value{typ: TypeChar, v: r} }

// EnumValue wraps an enum variant together with its SQL type name.
func EnumValue(typeName, variant string) Value {
	return Value{typ: TypeEnum, v: variant, name: typeName}
}

// ArrayValue builds a homogeneous array value from the given items, each
// converted through ValueOf. Rendering arrays inline is Postgres-only.
func ArrayValue(elem ValueType, items ...any) Value {
	vals := make([]Value, 0, len(items))
	for _, it := range items {
		vals = append(vals, ValueOf(it))
	}
	return Value{typ: TypeArray, v: vals, elem: elem}
}

// DateValue wraps t as a date-only value.
func DateValue(t time.Time) Value { return Value{typ: TypeDate, v: t} }

// TimeValue wraps t as a time-of-day value.
func TimeValue(t time.Time) Value { return Value{typ: TypeTime, v: t} }

// DateTimeValue wraps t as a naive datetime.
func DateTimeValue(t time.Time) Value { return Value{typ: TypeDateTime, v: t} }

// DateTimeTzValue wraps t as a timezone-aware datetime.
func DateTimeTzValue(t time.Time) Value { return Value{typ: TypeDateTimeTz, v: t} }

// ValueOf converts a native Go value into a Value. A nil argument becomes
// an untyped NULL. time.Time maps to a naive datetime when its location
// is UTC and a timezone-aware one otherwise; use the explicit
// constructors for date-only and time-only values. Unsupported types
// panic: a bind value the dialects cannot encode is a programming error.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{typ: TypeBigInt}
	case Value:
		return x
	case bool:
		return Value{typ: TypeBool, v: x}
	case int8:
		return Value{typ: TypeTinyInt, v: x}
	case int16:
		return Value{typ: TypeSmallInt, v: x}
	case int32:
		return Value{typ: TypeInt, v: x}
	case int:
		return Value{typ: TypeBigInt, v: int64(x)}
	case int64:
		return Value{typ: TypeBigInt, v: x}
	case uint8:
		return Value{typ: TypeTinyUnsigned, v: x}
	case uint16:
		return Value{typ: TypeSmallUnsigned, v: x}
	case uint32:
		return Value{typ: TypeUnsigned, v: x}
	case uint:
		return Value{typ: TypeBigUnsigned, v: uint64(x)}
	case uint64:
		return Value{typ: TypeBigUnsigned, v: x}
	case float32:
		return Value{typ: TypeFloat, v: x}
	case float64:
		return Value{typ: TypeDouble, v: x}
	case string:
		return Value{typ: TypeString, v: x}
	case []byte:
		return Value{typ: TypeBytes, v: x}
	case json.RawMessage:
		return Value{typ: TypeJson, v: x}
	case uuid.UUID:
		return Value{typ: TypeUuid, v: x}
	case decimal.Decimal:
		return Value{typ: TypeDecimal, v: x}
	case time.Time:
		if x.Location() == time.UTC {
			return Value{typ: TypeDateTime, v: x}
		}
		return Value{typ: TypeDateTimeTz, v: x}
	default:
		panic(fmt.Sprintf("quarry: cannot convert %T into a bind value", v))
	}
}

// valuesOf converts a slice of native values.
func valuesOf(items []any) Values {
	vals := make(Values, 0, len(items))
	for _, it := range items {
		vals = append(vals, ValueOf(it))
	}
	return vals
}
