package report

import (
	"fmt"
	"reflect"
	"strconv"
)

// FallbackMessage replaces payloads that have no textual form.
const FallbackMessage = "(interface {})"

// Payload is the panic value. It is one of Text, Value or Opaque.
type Payload interface {
	text() (string, bool)
}

// Text is a literal message, printed verbatim.
type Text string

func (payload Text) text() (string, bool) {
	return string(payload), true
}

// Value is an arbitrary recovered value.
type Value struct {
	V any
}

func (payload Value) text() (s string, ok bool) {
	defer func() {
		if reason := recover(); reason != nil {
			s, ok = "", false
		}
	}()

	switch v := payload.V.(type) {
	case string:
		return v, true
	case error:
		return v.Error(), true
	case fmt.Stringer:
		return v.String(), true
	}

	rv := reflect.ValueOf(payload.V)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	case reflect.Complex64:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 64), true
	case reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128), true
	default:
		return "", false
	}
}

// Opaque is a value the runtime could only print as a type and an address.
type Opaque struct{}

func (Opaque) text() (string, bool) {
	return "", false
}

// PayloadOf wraps a recovered panic value.
func PayloadOf(value any) Payload {
	if s, ok := value.(string); ok {
		return Text(s)
	}
	return Value{V: value}
}

func payloadText(payload Payload) string {
	if payload == nil {
		return FallbackMessage
	}
	if s, ok := payload.text(); ok {
		return s
	}
	return FallbackMessage
}
