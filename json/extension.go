package json

import (
	"encoding"
	stdjson "encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

var (
	marshalerType     = reflect.TypeFor[stdjson.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	objectType        = reflect.TypeFor[Object]()
	objectPtrType     = reflect.TypeFor[*Object]()
)

// extension swaps in encoders for floats, which must keep a zero
// fraction, and for Object, which must keep key order.
type extension struct {
	jsoniter.DummyExtension
}

func (extension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	rt := typ.Type1()
	switch rt {
	case objectType:
		return objectEncoder{}
	case objectPtrType:
		return objectPtrEncoder{}
	}

	// Types with their own encoding keep it.
	if rt.Implements(marshalerType) || rt.Implements(textMarshalerType) {
		return nil
	}

	switch typ.Kind() {
	case reflect.Float64:
		return floatEncoder{bits: 64}
	case reflect.Float32:
		return floatEncoder{bits: 32}
	}
	return nil
}

type floatEncoder struct {
	bits int
}

func (e floatEncoder) value(ptr unsafe.Pointer) float64 {
	if e.bits == 32 {
		return float64(*(*float32)(ptr))
	}
	return *(*float64)(ptr)
}

func (e floatEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return e.value(ptr) == 0
}

func (e floatEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	f := e.value(ptr)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		stream.Error = fmt.Errorf("unsupported float value: %v", f)
		return
	}
	stream.WriteRaw(string(appendFloat(nil, f, e.bits)))
}

// appendFloat formats f in its shortest round-trip form, switching to
// exponent notation for very small or very large magnitudes, and keeps a
// ".0" on integral values.
func appendFloat(b []byte, f float64, bits int) []byte {
	abs := math.Abs(f)
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, fmtByte, -1, bits)

	if fmtByte == 'e' {
		// 1e-07 to 1e-7
		n := len(b)
		if n-start >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
		return b
	}

	for _, c := range b[start:] {
		if c == '.' {
			return b
		}
	}
	return append(b, '.', '0')
}

type objectEncoder struct{}

func (objectEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Object)(ptr).Len() == 0
}

func (objectEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	writeObject((*Object)(ptr), stream)
}

type objectPtrEncoder struct{}

func (objectPtrEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*(**Object)(ptr)).Len() == 0
}

func (objectPtrEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	o := *(**Object)(ptr)
	if o == nil {
		stream.WriteNil()
		return
	}
	writeObject(o, stream)
}

func writeObject(o *Object, stream *jsoniter.Stream) {
	stream.WriteObjectStart()
	for i, k := range o.keys {
		if i > 0 {
			stream.WriteMore()
		}
		// Keys go through WriteVal so HexTag applies to them too.
		stream.WriteVal(k)
		stream.WriteRaw(":")
		stream.WriteVal(o.values[k])
	}
	stream.WriteObjectEnd()
}
