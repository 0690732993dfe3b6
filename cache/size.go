package cache

import (
	"reflect"
	"unsafe"
)

// Sizer is implemented by values that know their own in-memory size.
type Sizer interface {
	SizeBytes() int64
}

const (
	float64Size = int64(unsafe.Sizeof(float64(0)))
	sliceHeader = int64(unsafe.Sizeof([]byte(nil)))
	stringHead  = int64(unsafe.Sizeof(""))
)

// EstimateSize returns an approximate byte size of v. Sizer values report
// themselves; common slice types are measured by length; everything else
// falls back to reflection over its top-level layout.
func EstimateSize(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case Sizer:
		return x.SizeBytes()
	case []float64:
		return sliceHeader + int64(len(x))*float64Size
	case [][]float64:
		n := sliceHeader
		for _, row := range x {
			n += sliceHeader + int64(len(row))*float64Size
		}
		return n
	case []byte:
		return sliceHeader + int64(len(x))
	case string:
		return stringHead + int64(len(x))
	}
	return reflectSize(reflect.ValueOf(v), 0)
}

// maxDepth bounds pointer chasing so cyclic values terminate.
const maxDepth = 8

func reflectSize(v reflect.Value, depth int) int64 {
	if depth > maxDepth {
		return int64(v.Type().Size())
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return int64(v.Type().Size())
		}
		return int64(v.Type().Size()) + reflectSize(v.Elem(), depth+1)
	case reflect.Slice:
		if v.Len() == 0 {
			return sliceHeader
		}
		elem := v.Type().Elem()
		if isFlat(elem.Kind()) {
			return sliceHeader + int64(v.Len())*int64(elem.Size())
		}
		n := sliceHeader
		for i := 0; i < v.Len(); i++ {
			n += reflectSize(v.Index(i), depth+1)
		}
		return n
	case reflect.String:
		return stringHead + int64(v.Len())
	case reflect.Struct:
		n := int64(v.Type().Size())
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			switch f.Kind() {
			case reflect.Slice, reflect.String, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Struct:
				n += reflectSize(f, depth+1) - int64(f.Type().Size())
			}
		}
		return n
	case reflect.Map:
		n := int64(v.Type().Size())
		iter := v.MapRange()
		for iter.Next() {
			n += reflectSize(iter.Key(), depth+1) + reflectSize(iter.Value(), depth+1)
		}
		return n
	default:
		return int64(v.Type().Size())
	}
}

func isFlat(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}
