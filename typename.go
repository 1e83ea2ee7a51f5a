package transcode

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

// TypeName returns a readable name for T. Struct types are resolved through
// sentinel metadata; everything else falls back to the reflect type string.
func TypeName[T any]() string {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Struct {
		if spec := sentinel.Scan[T](); spec.TypeName != "" {
			return spec.TypeName
		}
	}
	return rt.String()
}
