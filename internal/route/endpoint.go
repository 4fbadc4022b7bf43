package route

import (
	"fmt"
)

// Origin tells where an endpoint's path came from.
type Origin uint8

const (
	OriginAnnotation Origin = iota
	OriginDescriptor
	OriginDispatchConvention
)

func (o Origin) String() string {
	switch o {
	case OriginAnnotation:
		return "ANNOTATION"
	case OriginDescriptor:
		return "DESCRIPTOR"
	case OriginDispatchConvention:
		return "DISPATCH_CONVENTION"
	}
	return "UNKNOWN"
}

// MarshalText renders the origin by name.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Origin) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ANNOTATION":
		*o = OriginAnnotation
	case "DESCRIPTOR":
		*o = OriginDescriptor
	case "DISPATCH_CONVENTION":
		*o = OriginDispatchConvention
	default:
		return fmt.Errorf("unknown origin %q", b)
	}
	return nil
}

// Endpoint is one (method, path) pair a handler serves.
// Duplicate endpoints are kept; uniqueness is not enforced.
type Endpoint struct {
	HTTPMethod    string `json:"httpMethod" msgpack:"m"`
	PathTemplate  string `json:"pathTemplate" msgpack:"p"`
	DeclaringType string `json:"declaringType" msgpack:"t"`
	HandlerName   string `json:"handlerName" msgpack:"h"`
	Origin        Origin `json:"origin" msgpack:"o"`
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s %s -> %s#%s (%s)", e.HTTPMethod, e.PathTemplate, e.DeclaringType, e.HandlerName, e.Origin)
}
