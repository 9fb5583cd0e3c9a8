package contract

import "github.com/bjaus/contract/decode"

// Never is the payload type for endpoint slots that carry no value: URL
// parameters on parameterless routes and bodies on bodyless endpoints.
// No Never value is ever produced; its decoders reject all input,
// including empty objects and null.
type Never struct{}

// NoParams rejects every URL parameter payload. It lists no keys, so
// constructing an endpoint whose route has tokens with NoParams panics.
var NoParams decode.Decoder[Never] = neverDecoder{reason: "endpoint declares no URL parameters"}

// NoBody rejects every request body payload.
var NoBody decode.Decoder[Never] = neverDecoder{reason: "endpoint declares no request body"}

type neverDecoder struct {
	reason string
}

func (d neverDecoder) Decode(v any) (Never, error) {
	return decode.Reject[Never](d.reason).Decode(v)
}

// Keys reports no bindable parameter keys.
func (neverDecoder) Keys() []string { return nil }
