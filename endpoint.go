package contract

import (
	"net/http"

	"github.com/bjaus/contract/decode"
)

// AuthMode reports how an endpoint authenticates.
type AuthMode int

const (
	// AuthNone marks a public endpoint.
	AuthNone AuthMode = iota
	// AuthBearer marks an endpoint that requires a bearer token. The
	// transport attaches the Authorization header; this layer only
	// decodes the resulting CodeUnauthorised envelope.
	AuthBearer
)

// String returns the mode name used in manifests and logs.
func (m AuthMode) String() string {
	if m == AuthBearer {
		return "bearer"
	}
	return "none"
}

// Endpoint is an immutable descriptor of one API operation: HTTP method,
// route pattern, and the decoders for URL parameters (P), request body
// (B) and the response envelope (code vocabulary C, data T). The
// transport layer holds descriptors and runs their decoders; an
// Endpoint itself performs no I/O.
type Endpoint[P, B any, C ~string, T any] struct {
	method   string
	route    string
	params   decode.Decoder[P]
	body     decode.Decoder[B]
	response func(status int) decode.Decoder[Response[C, T]]
	auth     AuthMode
	stream   bool
}

// Method returns the HTTP method.
func (e Endpoint[P, B, C, T]) Method() string { return e.method }

// Route returns the route pattern.
func (e Endpoint[P, B, C, T]) Route() string { return e.route }

// Params returns the URL parameter decoder.
func (e Endpoint[P, B, C, T]) Params() decode.Decoder[P] { return e.params }

// Body returns the request body decoder.
func (e Endpoint[P, B, C, T]) Body() decode.Decoder[B] { return e.body }

// Response returns the status-dispatching envelope decoder selector.
func (e Endpoint[P, B, C, T]) Response() func(status int) decode.Decoder[Response[C, T]] {
	return e.response
}

// Auth reports the endpoint's authentication mode.
func (e Endpoint[P, B, C, T]) Auth() AuthMode { return e.auth }

// Stream reports whether the 200 response is a server-sent event stream.
func (e Endpoint[P, B, C, T]) Stream() bool { return e.stream }

// bearerSelector constrains a bearer endpoint's response selector to the
// authenticated or admin flavor.
type bearerSelector[C ~string, T any] interface {
	AuthResponseDecoderFunc[C, T] | AdminResponseDecoderFunc[C, T]
}

// newEndpoint runs the construction checks shared by all flavors: the
// route pattern must be well formed, and when the parameter decoder
// lists its keys they must equal the route's tokens exactly.
func newEndpoint[P, B any, C ~string, T any](method, route string, params decode.Decoder[P], body decode.Decoder[B], response func(status int) decode.Decoder[Response[C, T]], auth AuthMode, stream bool) Endpoint[P, B, C, T] {
	if err := checkRoute(route); err != nil {
		panic("contract: " + err.Error())
	}
	if kl, ok := params.(decode.KeyLister); ok {
		if err := checkTokenKeys(route, kl.Keys()); err != nil {
			panic("contract: " + err.Error())
		}
	}
	return Endpoint[P, B, C, T]{
		method:   method,
		route:    route,
		params:   params,
		body:     body,
		response: response,
		auth:     auth,
		stream:   stream,
	}
}

// Get declares a public GET endpoint with no request body.
func Get[P any, C ~string, T any](route string, params decode.Decoder[P], resp ResponseDecoderFunc[C, T]) Endpoint[P, Never, C, T] {
	return newEndpoint(http.MethodGet, route, params, NoBody, resp, AuthNone, false)
}

// Post declares a public POST endpoint.
func Post[P, B any, C ~string, T any](route string, params decode.Decoder[P], body decode.Decoder[B], resp ResponseDecoderFunc[C, T]) Endpoint[P, B, C, T] {
	return newEndpoint(http.MethodPost, route, params, body, resp, AuthNone, false)
}

// Put declares a public PUT endpoint.
func Put[P, B any, C ~string, T any](route string, params decode.Decoder[P], body decode.Decoder[B], resp ResponseDecoderFunc[C, T]) Endpoint[P, B, C, T] {
	return newEndpoint(http.MethodPut, route, params, body, resp, AuthNone, false)
}

// Patch declares a public PATCH endpoint.
func Patch[P, B any, C ~string, T any](route string, params decode.Decoder[P], body decode.Decoder[B], resp ResponseDecoderFunc[C, T]) Endpoint[P, B, C, T] {
	return newEndpoint(http.MethodPatch, route, params, body, resp, AuthNone, false)
}

// Delete declares a public DELETE endpoint with no request body.
func Delete[P any, C ~string, T any](route string, params decode.Decoder[P], resp ResponseDecoderFunc[C, T]) Endpoint[P, Never, C, T] {
	return newEndpoint(http.MethodDelete, route, params, NoBody, resp, AuthNone, false)
}

// BearerGet declares a bearer-authenticated GET endpoint with no request
// body. The selector may be the authenticated or admin flavor.
func BearerGet[P any, C ~string, T any, F bearerSelector[C, T]](route string, params decode.Decoder[P], resp F) Endpoint[P, Never, C, T] {
	return newEndpoint[P, Never, C, T](http.MethodGet, route, params, NoBody, resp, AuthBearer, false)
}

// BearerPost declares a bearer-authenticated POST endpoint.
func BearerPost[P, B any, C ~string, T any, F bearerSelector[C, T]](route string, params decode.Decoder[P], body decode.Decoder[B], resp F) Endpoint[P, B, C, T] {
	return newEndpoint[P, B, C, T](http.MethodPost, route, params, body, resp, AuthBearer, false)
}

// BearerPut declares a bearer-authenticated PUT endpoint.
func BearerPut[P, B any, C ~string, T any, F bearerSelector[C, T]](route string, params decode.Decoder[P], body decode.Decoder[B], resp F) Endpoint[P, B, C, T] {
	return newEndpoint[P, B, C, T](http.MethodPut, route, params, body, resp, AuthBearer, false)
}

// BearerPatch declares a bearer-authenticated PATCH endpoint.
func BearerPatch[P, B any, C ~string, T any, F bearerSelector[C, T]](route string, params decode.Decoder[P], body decode.Decoder[B], resp F) Endpoint[P, B, C, T] {
	return newEndpoint[P, B, C, T](http.MethodPatch, route, params, body, resp, AuthBearer, false)
}

// BearerDelete declares a bearer-authenticated DELETE endpoint with no
// request body.
func BearerDelete[P any, C ~string, T any, F bearerSelector[C, T]](route string, params decode.Decoder[P], resp F) Endpoint[P, Never, C, T] {
	return newEndpoint[P, Never, C, T](http.MethodDelete, route, params, NoBody, resp, AuthBearer, false)
}

// BearerStreamGet declares a bearer-authenticated GET endpoint whose 200
// response is a server-sent event stream. Each event's data payload is a
// full envelope decoded by the selector's 200 decoder; 400 and 500
// handshake responses are ordinary envelopes.
func BearerStreamGet[P any, C ~string, T any, F bearerSelector[C, T]](route string, params decode.Decoder[P], resp F) Endpoint[P, Never, C, T] {
	return newEndpoint[P, Never, C, T](http.MethodGet, route, params, NoBody, resp, AuthBearer, true)
}
