package contract

import (
	"fmt"
	"net/http"

	"github.com/bjaus/contract/decode"
)

// Envelope field names on the wire.
const (
	tagField     = "_t"
	dataField    = "data"
	codeField    = "code"
	errorIDField = "errorID"
)

// ResponseDecoderFunc selects the envelope decoder for an HTTP status
// code on a plain endpoint. Selectors panic on statuses outside 200,
// 400 and 500: such a status means the server broke the envelope
// protocol, not that a payload failed to decode.
type ResponseDecoderFunc[C ~string, T any] func(status int) decode.Decoder[Response[C, T]]

// AuthResponseDecoderFunc selects the envelope decoder for a bearer-
// authenticated endpoint. Its TagErr vocabulary is widened with
// CodeUnauthorised.
type AuthResponseDecoderFunc[C ~string, T any] func(status int) decode.Decoder[Response[C, T]]

// AdminResponseDecoderFunc selects the envelope decoder for an admin
// endpoint. Its TagErr vocabulary is widened with CodeUnauthorised.
type AdminResponseDecoderFunc[C ~string, T any] func(status int) decode.Decoder[Response[C, T]]

// ResponseDecoder builds the status-dispatching envelope decoder for a
// plain endpoint from a TagErr code decoder and a TagOk data decoder.
func ResponseDecoder[C ~string, T any](codes decode.Decoder[C], data decode.Decoder[T]) ResponseDecoderFunc[C, T] {
	return envelopeDecoder(codes, data, false)
}

// AuthResponseDecoder builds the envelope decoder for a bearer endpoint.
func AuthResponseDecoder[C ~string, T any](codes decode.Decoder[C], data decode.Decoder[T]) AuthResponseDecoderFunc[C, T] {
	return envelopeDecoder(codes, data, true)
}

// AdminResponseDecoder builds the envelope decoder for an admin endpoint.
func AdminResponseDecoder[C ~string, T any](codes decode.Decoder[C], data decode.Decoder[T]) AdminResponseDecoderFunc[C, T] {
	return envelopeDecoder(codes, data, true)
}

// DecodeResponse selects the decoder for status and runs it over raw
// JSON body bytes. Any of the three selector flavors may be passed.
func DecodeResponse[C ~string, T any](sel func(status int) decode.Decoder[Response[C, T]], status int, body []byte) (Response[C, T], error) {
	return decode.FromJSON(sel(status), body)
}

// envelopeDecoder builds the selector shared by the three flavors.
// Widened selectors accept CodeUnauthorised ahead of the endpoint
// vocabulary.
func envelopeDecoder[C ~string, T any](codes decode.Decoder[C], data decode.Decoder[T], widened bool) func(status int) decode.Decoder[Response[C, T]] {
	if widened {
		codes = decode.Either[C](unauthorisedCode[C](), codes)
	}
	okDec := okDecoder[C](data)
	errDec := errDecoder[C, T](codes)
	srvDec := serverErrorDecoder[C, T]()
	return func(status int) decode.Decoder[Response[C, T]] {
		switch status {
		case http.StatusOK:
			return okDec
		case http.StatusBadRequest:
			return errDec
		case http.StatusInternalServerError:
			return srvDec
		default:
			panic(fmt.Sprintf("contract: no envelope decoder for status %d (protocol statuses are 200, 400 and 500)", status))
		}
	}
}

// okDecoder decodes {"_t":"Ok","data":...}, running the endpoint's data
// decoder over the data field.
func okDecoder[C ~string, T any](data decode.Decoder[T]) decode.Decoder[Response[C, T]] {
	return decode.Func[Response[C, T]](func(v any) (Response[C, T], error) {
		var zero Response[C, T]
		if err := checkTag(v, TagOk); err != nil {
			return zero, err
		}
		d, err := decode.Field(dataField, data).Decode(v)
		if err != nil {
			return zero, err
		}
		return Ok[C, T](d), nil
	})
}

// errDecoder decodes {"_t":"Err","code":...}, narrowing the code with
// the endpoint's vocabulary decoder.
func errDecoder[C ~string, T any](codes decode.Decoder[C]) decode.Decoder[Response[C, T]] {
	return decode.Func[Response[C, T]](func(v any) (Response[C, T], error) {
		var zero Response[C, T]
		if err := checkTag(v, TagErr); err != nil {
			return zero, err
		}
		c, err := decode.Field(codeField, codes).Decode(v)
		if err != nil {
			return zero, err
		}
		return Err[C, T](c), nil
	})
}

// serverErrorDecoder decodes {"_t":"ServerError","errorID":...}. The
// error ID is an arbitrary string; no vocabulary applies.
func serverErrorDecoder[C ~string, T any]() decode.Decoder[Response[C, T]] {
	return decode.Func[Response[C, T]](func(v any) (Response[C, T], error) {
		var zero Response[C, T]
		if err := checkTag(v, TagServerError); err != nil {
			return zero, err
		}
		id, err := decode.Field(errorIDField, decode.String()).Decode(v)
		if err != nil {
			return zero, err
		}
		return ServerErr[C, T](id), nil
	})
}

// checkTag requires the envelope's "_t" field to equal want.
func checkTag(v any, want Tag) error {
	_, err := decode.Field(tagField, decode.Const(string(want))).Decode(v)
	return err
}

// unauthorisedCode matches the reserved CodeUnauthorised literal.
func unauthorisedCode[C ~string]() decode.Decoder[C] {
	return decode.Map(decode.Const(CodeUnauthorised), func(s string) (C, error) {
		return C(s), nil
	})
}
