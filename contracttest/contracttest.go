// Package contracttest provides typed test helpers for exercising
// endpoint contracts without a network: helpers run an endpoint's
// decoders directly over raw bytes or parameter maps and fail the test
// on unexpected outcomes.
package contracttest

import (
	"io"
	"net/http"
	"testing"

	"github.com/bjaus/contract"
	"github.com/bjaus/contract/decode"
)

// DecodeResponse runs the endpoint's envelope decoder for status over
// body and fails the test on error.
func DecodeResponse[P, B any, C ~string, T any](t testing.TB, ep contract.Endpoint[P, B, C, T], status int, body []byte) contract.Response[C, T] {
	t.Helper()
	resp, err := contract.DecodeResponse(ep.Response(), status, body)
	if err != nil {
		t.Fatalf("contracttest: decode %s %s response: %v", ep.Method(), ep.Route(), err)
	}
	return resp
}

// DecodeFailure asserts that decoding body for status fails and returns
// the error.
func DecodeFailure[P, B any, C ~string, T any](t testing.TB, ep contract.Endpoint[P, B, C, T], status int, body []byte) error {
	t.Helper()
	_, err := contract.DecodeResponse(ep.Response(), status, body)
	if err == nil {
		t.Fatalf("contracttest: %s %s: decode unexpectedly succeeded for status %d", ep.Method(), ep.Route(), status)
	}
	return err
}

// DecodeParams runs the endpoint's URL parameter decoder over values.
func DecodeParams[P, B any, C ~string, T any](t testing.TB, ep contract.Endpoint[P, B, C, T], values any) P {
	t.Helper()
	p, err := ep.Params().Decode(values)
	if err != nil {
		t.Fatalf("contracttest: decode %s %s params: %v", ep.Method(), ep.Route(), err)
	}
	return p
}

// DecodeBody runs the endpoint's request body decoder over raw JSON.
func DecodeBody[P, B any, C ~string, T any](t testing.TB, ep contract.Endpoint[P, B, C, T], body []byte) B {
	t.Helper()
	b, err := decode.FromJSON(ep.Body(), body)
	if err != nil {
		t.Fatalf("contracttest: decode %s %s body: %v", ep.Method(), ep.Route(), err)
	}
	return b
}

// DecodeEvents reads every SSE event from stream and decodes each data
// payload with the endpoint's 200 envelope decoder.
func DecodeEvents[P, B any, C ~string, T any](t testing.TB, ep contract.Endpoint[P, B, C, T], stream io.Reader) []contract.Response[C, T] {
	t.Helper()
	if !ep.Stream() {
		t.Fatalf("contracttest: %s %s is not a stream endpoint", ep.Method(), ep.Route())
	}
	dec := ep.Response()(http.StatusOK)

	var out []contract.Response[C, T]
	sc := contract.NewEventScanner(stream)
	for sc.Scan() {
		r, err := decode.FromJSON(dec, sc.Event().Data)
		if err != nil {
			t.Fatalf("contracttest: decode event %d: %v", len(out), err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("contracttest: read stream: %v", err)
	}
	return out
}
