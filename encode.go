package contract

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bjaus/contract/jsonutil"
)

// Wire forms of the three envelope variants. Servers sharing the
// contract write these shapes; the envelope decoders read them back.
type okEnvelope struct {
	Tag  string `json:"_t"`
	Data any    `json:"data"`
}

type errEnvelope struct {
	Tag  string `json:"_t"`
	Code string `json:"code"`
}

type serverErrorEnvelope struct {
	Tag     string `json:"_t"`
	ErrorID string `json:"errorID"`
}

// EncodeOk renders {"_t":"Ok","data":...}.
func EncodeOk(data any) ([]byte, error) {
	return jsonutil.Marshal(okEnvelope{Tag: string(TagOk), Data: data})
}

// EncodeErr renders {"_t":"Err","code":...}.
func EncodeErr[C ~string](code C) ([]byte, error) {
	return jsonutil.Marshal(errEnvelope{Tag: string(TagErr), Code: string(code)})
}

// EncodeServerError renders {"_t":"ServerError","errorID":...}.
func EncodeServerError(errorID string) ([]byte, error) {
	return jsonutil.Marshal(serverErrorEnvelope{Tag: string(TagServerError), ErrorID: errorID})
}

// EncodeResponse renders a decoded Response back to its wire form.
func EncodeResponse[C ~string, T any](r Response[C, T]) ([]byte, error) {
	switch r.Tag {
	case TagOk:
		return EncodeOk(r.Data)
	case TagErr:
		return EncodeErr(r.Code)
	case TagServerError:
		return EncodeServerError(r.ErrorID)
	}
	return nil, fmt.Errorf("contract: unknown response tag %q", r.Tag)
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewErrorID returns a fresh ULID for correlating a TagServerError
// envelope with server-side logs.
func NewErrorID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}
