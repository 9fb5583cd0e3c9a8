package contract_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/contract"
	"github.com/bjaus/contract/decode"
)

type todoCode string

const (
	codeTodoNotFound todoCode = "TODO_NOT_FOUND"
	codeTodoLocked   todoCode = "TODO_LOCKED"
)

var todoCodes = decode.Enum(codeTodoNotFound, codeTodoLocked)

type todo struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title" validate:"required"`
}

var todoData = decode.Struct[todo]()

func TestResponseDecoder_ok(t *testing.T) {
	t.Parallel()

	sel := contract.ResponseDecoder(todoCodes, todoData)

	res, err := contract.DecodeResponse(sel, 200, []byte(`{"_t":"Ok","data":{"id":"t1","title":"ship it"}}`))
	require.NoError(t, err)
	assert.Equal(t, contract.TagOk, res.Tag)
	assert.Equal(t, todo{ID: "t1", Title: "ship it"}, res.Data)
}

func TestResponseDecoder_ok_transforms_data(t *testing.T) {
	t.Parallel()

	doubled := decode.Map(decode.Number(), func(n float64) (float64, error) {
		return 2 * n, nil
	})
	sel := contract.ResponseDecoder(todoCodes, doubled)

	res, err := contract.DecodeResponse(sel, 200, []byte(`{"_t":"Ok","data":21}`))
	require.NoError(t, err)
	assert.Equal(t, 42.0, res.Data)
}

func TestResponseDecoder_ok_failures(t *testing.T) {
	t.Parallel()

	sel := contract.ResponseDecoder(todoCodes, todoData)

	tests := map[string]struct {
		body   string
		expect error
	}{
		"missing tag":     {body: `{"data":{"id":"t1","title":"x"}}`, expect: decode.ErrMissingField},
		"wrong tag":       {body: `{"_t":"Err","data":{"id":"t1","title":"x"}}`, expect: decode.ErrMismatch},
		"missing data":    {body: `{"_t":"Ok"}`, expect: decode.ErrMissingField},
		"invalid data":    {body: `{"_t":"Ok","data":{"id":"t1"}}`, expect: decode.ErrValidation},
		"data wrong type": {body: `{"_t":"Ok","data":"nope"}`, expect: decode.ErrWrongType},
		"malformed json":  {body: `{"_t":"Ok",`, expect: decode.ErrSyntax},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := contract.DecodeResponse(sel, 200, []byte(tc.body))
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestResponseDecoder_err(t *testing.T) {
	t.Parallel()

	sel := contract.ResponseDecoder(todoCodes, todoData)

	res, err := contract.DecodeResponse(sel, 400, []byte(`{"_t":"Err","code":"TODO_LOCKED"}`))
	require.NoError(t, err)
	assert.Equal(t, contract.TagErr, res.Tag)
	assert.Equal(t, codeTodoLocked, res.Code)
}

func TestResponseDecoder_err_failures(t *testing.T) {
	t.Parallel()

	sel := contract.ResponseDecoder(todoCodes, todoData)

	tests := map[string]struct {
		body   string
		expect error
	}{
		"code outside vocabulary": {body: `{"_t":"Err","code":"WHO_KNOWS"}`, expect: decode.ErrMismatch},
		"missing code":            {body: `{"_t":"Err"}`, expect: decode.ErrMissingField},
		"wrong tag":               {body: `{"_t":"Ok","code":"TODO_LOCKED"}`, expect: decode.ErrMismatch},
		"code wrong type":         {body: `{"_t":"Err","code":7}`, expect: decode.ErrWrongType},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := contract.DecodeResponse(sel, 400, []byte(tc.body))
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestResponseDecoder_rejects_unauthorised(t *testing.T) {
	t.Parallel()

	// A plain endpoint's vocabulary does not include the reserved code.
	sel := contract.ResponseDecoder(todoCodes, todoData)

	_, err := contract.DecodeResponse(sel, 400, []byte(`{"_t":"Err","code":"UNAUTHORISED"}`))
	assert.ErrorIs(t, err, decode.ErrMismatch)
}

func TestBearerDecoders_accept_unauthorised(t *testing.T) {
	t.Parallel()

	tests := map[string]func(status int) decode.Decoder[contract.Response[todoCode, todo]]{
		"auth":  contract.AuthResponseDecoder(todoCodes, todoData),
		"admin": contract.AdminResponseDecoder(todoCodes, todoData),
	}
	for name, sel := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := contract.DecodeResponse(sel, 400, []byte(`{"_t":"Err","code":"UNAUTHORISED"}`))
			require.NoError(t, err)
			assert.Equal(t, contract.TagErr, res.Tag)
			assert.Equal(t, todoCode(contract.CodeUnauthorised), res.Code)

			// The endpoint's own vocabulary still applies.
			res, err = contract.DecodeResponse(sel, 400, []byte(`{"_t":"Err","code":"TODO_NOT_FOUND"}`))
			require.NoError(t, err)
			assert.Equal(t, codeTodoNotFound, res.Code)

			_, err = contract.DecodeResponse(sel, 400, []byte(`{"_t":"Err","code":"WHO_KNOWS"}`))
			assert.ErrorIs(t, err, decode.ErrNoMatch)
		})
	}
}

func TestBearerDecoders_try_unauthorised_first(t *testing.T) {
	t.Parallel()

	// A vocabulary decoder that rewrites every code. The reserved
	// literal must win before the vocabulary sees the value.
	greedy := decode.Map(decode.String(), func(string) (todoCode, error) {
		return "REWRITTEN", nil
	})
	sel := contract.AuthResponseDecoder(greedy, todoData)

	res, err := contract.DecodeResponse(sel, 400, []byte(`{"_t":"Err","code":"UNAUTHORISED"}`))
	require.NoError(t, err)
	assert.Equal(t, todoCode(contract.CodeUnauthorised), res.Code)

	res, err = contract.DecodeResponse(sel, 400, []byte(`{"_t":"Err","code":"TODO_LOCKED"}`))
	require.NoError(t, err)
	assert.Equal(t, todoCode("REWRITTEN"), res.Code)
}

func TestResponseDecoder_server_error(t *testing.T) {
	t.Parallel()

	// The error ID is opaque: it decodes no matter how strict the
	// vocabulary and data decoders are.
	sel := contract.ResponseDecoder(decode.Reject[todoCode]("no codes"), decode.Reject[todo]("no data"))

	res, err := contract.DecodeResponse(sel, 500, []byte(`{"_t":"ServerError","errorID":"01J3ZK9Q6R"}`))
	require.NoError(t, err)
	assert.Equal(t, contract.TagServerError, res.Tag)
	assert.Equal(t, "01J3ZK9Q6R", res.ErrorID)
}

func TestResponseDecoder_server_error_failures(t *testing.T) {
	t.Parallel()

	sel := contract.ResponseDecoder(todoCodes, todoData)

	tests := map[string]struct {
		body   string
		expect error
	}{
		"missing errorID":    {body: `{"_t":"ServerError"}`, expect: decode.ErrMissingField},
		"errorID wrong type": {body: `{"_t":"ServerError","errorID":17}`, expect: decode.ErrWrongType},
		"wrong tag":          {body: `{"_t":"Err","errorID":"x"}`, expect: decode.ErrMismatch},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := contract.DecodeResponse(sel, 500, []byte(tc.body))
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestResponseDecoder_panics_on_unexpected_status(t *testing.T) {
	t.Parallel()

	sel := contract.ResponseDecoder(todoCodes, todoData)

	for _, status := range []int{100, 201, 204, 302, 401, 404, 418, 503} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, func() { sel(status) })
		})
	}
}

func TestDecodeResponse_panics_before_reading_body(t *testing.T) {
	t.Parallel()

	sel := contract.ResponseDecoder(todoCodes, todoData)

	// The body is never inspected for an off-protocol status; even
	// garbage bytes reach the panic.
	assert.PanicsWithValue(t,
		"contract: no envelope decoder for status 201 (protocol statuses are 200, 400 and 500)",
		func() {
			_, _ = contract.DecodeResponse(sel, 201, []byte("not json at all"))
		},
	)
}

func TestDecodeResponse_idempotent(t *testing.T) {
	t.Parallel()

	sel := contract.AuthResponseDecoder(todoCodes, todoData)
	body := []byte(`{"_t":"Ok","data":{"id":"t9","title":"again"}}`)

	first, err := contract.DecodeResponse(sel, 200, body)
	require.NoError(t, err)
	second, err := contract.DecodeResponse(sel, 200, body)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
