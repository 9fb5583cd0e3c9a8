package contract_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/contract"
	"github.com/bjaus/contract/contracttest"
)

func TestEncodeSSEEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := contract.EncodeSSEEvent(&buf, contract.SSEEvent{
		ID:    "7",
		Event: "update",
		Data:  []byte(`{"_t":"Ok","data":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "id: 7\nevent: update\ndata: {\"_t\":\"Ok\",\"data\":1}\n\n", buf.String())
}

func TestEncodeSSEEvent_multiline_data(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := contract.EncodeSSEEvent(&buf, contract.SSEEvent{Data: []byte("line one\nline two")})
	require.NoError(t, err)
	assert.Equal(t, "data: line one\ndata: line two\n\n", buf.String())
}

func TestEventScanner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	events := []contract.SSEEvent{
		{ID: "1", Event: "created", Data: []byte("first")},
		{Data: []byte("second")},
		{ID: "3", Data: []byte("third")},
	}
	for _, ev := range events {
		require.NoError(t, contract.EncodeSSEEvent(&buf, ev))
	}

	sc := contract.NewEventScanner(&buf)
	var got []contract.SSEEvent
	for sc.Scan() {
		got = append(got, sc.Event())
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, events, got)
}

func TestEventScanner_multiline_data(t *testing.T) {
	t.Parallel()

	sc := contract.NewEventScanner(strings.NewReader("data: line one\ndata: line two\n\n"))
	require.True(t, sc.Scan())
	assert.Equal(t, "line one\nline two", string(sc.Event().Data))
	assert.False(t, sc.Scan())
}

func TestEventScanner_skips_comments(t *testing.T) {
	t.Parallel()

	input := ": keepalive\ndata: payload\n: another comment\n\n"
	sc := contract.NewEventScanner(strings.NewReader(input))
	require.True(t, sc.Scan())
	assert.Equal(t, "payload", string(sc.Event().Data))
}

func TestEventScanner_discards_unterminated_block(t *testing.T) {
	t.Parallel()

	sc := contract.NewEventScanner(strings.NewReader("data: complete\n\ndata: cut off mid-stream\n"))
	require.True(t, sc.Scan())
	assert.Equal(t, "complete", string(sc.Event().Data))
	assert.False(t, sc.Scan())
	assert.NoError(t, sc.Err())
}

func TestEventScanner_value_spacing(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line   string
		expect string
	}{
		"single space": {line: "data: x\n\n", expect: "x"},
		"no space":     {line: "data:x\n\n", expect: "x"},
		"extra space":  {line: "data:  x\n\n", expect: " x"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sc := contract.NewEventScanner(strings.NewReader(tc.line))
			require.True(t, sc.Scan())
			assert.Equal(t, tc.expect, string(sc.Event().Data))
		})
	}
}

func TestEventScanner_blank_lines_between_events(t *testing.T) {
	t.Parallel()

	sc := contract.NewEventScanner(strings.NewReader("data: a\n\n\n\ndata: b\n\n"))
	require.True(t, sc.Scan())
	assert.Equal(t, "a", string(sc.Event().Data))
	require.True(t, sc.Scan())
	assert.Equal(t, "b", string(sc.Event().Data))
	assert.False(t, sc.Scan())
}

func TestStreamEndpoint_events(t *testing.T) {
	t.Parallel()

	ep := contract.BearerStreamGet("/todos/{id}/events", todoParamsDec, authSel)

	var buf bytes.Buffer
	for _, td := range []todo{
		{ID: "t1", Title: "first"},
		{ID: "t2", Title: "second"},
	} {
		wire, err := contract.EncodeOk(td)
		require.NoError(t, err)
		require.NoError(t, contract.EncodeSSEEvent(&buf, contract.SSEEvent{Event: "todo", Data: wire}))
	}

	events := contracttest.DecodeEvents(t, ep, &buf)
	require.Len(t, events, 2)
	assert.Equal(t, contract.TagOk, events[0].Tag)
	assert.Equal(t, "t1", events[0].Data.ID)
	assert.Equal(t, "t2", events[1].Data.ID)
}
