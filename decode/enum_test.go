package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/contract/decode"
)

type fruit string

const (
	fruitApple  fruit = "APPLE"
	fruitBanana fruit = "BANANA"
)

func TestEnum(t *testing.T) {
	t.Parallel()

	d := decode.Enum(fruitApple, fruitBanana)

	got, err := d.Decode("APPLE")
	require.NoError(t, err)
	assert.Equal(t, fruitApple, got)

	got, err = d.Decode("BANANA")
	require.NoError(t, err)
	assert.Equal(t, fruitBanana, got)
}

func TestEnum_rejects_unknown_values(t *testing.T) {
	t.Parallel()

	d := decode.Enum(fruitApple, fruitBanana)

	_, err := d.Decode("CHERRY")
	require.ErrorIs(t, err, decode.ErrMismatch)
	assert.Contains(t, err.Error(), "APPLE")
	assert.Contains(t, err.Error(), "BANANA")
}

func TestEnum_rejects_non_strings(t *testing.T) {
	t.Parallel()

	d := decode.Enum(fruitApple, fruitBanana)

	for name, input := range map[string]any{
		"number": 1.0,
		"null":   nil,
		"object": map[string]any{},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := d.Decode(input)
			assert.ErrorIs(t, err, decode.ErrWrongType)
		})
	}
}

func TestEnum_values(t *testing.T) {
	t.Parallel()

	d := decode.Enum(fruitApple, fruitBanana)
	assert.Equal(t, []string{"APPLE", "BANANA"}, d.Values())
}
