package signedcookie

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	N int    `json:"n"`
	S string `json:"s"`
}

func TestSealOpen(t *testing.T) {
	secret := []byte("k")
	s, err := Seal(secret, payload{N: 2, S: "x"})
	require.NoError(t, err)

	var got payload
	require.NoError(t, Open(secret, s, &got))
	assert.Equal(t, payload{N: 2, S: "x"}, got)
}

func TestOpenRejects(t *testing.T) {
	secret := []byte("k")
	good, err := Seal(secret, payload{N: 1})
	require.NoError(t, err)
	body, sig, _ := strings.Cut(good, ".")
	forged, err := Seal([]byte("other"), payload{N: 99})
	require.NoError(t, err)

	for name, v := range map[string]string{
		"empty":         "",
		"no signature":  body,
		"extra part":    good + ".x",
		"bad signature": body + "." + strings.Repeat("A", len(sig)),
		"wrong secret":  forged,
		"not json":      "bm9wZQ." + sign(secret, "bm9wZQ"),
	} {
		t.Run(name, func(t *testing.T) {
			var got payload
			assert.ErrorIs(t, Open(secret, v, &got), ErrInvalid)
		})
	}
}
