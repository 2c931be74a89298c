package flash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunor.shop/app/pkg/view"
)

func TestFlashRoundTrip(t *testing.T) {
	codec := NewCodec([]byte("k"), "", false)
	assert.Equal(t, DefaultName, codec.CookieName)

	v, err := codec.Encode(view.Flash{Kind: view.FlashSuccess, Message: `"Mist" added to cart!`})
	require.NoError(t, err)
	f, err := codec.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, `"Mist" added to cart!`, f.Message)
}

func TestFlashRejectsEmptyAndForged(t *testing.T) {
	codec := NewCodec([]byte("k"), "", false)
	v, err := codec.Encode(view.Flash{Kind: view.FlashInfo, Message: "  "})
	require.NoError(t, err)
	_, err = codec.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)

	forged, err := NewCodec([]byte("x"), "", false).Encode(view.Flash{Message: "hi"})
	require.NoError(t, err)
	_, err = codec.Decode(forged)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFlashUnknownKindFallsBackToInfo(t *testing.T) {
	codec := NewCodec([]byte("k"), "", false)
	v, err := codec.Encode(view.Flash{Kind: "neon", Message: "hello"})
	require.NoError(t, err)
	f, err := codec.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashInfo, f.Kind)
}
