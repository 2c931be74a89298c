package cartclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() Option { return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))) }

func TestAddToCartSuccess(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAccept = r.URL.Path, r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", quiet())
	require.NoError(t, err)

	n := c.AddToCart(context.Background(), 7, "Rose Mist")
	assert.Equal(t, Notice{Kind: Success, Message: `"Rose Mist" added to cart!`}, n)
	assert.True(t, n.OK())
	assert.Equal(t, "/add_to_cart/7", gotPath)
	assert.Equal(t, "application/json", gotAccept)
}

func TestAddToCartFailures(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		c, err := New(srv.URL, quiet())
		require.NoError(t, err)

		n := c.AddToCart(context.Background(), 1, "Mist")
		assert.Equal(t, Notice{Kind: Failure, Message: "Error adding to cart"}, n, "status %d", status)
		srv.Close()
	}
}

func TestAddToCartTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, quiet())
	require.NoError(t, err)
	n := c.AddToCart(context.Background(), 1, "Mist")
	assert.False(t, n.OK())
	assert.Equal(t, "Error adding to cart", n.Message)
}

func TestAddToCartCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, quiet())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, Failure, c.AddToCart(ctx, 1, "Mist").Kind)
}

func TestNewRejectsBadBase(t *testing.T) {
	_, err := New("ftp://shop")
	assert.Error(t, err)
	_, err = New("::")
	assert.Error(t, err)
}
