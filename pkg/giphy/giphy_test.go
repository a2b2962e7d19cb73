package giphy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeGiphy(t *testing.T, gifBody []byte) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/gifs/random":
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "Merry Christmas", r.URL.Query().Get("tag"))
			assert.Equal(t, "PG-13", r.URL.Query().Get("rating"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"data":{"id":"abc123","fixed_height_downsampled_url":"%s/media/abc123.gif"}}`, srv.URL)
		case "/media/abc123.gif":
			w.Header().Set("Content-Type", "image/gif")
			_, _ = w.Write(gifBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRandom(t *testing.T) {
	gifBody := []byte("GIF89a-fake-image-data")
	srv := newFakeGiphy(t, gifBody)

	client := NewClient("test-key", WithBaseURL(srv.URL))
	gif, err := client.Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", gif.ID)
	assert.Equal(t, srv.URL+"/media/abc123.gif", gif.URL)
	assert.Equal(t, gifBody, gif.Data)
}

func TestRandomNestedImageURL(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/gifs/random":
			fmt.Fprintf(w, `{"data":{"id":"xyz","images":{"fixed_height_downsampled":{"url":"%s/media/xyz.gif"}}}}`, srv.URL)
		case "/media/xyz.gif":
			_, _ = w.Write([]byte("gif-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	gif, err := NewClient("k", WithBaseURL(srv.URL)).Random(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "xyz", gif.ID)
}

func TestRandomAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient("bad-key", WithBaseURL(srv.URL)).Random(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "giphy random request failed")
}

func TestRandomMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", WithBaseURL(srv.URL)).Random(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id or image url")
}

func TestOptions(t *testing.T) {
	c := NewClient("k", WithTag("Happy Holidays"), WithRating("G"))
	assert.Equal(t, "Happy Holidays", c.tag)
	assert.Equal(t, "G", c.rating)

	// Empty overrides keep the defaults.
	c = NewClient("k", WithTag(""), WithRating(""))
	assert.Equal(t, DefaultTag, c.tag)
	assert.Equal(t, DefaultRating, c.rating)
}
