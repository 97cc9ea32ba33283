package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPChecker_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewHTTPChecker(0)

	code, err := c.Check(context.Background(), srv.URL+"/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)

	code, err = c.Check(context.Background(), srv.URL+"/down")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHTTPChecker_URLInvalida(t *testing.T) {
	c := NewHTTPChecker(time.Second)
	for _, u := range []string{"", "ftp://x", "not a url", "http://"} {
		_, err := c.Check(context.Background(), u)
		assert.Error(t, err, u)
	}
}

func TestHTTPChecker_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { <-block }))
	defer srv.Close()
	defer close(block)

	_, err := NewHTTPChecker(50 * time.Millisecond).Check(context.Background(), srv.URL)
	assert.Error(t, err)
}
