package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxreg/fluxreg/model"
)

func TestVerifyFeed_ValidRSS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<rss version="2.0"><channel>
			<title>Example Blog</title>
			<item><title>Post</title><link>http://example.com/1</link></item>
		</channel></rss>`))
	}))
	defer srv.Close()

	c := newTestClient(t, "https://mf.example")
	title, err := c.VerifyFeed(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Example Blog", title)
}

func TestVerifyFeed_NotAFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>not a feed</body></html>`))
	}))
	defer srv.Close()

	c := newTestClient(t, "https://mf.example")
	_, err := c.VerifyFeed(context.Background(), srv.URL)

	var re *model.RegistrationError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, model.ErrorTypeParsing, re.ErrorType)
}
