package hcaptcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("secret") == "s3cret" && r.PostForm.Get("response") == "good" {
			_, _ = w.Write([]byte(`{"success":true,"hostname":"shop.test"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	c := New("s3cret")
	c.VerifyURL = srv.URL
	c.HTTP = srv.Client()

	ok, err := c.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Verify(context.Background(), "bad")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "invalid-input-response")
}

func TestVerifyNeedsTokenAndSecret(t *testing.T) {
	_, err := New("s3cret").Verify(context.Background(), "")
	assert.Error(t, err)

	_, err = New("").Verify(context.Background(), "tok")
	assert.Error(t, err)

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}
