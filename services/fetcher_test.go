package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherReturnsBodyOnSuccess(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	}))
	defer origin.Close()

	data, err := NewFetcher().Fetch(context.Background(), origin.URL+"/img.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestFetcherReportsNonSuccessStatus(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer origin.Close()

	_, err := NewFetcher().Fetch(context.Background(), origin.URL+"/missing.jpg")

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.Contains(t, fe.Error(), "unexpected status 404")
}

func TestFetcherReportsTransportFailure(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	origin.Close() // connection refused from here on

	_, err := NewFetcher().Fetch(context.Background(), origin.URL+"/img.jpg")

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.Status)
	assert.NotNil(t, fe.Unwrap())
}

func TestFetcherRejectsInvalidURL(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "://not-a-url")

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
}
