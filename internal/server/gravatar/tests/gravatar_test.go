package tests

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/gravatar"
)

// Путь запроса содержит md5 от нормализованного email
func TestURL_OK(t *testing.T) {
	wantHash := fmt.Sprintf("%x", md5.Sum([]byte("test@mail.com")))

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := gravatar.New(srv.URL, time.Second)

	// регистр и пробелы не должны влиять на хэш
	url, err := c.URL(context.Background(), "  Test@Mail.com ")
	require.NoError(t, err)

	require.Equal(t, "/avatar/"+wantHash, gotPath)
	require.Contains(t, url, wantHash)
	require.Contains(t, url, "d=404")
}

// 404 от Gravatar означает «аватара нет»
func TestURL_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := gravatar.New(srv.URL, time.Second)

	_, err := c.URL(context.Background(), "test@mail.com")
	require.Error(t, err)
}

// Недоступный сервер — тоже ошибка, а не паника
func TestURL_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := gravatar.New(srv.URL, time.Second)

	_, err := c.URL(context.Background(), "test@mail.com")
	require.Error(t, err)
}
