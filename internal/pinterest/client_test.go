package pinterest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquimia/internal/app"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080/callback",
	}, WithBaseURL(srv.URL))
}

func TestAuthorizationURL(t *testing.T) {
	c := NewClient(Credentials{ClientID: "client-id", RedirectURI: "http://localhost:8080/callback"})

	raw := c.AuthorizationURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "boards:read,pins:read", q.Get("scope"))
	assert.Equal(t, "state-123", q.Get("state"))
}

func TestExchangeCode(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostFormValue("grant_type"))
		assert.Equal(t, "the-code", r.PostFormValue("code"))
		assert.Equal(t, "client-secret", r.PostFormValue("client_secret"))

		fmt.Fprint(w, `{"access_token":"the-token","token_type":"bearer"}`)
	}))

	token, err := c.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "the-token", token)
}

func TestExchangeCodeFailure(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := c.ExchangeCode(context.Background(), "bad-code")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrExternal)
}

func TestListBoardsPagination(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/boards", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		if r.URL.Query().Get("bookmark") == "" {
			fmt.Fprint(w, `{"items":[{"id":"b1","name":"Vision","pin_count":3}],"bookmark":"page2"}`)
			return
		}
		fmt.Fprint(w, `{"items":[{"id":"b2","name":"Travel","description":"italy"}],"bookmark":""}`)
	}))

	boards, err := c.ListBoards(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, Board{ID: "b1", Name: "Vision", PinCount: 3}, boards[0])
	assert.Equal(t, Board{ID: "b2", Name: "Travel", Description: "italy"}, boards[1])
}

func TestListPins(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/boards/b1/pins", r.URL.Path)
		fmt.Fprint(w, `{"items":[
			{"id":"p1","title":"moon work","media":{"images":{"originals":{"url":"https://img/p1.jpg"},"150x150":{"url":"https://img/p1-small.jpg"}}}},
			{"id":"p2","title":"no media"}
		],"bookmark":""}`)
	}))

	pins, err := c.ListPins(context.Background(), "token", "b1")
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, "https://img/p1.jpg", pins[0].ImageURL, "prefers the originals rendition")
	assert.Empty(t, pins[1].ImageURL)
}

func TestListPinsRequiresBoardID(t *testing.T) {
	c := NewClient(Credentials{})
	_, err := c.ListPins(context.Background(), "token", "")
	assert.ErrorIs(t, err, app.ErrValidation)
}

func TestUnauthorizedMapsToExternalError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListBoards(context.Background(), "expired-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrExternal)
	assert.Contains(t, err.Error(), "rejected the credential")
}

func TestRateLimitMapsToExternalError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.ListBoards(context.Background(), "token")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrExternal)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestMissingTokenRejectedLocally(t *testing.T) {
	called := false
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.ListBoards(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrExternal)
	assert.False(t, called, "no request goes out without a token")
}
