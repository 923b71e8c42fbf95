// Package pinterest consumes the Pinterest v5 API read-only: board listings,
// pins within a board, and the OAuth code exchange that produces the bearer
// credential. Credential acquisition beyond the code exchange (user consent,
// token storage) is the caller's concern; the client only needs a valid
// access token injected per call batch.
package pinterest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"alquimia/internal/app"
	"alquimia/internal/httpclient"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.pinterest.com/v5"

	// oauthAuthorizeURL is where the user grants access.
	oauthAuthorizeURL = "https://www.pinterest.com/oauth/"

	// defaultPageSize is the page_size sent on listing calls; the API caps
	// it at 250.
	defaultPageSize = 50
)

// Board is one board in the user's account.
type Board struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PinCount    int    `json:"pin_count"`
}

// Pin is one item on a board. ImageURL references the image; the bytes are
// never fetched by this package.
type Pin struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Credentials identify the registered application for the OAuth flow.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Client talks to the Pinterest API with an explicit timeout on every call.
type Client struct {
	baseURL string
	creds   Credentials
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (tests point this at a local server).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// NewClient builds a client for the given application credentials.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthorizationURL builds the URL the user visits to grant board access.
func (c *Client) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.creds.ClientID)
	q.Set("redirect_uri", c.creds.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "boards:read,pins:read")
	if state != "" {
		q.Set("state", state)
	}
	return oauthAuthorizeURL + "?" + q.Encode()
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.creds.ClientID)
	form.Set("client_secret", c.creds.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.creds.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", app.ExternalError("token exchange failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", app.ExternalError(fmt.Sprintf("token endpoint returned status %d", resp.StatusCode), nil)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := httpclient.DecodeJSONWithLimit(resp.Body, httpclient.DefaultBodyLimit, &payload); err != nil {
		return "", app.ExternalError("invalid token response", err)
	}
	if payload.AccessToken == "" {
		return "", app.ExternalError("token response missing access_token", nil)
	}
	return payload.AccessToken, nil
}

// ListBoards returns the user's boards, following bookmark pagination.
func (c *Client) ListBoards(ctx context.Context, accessToken string) ([]Board, error) {
	var boards []Board
	bookmark := ""
	for {
		var page struct {
			Items []struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description"`
				PinCount    int    `json:"pin_count"`
			} `json:"items"`
			Bookmark string `json:"bookmark"`
		}
		if err := c.getJSON(ctx, accessToken, "/boards", bookmark, &page); err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			boards = append(boards, Board{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				PinCount:    item.PinCount,
			})
		}
		if page.Bookmark == "" {
			return boards, nil
		}
		bookmark = page.Bookmark
	}
}

// ListPins returns the pins of one board, following bookmark pagination.
func (c *Client) ListPins(ctx context.Context, accessToken, boardID string) ([]Pin, error) {
	if boardID == "" {
		return nil, app.ValidationError("board id is required")
	}
	var pins []Pin
	bookmark := ""
	for {
		var page struct {
			Items    []pinPayload `json:"items"`
			Bookmark string       `json:"bookmark"`
		}
		path := fmt.Sprintf("/boards/%s/pins", url.PathEscape(boardID))
		if err := c.getJSON(ctx, accessToken, path, bookmark, &page); err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			pins = append(pins, item.toPin())
		}
		if page.Bookmark == "" {
			return pins, nil
		}
		bookmark = page.Bookmark
	}
}

// GetPin fetches one pin by id.
func (c *Client) GetPin(ctx context.Context, accessToken, pinID string) (Pin, error) {
	if pinID == "" {
		return Pin{}, app.ValidationError("pin id is required")
	}
	var payload pinPayload
	path := fmt.Sprintf("/pins/%s", url.PathEscape(pinID))
	if err := c.getJSON(ctx, accessToken, path, "", &payload); err != nil {
		return Pin{}, err
	}
	return payload.toPin(), nil
}

// pinPayload matches the wire shape of a pin, including the nested media
// block that carries the image reference.
type pinPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Media       struct {
		Images map[string]struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"media"`
}

func (p pinPayload) toPin() Pin {
	pin := Pin{ID: p.ID, Title: p.Title, Description: p.Description}
	// Prefer the original rendition; fall back to any size present.
	if img, ok := p.Media.Images["originals"]; ok {
		pin.ImageURL = img.URL
	} else {
		for _, img := range p.Media.Images {
			pin.ImageURL = img.URL
			break
		}
	}
	return pin
}

func (c *Client) getJSON(ctx context.Context, accessToken, path, bookmark string, out any) error {
	if accessToken == "" {
		return app.ExternalError("missing access token", nil)
	}

	u := c.baseURL + path
	q := url.Values{}
	q.Set("page_size", fmt.Sprintf("%d", defaultPageSize))
	if bookmark != "" {
		q.Set("bookmark", bookmark)
	}
	u += "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return app.ExternalError(fmt.Sprintf("request to %s failed", path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return app.ExternalError("import source rejected the credential", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return app.ExternalError("import source rate limit reached", nil)
	case resp.StatusCode != http.StatusOK:
		return app.ExternalError(fmt.Sprintf("import source returned status %d for %s", resp.StatusCode, path), nil)
	}

	if err := httpclient.DecodeJSONWithLimit(resp.Body, httpclient.DefaultBodyLimit, out); err != nil {
		return app.ExternalError("invalid response from import source", err)
	}
	return nil
}
