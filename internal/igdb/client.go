// Package igdb is a client for the IGDB v4 API.
//
// IGDB authenticates with Twitch OAuth2 client credentials (app id + secret)
// and speaks the Apicalypse query language in POST bodies. The free tier is
// limited to 4 requests per second, which the client enforces with a local
// limiter on top of the pipeline's coarser inter-batch delays.
package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://api.igdb.com/v4"
	defaultTokenURL = "https://id.twitch.tv/oauth2/token"

	requestsPerSecond = 4

	// Refresh the token this long before Twitch says it expires.
	tokenExpiryBuffer = 60 * time.Second
)

// Client issues Apicalypse queries against IGDB, transparently refreshing its
// cached bearer token when it expires. The token lives on the client struct,
// so wiring one client through the call chain gives the whole process one
// shared cache.
type Client struct {
	clientID     string
	clientSecret string

	baseURL    string
	tokenURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
	now        func() time.Time

	mu             sync.Mutex
	token          string
	tokenExpiresAt time.Time
}

func NewClient(clientID, clientSecret string, logger *logrus.Logger) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		limiter:      rate.NewLimiter(requestsPerSecond, requestsPerSecond),
		logger:       logger,
		now:          time.Now,
	}
}

// Token returns a valid bearer token, refreshing the cached one once its
// expiry has passed.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiresAt) {
		return c.token, nil
	}
	return c.refreshToken(ctx)
}

func (c *Client) refreshToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	c.token = result.AccessToken
	c.tokenExpiresAt = c.now().Add(time.Duration(result.ExpiresIn)*time.Second - tokenExpiryBuffer)
	c.logger.WithField("expires_at", c.tokenExpiresAt).Debug("refreshed IGDB token")

	return c.token, nil
}

// Query POSTs an Apicalypse body to the named collection and decodes the JSON
// array response into dst. Non-2xx responses come back as *APIError.
func (c *Client) Query(ctx context.Context, collection, body string, dst any) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+collection, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s query: %w", collection, err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("query %s: %w", collection, newAPIError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %w", collection, err)
	}
	return nil
}

// Games queries the "games" collection.
func (c *Client) Games(ctx context.Context, body string) ([]Game, error) {
	var games []Game
	if err := c.Query(ctx, "games", body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// PopularityPrimitives queries the "popularity_primitives" collection.
func (c *Client) PopularityPrimitives(ctx context.Context, body string) ([]PopularityPrimitive, error) {
	var prims []PopularityPrimitive
	if err := c.Query(ctx, "popularity_primitives", body, &prims); err != nil {
		return nil, err
	}
	return prims, nil
}

// EscapeString escapes a value for interpolation into an Apicalypse string
// literal.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
