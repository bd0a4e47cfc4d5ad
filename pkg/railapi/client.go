package railapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	requestTimeout       = 15 * time.Second
	defaultRetryInterval = 500 * time.Millisecond
	defaultMaxRetries    = 3
	userAgent            = "railtrack-go/1.0"
)

// Client talks to the RailTrack backend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenStore
	tracer     trace.Tracer

	retryInterval time.Duration
	maxRetries    uint64

	refreshMu sync.Mutex

	Auth     *AuthService
	PNR      *PNRService
	Stations *StationService
	Trains   *TrainService
	Trips    *TripService
}

// Requests that never carry a refreshable session.
var unauthenticatedPaths = map[string]bool{
	"/auth/login":    true,
	"/auth/register": true,
	"/auth/refresh":  true,
}

type envelope struct {
	Success    bool             `json:"success"`
	Data       json.RawMessage  `json:"data"`
	Error      string           `json:"error"`
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	Pagination *ctdf.Pagination `json:"pagination"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T
	Pagination ctdf.Pagination
}

func NewClient(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore(Session{})
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   requestTimeout,
		},
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		tokens:        tokens,
		tracer:        otel.Tracer("railtrack-api-client"),
		retryInterval: defaultRetryInterval,
		maxRetries:    defaultMaxRetries,
	}

	c.Auth = &AuthService{client: c}
	c.PNR = &PNRService{client: c}
	c.Stations = &StationService{client: c}
	c.Trains = &TrainService{client: c}
	c.Trips = &TripService{client: c}

	return c
}

func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type response struct {
	statusCode int
	body       []byte
	token      string
}

// do performs the request with retries and a single token refresh on 401
// and returns the decoded envelope of a successful response.
func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body interface{}) (*envelope, error) {
	ctx, span := c.tracer.Start(ctx, "railtrack.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("api.path", path),
		),
	)
	defer span.End()

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := c.sendWithRetry(ctx, method, path, query, bodyBytes)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if resp.statusCode == http.StatusUnauthorized && !unauthenticatedPaths[path] {
		if err := c.refresh(ctx, resp.token); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("Token refresh failed")

			if clearErr := c.tokens.Clear(); clearErr != nil {
				log.Error().Err(clearErr).Msg("Failed to clear stored session")
			}

			span.RecordError(err)
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}

		resp, err = c.sendWithRetry(ctx, method, path, query, bodyBytes)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.statusCode))

	env, err := decodeEnvelope(resp)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return env, nil
}

func (c *Client) sendWithRetry(ctx context.Context, method string, path string, query url.Values, body []byte) (*response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	var resp *response
	operation := func() error {
		var err error
		resp, err = c.send(ctx, method, path, query, body, true)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}

		if isTransientStatus(resp.statusCode) {
			return &APIError{StatusCode: resp.statusCode, Message: http.StatusText(resp.statusCode)}
		}

		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("path", path).Dur("wait", wait).Msg("Retrying request")
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx), notify)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && resp != nil {
			// Out of retries on a transient status, report what the server said.
			return resp, nil
		}
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method string, path string, query url.Values, body []byte, authenticated bool) (*response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	var token string
	if authenticated {
		session, err := c.tokens.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load session")
		}
		token = session.Token
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &response{statusCode: resp.StatusCode, body: respBody, token: token}, nil
}

// refresh exchanges the stored refresh token for a new token pair. staleToken
// is the access token the rejected request carried; if another request has
// already refreshed it the call is a no-op.
func (c *Client) refresh(ctx context.Context, staleToken string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	session, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if session.Token != "" && session.Token != staleToken {
		return nil
	}
	if session.RefreshToken == "" {
		return errors.New("no refresh token stored")
	}

	body, err := json.Marshal(map[string]string{"refreshToken": session.RefreshToken})
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh", nil, body, false)
	if err != nil {
		return err
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return err
	}

	var tokens struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(env.Data, &tokens); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if tokens.Token == "" {
		return errors.New("refresh response did not contain a token")
	}

	session.Token = tokens.Token
	session.RefreshToken = tokens.RefreshToken

	return c.tokens.Save(session)
}

func decodeEnvelope(resp *response) (*envelope, error) {
	env := &envelope{}
	decodeErr := json.Unmarshal(resp.body, env)

	if resp.statusCode < 200 || resp.statusCode > 299 {
		apiErr := &APIError{StatusCode: resp.statusCode, Code: env.Code, Message: env.Error}
		if apiErr.Message == "" {
			apiErr.Message = env.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(resp.body))
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.statusCode)
		}
		return nil, apiErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if !env.Success {
		message := env.Error
		if message == "" {
			message = env.Message
		}
		return nil, &APIError{StatusCode: resp.statusCode, Code: env.Code, Message: message}
	}

	return env, nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// request returns nil with a nil error when the backend reports success
// without any data.
func request[T any](ctx context.Context, c *Client, method string, path string, query url.Values, body interface{}) (*T, error) {
	env, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	if isNull(env.Data) {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return &out, nil
}

func requestList[T any](ctx context.Context, c *Client, method string, path string, query url.Values, body interface{}) ([]T, error) {
	out, err := request[[]T](ctx, c, method, path, query, body)
	if err != nil || out == nil {
		return nil, err
	}

	return *out, nil
}

func requestPage[T any](ctx context.Context, c *Client, path string, query url.Values) (*Page[T], error) {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{}
	if !isNull(env.Data) {
		if err := json.Unmarshal(env.Data, &page.Items); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}

	return page, nil
}

func pageQuery(page int, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	return query
}
