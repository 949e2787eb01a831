package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/yashrajoria/storefront-client/errors"
	"github.com/yashrajoria/storefront-client/logger"
)

// TokenSource supplies the bearer token for authenticated calls
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Response is a completed call. Body holds the raw bytes whether or not
// they were decoded.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	JSON       bool
}

// GatewayClient talks to the storefront HTTP API
type GatewayClient struct {
	baseURL        string
	client         *http.Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
	log            *zap.Logger
}

// NewGatewayClient builds a client for baseURL. A zero timeout means calls
// wait for the server indefinitely.
func NewGatewayClient(baseURL string, timeout time.Duration, log *zap.Logger) *GatewayClient {
	return &GatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logger.OrNop(log),
	}
}

// SetAuth wires the token source and the hook run when the server answers 401
func (g *GatewayClient) SetAuth(tokens TokenSource, onUnauthorized func(ctx context.Context)) {
	g.tokens = tokens
	g.onUnauthorized = onUnauthorized
}

func (g *GatewayClient) Do(ctx context.Context, method, path string, query url.Values, headers http.Header, body io.Reader) (*http.Response, error) {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}

	return g.client.Do(req)
}

// DoJSON performs an unauthenticated JSON call
func (g *GatewayClient) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) (*Response, error) {
	resp, err := g.send(ctx, method, path, query, http.Header{}, in, out)
	if err != nil {
		logger.Error(ctx, "Request failed", err, zap.String("method", method), zap.String("path", path))
	}
	return resp, err
}

// DoAuthenticated performs a JSON call carrying the bearer token. A 401 runs
// the unauthorized hook before the error is returned.
func (g *GatewayClient) DoAuthenticated(ctx context.Context, method, path string, query url.Values, in, out any) (*Response, error) {
	token, ok := "", false
	if g.tokens != nil {
		token, ok = g.tokens.Token(ctx)
	}
	if !ok || token == "" {
		return nil, apperrors.Wrap(apperrors.ErrNoToken, nil)
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)

	resp, err := g.send(ctx, method, path, query, headers, in, out)
	if err != nil {
		if apperrors.StatusCode(err) == http.StatusUnauthorized {
			if g.onUnauthorized != nil {
				g.onUnauthorized(ctx)
			}
			err = apperrors.Wrap(apperrors.ErrAuthenticationFailed, err)
		}
		g.log.Error("Authenticated request failed",
			zap.String("request_id", logger.RequestID(ctx)),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return resp, err
	}
	return resp, nil
}

func (g *GatewayClient) send(ctx context.Context, method, path string, query url.Values, headers http.Header, in, out any) (*Response, error) {
	requestID := logger.RequestID(ctx)
	if requestID == "unknown" {
		requestID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, requestID)
	}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	headers.Set("X-Request-ID", requestID)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	start := time.Now()
	httpResp, err := g.Do(ctx, method, path, query, headers, body)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       raw,
		JSON:       isJSON(httpResp.Header.Get("Content-Type")),
	}

	g.log.Debug("http_call",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, statusError(httpResp, raw)
	}

	if resp.JSON && out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("decode response body: %w", err)
		}
	}
	return resp, nil
}

// statusError builds the error for a non-2xx response, keeping the server's
// {"error": "..."} message when there is one.
func statusError(resp *http.Response, raw []byte) error {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	appErr := apperrors.FromStatus(resp.StatusCode, text)

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		appErr.Err = errors.New(body.Error)
	}
	return appErr
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
