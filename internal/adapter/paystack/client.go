package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrTransactionNotFound indicates the provider does not know the reference.
var ErrTransactionNotFound = errors.New("transaction not found")

// TooManyRequestsError represents rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes the transaction operations of the payment provider.
type Client interface {
	Initialize(ctx context.Context, req InitializeRequest) (*Checkout, error)
	Verify(ctx context.Context, reference string) (*Transaction, error)
}

// HTTPClient implements Client via the provider REST API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewHTTPClient creates provider client with default timeout.
func NewHTTPClient(baseURL, secretKey string, logger *zap.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse paystack url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("paystack url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Initialize starts a hosted checkout for the given amount.
func (c *HTTPClient) Initialize(ctx context.Context, req InitializeRequest) (*Checkout, error) {
	payload := initializePayload{
		Email:       req.Email,
		Amount:      ToMinor(req.Amount),
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode initialize request: %w", err)
	}

	var checkout Checkout
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body), &checkout); err != nil {
		return nil, err
	}
	if checkout.Reference == "" {
		checkout.Reference = req.Reference
	}
	return &checkout, nil
}

// Verify fetches the current state of a transaction by reference.
func (c *HTTPClient) Verify(ctx context.Context, reference string) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodGet, path.Join("/transaction/verify", reference), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpointPath string, body io.Reader, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("decode paystack response: %w", err)
		}
		if !env.Status {
			return fmt.Errorf("paystack rejected request: %s", env.Message)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode paystack data: %w", err)
		}
		return nil
	case http.StatusNotFound:
		return ErrTransactionNotFound
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("paystack request failed",
			zap.String("method", method),
			zap.String("path", endpointPath),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return fmt.Errorf("paystack error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
