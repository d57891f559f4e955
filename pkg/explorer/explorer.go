// Package explorer reads account data from a toncenter compatible HTTP API.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/ton-deeplink/internal/metrics"
	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/codec"
)

const maxResponseSize = 1 << 20

// TxStatus is the settlement state of a submitted transaction.
type TxStatus string

const (
	TxStatusUnknown   TxStatus = "unknown"
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
)

// Config contains the configuration required to initialize the explorer client.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RetryCount int
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute url", c.BaseURL)
	}
	if c.RetryCount < 0 {
		return errors.New("retry_count must not be negative")
	}
	return nil
}

type settings struct {
	logger *zap.Logger
	doer   heimdall.Doer
}

// Option configures the explorer client.
type Option func(*settings)

// WithLogger sets a custom logger for the client.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithDoer replaces the underlying HTTP transport.
func WithDoer(d heimdall.Doer) Option {
	return func(s *settings) { s.doer = d }
}

// Balance is an account balance in nanotons and TON.
type Balance struct {
	Address string          `json:"address"`
	Nano    string          `json:"nano"`
	TON     decimal.Decimal `json:"ton"`
}

// Client is a read-only explorer client.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	logger  *zap.Logger
}

// New creates an explorer client with timeout and retries.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpOpts := []httpclient.Option{
		httpclient.WithHTTPTimeout(timeout),
		httpclient.WithRetryCount(cfg.RetryCount),
		httpclient.WithRetrier(heimdall.NewRetrier(
			heimdall.NewConstantBackoff(100*time.Millisecond, 50*time.Millisecond))),
	}
	if s.doer != nil {
		httpOpts = append(httpOpts, httpclient.WithHTTPClient(s.doer))
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpclient.NewClient(httpOpts...),
		logger:  s.logger,
	}, nil
}

type apiResponse struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
	Code   int             `json:"code"`
}

// GetBalance returns the balance of address.
func (c *Client) GetBalance(ctx context.Context, address string) (*Balance, error) {
	if err := codec.ValidateAddress(address); err != nil {
		return nil, apperrors.BadRequestError(err, "invalid address")
	}

	var nano string
	if err := c.call(ctx, "getAddressBalance", url.Values{"address": {address}}, &nano); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(nano)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("explorer returned a non-numeric balance %q: %w", nano, err))
	}
	return &Balance{
		Address: address,
		Nano:    amount.String(),
		TON:     amount.Shift(-codec.NanoPerTon),
	}, nil
}

// GetTransactionStatus reports the status of a signed transaction BOC.
// Locating a transaction by its external message needs BOC parsing, which
// this client does not do; the status is always TxStatusUnknown.
func (c *Client) GetTransactionStatus(_ context.Context, boc string) (TxStatus, error) {
	if err := codec.ValidateBase64(boc); err != nil {
		return TxStatusUnknown, apperrors.BadRequestError(err, "invalid boc")
	}
	return TxStatusUnknown, nil
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+method+"?"+params.Encode(), nil)
	if err != nil {
		return apperrors.GeneralError(err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		metrics.ErrorsTotal.WithLabelValues("explorer", "transport").Inc()
		c.logger.Warn("explorer request failed", zap.String("method", method), zap.Error(err))
		return apperrors.GeneralError(fmt.Errorf("explorer %s: %w", method, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return apperrors.GeneralError(fmt.Errorf("read explorer response: %w", err))
	}

	var ar apiResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		metrics.ErrorsTotal.WithLabelValues("explorer", "decode").Inc()
		return apperrors.GeneralError(fmt.Errorf("decode explorer response (status %d): %w", resp.StatusCode, err))
	}
	if !ar.OK || resp.StatusCode != http.StatusOK {
		metrics.ErrorsTotal.WithLabelValues("explorer", "api").Inc()
		c.logger.Info("explorer returned an error",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("error", ar.Error))
		if resp.StatusCode == http.StatusNotFound {
			return apperrors.ResourceNotFoundError(errors.New(ar.Error), "account not found")
		}
		return apperrors.GeneralError(fmt.Errorf("explorer %s failed with status %d: %s", method, resp.StatusCode, ar.Error))
	}
	if err := json.Unmarshal(ar.Result, out); err != nil {
		return apperrors.GeneralError(fmt.Errorf("decode explorer result: %w", err))
	}
	return nil
}
