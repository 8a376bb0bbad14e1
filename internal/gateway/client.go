// Package gateway implements contract.Connection and contract.Decoder on top
// of an HTTP contract gateway that fronts the chain node. The gateway holds
// the contract metadata and performs argument encoding and result decoding.
package gateway

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
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"google.golang.org/api/googleapi"

	"chaintask/internal/config"
	"chaintask/internal/contract"
)

const (
	// APITimeout is the default timeout for gateway calls.
	APITimeout = 30 * time.Second

	// RequestIDHeader carries the per-request id.
	RequestIDHeader = "X-Request-Id"

	// Transaction statuses reported by the gateway.
	StatusInBlock   = "inBlock"
	StatusFinalized = "finalized"
)

// ErrConfig is returned by New when the configuration cannot produce a client.
var ErrConfig = errors.New("gateway not configured")

// Client implements contract.Connection and contract.Decoder.
type Client struct {
	http    *http.Client
	base    *url.URL
	timeout time.Duration
}

// New creates a gateway client from config.
// Auth uses the client-credentials flow when a client id is configured,
// a static bearer token when a token is configured, and none otherwise.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("%w: set %s", ErrConfig, config.EnvGatewayURL)
	}

	var httpClient *http.Client
	switch {
	case cfg.ClientID != "":
		if cfg.TokenURL == "" {
			return nil, fmt.Errorf("%w: client credentials need %s", ErrConfig, config.EnvTokenURL)
		}
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = oauth2.NewClient(ctx, cc.TokenSource(ctx))
	case cfg.Token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	default:
		httpClient = &http.Client{}
	}

	c, err := NewWithHTTPClient(httpClient, cfg.GatewayURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid gateway url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid gateway url: %s", baseURL)
	}
	return &Client{http: httpClient, base: base, timeout: APITimeout}, nil
}

type queryRequest struct {
	ID      string `json:"id"`
	Network string `json:"network"`
	Caller  string `json:"caller"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type transactRequest struct {
	ID      string             `json:"id"`
	Network string             `json:"network"`
	Account string             `json:"account"`
	Signer  string             `json:"signer"`
	Method  string             `json:"method"`
	Options contract.TxOptions `json:"options"`
	Args    []any              `json:"args"`
}

type transactResponse struct {
	TxHash string `json:"txHash"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Query implements contract.Connection.
func (c *Client) Query(ctx context.Context, caller string, h *contract.Handle, method string, args ...any) (contract.RawResult, error) {
	if args == nil {
		args = []any{}
	}
	req := queryRequest{
		ID:      uuid.NewString(),
		Network: h.Network,
		Caller:  caller,
		Method:  method,
		Args:    args,
	}

	body, err := c.post(ctx, h, "query", req.ID, req)
	if err != nil {
		return nil, err
	}
	return contract.RawResult(body), nil
}

// Transact implements contract.Connection.
func (c *Client) Transact(ctx context.Context, tx contract.Tx) (contract.TxResult, error) {
	args := tx.Args
	if args == nil {
		args = []any{}
	}
	req := transactRequest{
		ID:      uuid.NewString(),
		Network: tx.Handle.Network,
		Account: tx.Account,
		Method:  tx.Method,
		Options: tx.Options,
		Args:    args,
	}
	if tx.Signer != nil {
		req.Signer = tx.Signer.Source()
	}

	body, err := c.post(ctx, tx.Handle, "transact", req.ID, req)
	if err != nil {
		return contract.TxResult{}, err
	}

	var resp transactResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return contract.TxResult{}, fmt.Errorf("invalid transaction response: %w", err)
	}

	switch resp.Status {
	case StatusInBlock, StatusFinalized:
		return contract.TxResult{Hash: resp.TxHash, Status: resp.Status}, nil
	}

	msg := resp.Error
	if msg == "" {
		msg = "transaction " + resp.Status
	}
	return contract.TxResult{}, errors.New(msg)
}

func (c *Client) post(ctx context.Context, h *contract.Handle, action, requestID string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	u := c.base.JoinPath("v1", "contracts", h.Address, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(err)
	}
	defer res.Body.Close()

	if err := googleapi.CheckResponse(res); err != nil {
		return nil, wrapError(err)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, wrapError(err)
	}
	return body, nil
}

// wrapError wraps gateway errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("gateway rejected credentials (%d)", gerr.Code)
		case http.StatusNotFound:
			return fmt.Errorf("contract not found on gateway")
		}
		if msg := strings.TrimSpace(gerr.Message); msg != "" {
			return fmt.Errorf("gateway error %d: %s", gerr.Code, msg)
		}
		return fmt.Errorf("gateway error %d", gerr.Code)
	}

	return err
}
