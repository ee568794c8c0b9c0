package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitelweb/ossync/internal/shared"
)

// DefaultRequestTimeout bounds a single API request when no timeout is
// configured.
const DefaultRequestTimeout = 20 * time.Second

// OutcomeKind classifies the result of fetching one work order.
type OutcomeKind int

const (
	// OutcomeFound means the order exists and its items were decoded.
	OutcomeFound OutcomeKind = iota
	// OutcomeNotFound means the API answered 404 for the folio.
	OutcomeNotFound
	// OutcomeTransient covers everything that may succeed on a later run:
	// timeouts, connection errors, unexpected statuses, double 401s.
	OutcomeTransient
)

// FetchOutcome is the per-folio result of a fetch. Failures are data here
// rather than errors: sync strategies aggregate outcomes and keep going
// instead of aborting on the first bad folio.
type FetchOutcome struct {
	Folio string
	Kind  OutcomeKind
	Items []WorkOrderTaskItem
	Err   error
}

// Client fetches work orders from the upstream API with bearer tokens from
// a [CredentialManager]. Safe for concurrent use.
type Client struct {
	baseURL string
	creds   *CredentialManager
	http    *http.Client
	timeout time.Duration
	logger  *log.Logger
}

// NewClient creates an API client. A zero timeout selects
// [DefaultRequestTimeout]; a nil httpClient selects [http.DefaultClient].
func NewClient(baseURL string, creds *CredentialManager, timeout time.Duration, httpClient *http.Client, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL: baseURL,
		creds:   creds,
		http:    httpClient,
		timeout: timeout,
		logger:  logger,
	}
}

// FetchByFolio retrieves every task item of one work order. The outcome
// kind distinguishes a missing order from a transient failure; Err is set
// only for [OutcomeTransient].
func (c *Client) FetchByFolio(ctx context.Context, folio string) FetchOutcome {
	env, err := c.getEnvelope(ctx, fmt.Sprintf("%s/work_orders/%s", c.baseURL, folio))
	switch {
	case errors.Is(err, shared.ErrWorkOrderNotFound):
		return FetchOutcome{Folio: folio, Kind: OutcomeNotFound}
	case err != nil:
		return FetchOutcome{Folio: folio, Kind: OutcomeTransient, Err: err}
	}
	return FetchOutcome{Folio: folio, Kind: OutcomeFound, Items: env.Data}
}

// FetchPage retrieves one page of the work-order listing. Pages are
// 1-based; a short or empty page signals the end of the listing to the
// caller.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) ([]WorkOrderTaskItem, error) {
	url := fmt.Sprintf("%s/work_orders?page=%d&per_page=%d", c.baseURL, page, perPage)
	env, err := c.getEnvelope(ctx, url)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// getEnvelope performs an authenticated GET and decodes the response
// envelope. A 401 triggers one token refresh and one retry of the same
// URL; a second 401 gives up so an upstream auth outage cannot loop.
func (c *Client) getEnvelope(ctx context.Context, url string) (*Envelope, error) {
	token, gen, err := c.creds.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		env, status, err := c.get(ctx, url, token)
		if err != nil {
			return nil, err
		}

		switch {
		case status == http.StatusUnauthorized:
			if attempt > 0 {
				return nil, fmt.Errorf("%w: still unauthorized after token refresh", shared.ErrNotAuthenticated)
			}
			c.logger.Warn("token rejected, refreshing", "url", url)
			token, gen, err = c.creds.Refresh(ctx, gen)
			if err != nil {
				return nil, err
			}
			continue
		case status == http.StatusNotFound:
			return nil, shared.ErrWorkOrderNotFound
		case status < 200 || status >= 300:
			return nil, fmt.Errorf("%w: unexpected status %d", shared.ErrAPIRequest, status)
		}

		return env, nil
	}
}

func (c *Client) get(ctx context.Context, url, token string) (*Envelope, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, nil
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", shared.ErrUnexpectedPayload, err)
	}
	return &env, resp.StatusCode, nil
}
