// Package documents resolves KYC document content addresses against a
// public gateway. Documents are stored content-addressed off the
// ledger, the ledger record only carries the address.
package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jpillora/backoff"

	"github.com/php369/kyc-blockchain-system/errors"
)

const maxFetchAttempts = 4

// Service builds gateway URLs for document content addresses and
// fetches the documents behind them.
type Service struct {
	baseURL string
	client  *http.Client
}

// NewService initiates a new document service. baseURL is the content
// gateway prefix, for example https://gateway.ipfscdn.io/ipfs/.
func NewService(baseURL string) *Service {
	return &Service{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// URL returns the gateway URL for a content address.
func (s *Service) URL(contentAddress string) (string, error) {
	if err := ValidateContentAddress(contentAddress); err != nil {
		return "", err
	}
	return s.baseURL + url.PathEscape(contentAddress), nil
}

// Fetch retrieves the document behind a content address. Transient
// gateway failures are retried with backoff.
func (s *Service) Fetch(ctx context.Context, contentAddress string) ([]byte, error) {
	u, err := s.URL(contentAddress)
	if err != nil {
		return nil, err
	}

	b := &backoff.Backoff{
		Min:    200 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(b.Duration()):
			case <-ctx.Done():
				return nil, &errors.UserCancelledError{}
			}
		}

		body, err := s.fetchOnce(ctx, u)
		if err == nil {
			return body, nil
		}
		if _, retryable := err.(*errors.NetworkError); !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (s *Service) fetchOnce(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &errors.UserCancelledError{}
		}
		return nil, &errors.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, &errors.RequestError{
			StatusCode: http.StatusNotFound,
			Err:        fmt.Errorf("document not found at gateway"),
		}
	case resp.StatusCode >= 500:
		return nil, &errors.NetworkError{Err: fmt.Errorf("gateway returned status %d", resp.StatusCode)}
	default:
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
}

// ValidateContentAddress checks that a content address is present and
// plausibly shaped. Gateways reject anything else anyway, this check
// keeps obviously broken references off the network.
func ValidateContentAddress(contentAddress string) error {
	if contentAddress == "" || strings.ContainsAny(contentAddress, " /") {
		return &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid document content address: %q", contentAddress),
		}
	}
	return nil
}
