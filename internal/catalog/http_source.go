package catalog

import (
	"bytes"
	"context"
	"errors"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/session"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPSource reads the catalog from a remote JSON API (GET {baseURL}/products).
type HTTPSource struct {
	baseURL string
	client  *http.Client
	creds   *session.Credentials
	breaker *gobreaker.CircuitBreaker[*domain.ProductPage]
}

func NewHTTPSource(baseURL string, creds *session.Credentials, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		creds: creds,
		breaker: gobreaker.NewCircuitBreaker[*domain.ProductPage](gobreaker.Settings{
			Name:        "catalog",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (s *HTTPSource) ListProducts(ctx context.Context) (*domain.ProductPage, error) {
	page, err := s.breaker.Execute(func() (*domain.ProductPage, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return page, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (*domain.ProductPage, error) {
	resp, err := s.get(ctx, "/products?limit=0")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && s.creds.RefreshToken() != "" {
		resp.Body.Close()
		if err := s.refresh(ctx); err != nil {
			return nil, err
		}
		if resp, err = s.get(ctx, "/products?limit=0"); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var page domain.ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return &page, nil
}

func (s *HTTPSource) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := s.creds.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.client.Do(req)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refresh exchanges the refresh token for a new token pair (POST /auth/refresh).
func (s *HTTPSource) refresh(ctx context.Context) error {
	body, err := json.Marshal(refreshRequest{RefreshToken: s.creds.RefreshToken()})
	if err != nil {
		return fmt.Errorf("encode refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh token: unexpected status %d", resp.StatusCode)
	}

	var tokens refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if tokens.AccessToken == "" {
		return errors.New("refresh token: empty access token")
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = s.creds.RefreshToken()
	}
	s.creds.SetTokens(tokens.AccessToken, tokens.RefreshToken)
	return nil
}
