package payday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/steinunnb/vendorwatch/internal/common"
)

// tokenSource exchanges client credentials for a bearer token against the
// Payday auth endpoint. The API does not report token lifetimes, so tokens are
// held until a request comes back 401, at which point the client forces a
// fresh exchange.
type tokenSource struct {
	ctx        context.Context
	cfg        Config
	httpClient *http.Client
}

type authRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
}

// Token implements oauth2.TokenSource.
func (ts *tokenSource) Token() (*oauth2.Token, error) {
	if ts.cfg.ClientID == "" || ts.cfg.ClientSecret == "" {
		return nil, common.ErrMissingCredentials
	}

	body, err := json.Marshal(authRequest{
		ClientID:     ts.cfg.ClientID,
		ClientSecret: ts.cfg.ClientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode auth request: %w", err)
	}

	url := ts.cfg.BaseURL + "/auth/token"
	req, err := http.NewRequestWithContext(ts.ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Version", ts.cfg.APIVersion)
	req.Header.Set("Accept", "application/json")

	slog.Debug("Requesting Payday access token", "url", url)

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: auth returned %d - %s", common.ErrAuthFailed, resp.StatusCode, string(respBody))
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}
	if auth.AccessToken == "" {
		return nil, fmt.Errorf("%w: no accessToken in auth response", common.ErrAuthFailed)
	}

	return &oauth2.Token{AccessToken: auth.AccessToken}, nil
}
