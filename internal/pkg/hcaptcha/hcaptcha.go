package hcaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultVerifyURL = "https://hcaptcha.com/siteverify"

type Response struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Client verifies hCaptcha tokens against the siteverify endpoint.
type Client struct {
	Secret    string
	VerifyURL string
	HTTP      *http.Client
}

func New(secret string) *Client {
	return &Client{
		Secret:    secret,
		VerifyURL: DefaultVerifyURL,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a secret is configured. A nil client is disabled.
func (c *Client) Enabled() bool {
	return c != nil && c.Secret != ""
}

func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, fmt.Errorf("hCaptcha token is empty")
	}
	if !c.Enabled() {
		return false, fmt.Errorf("hCaptcha secret is not set")
	}

	formData := url.Values{
		"secret":   {c.Secret},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.VerifyURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build hCaptcha request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request to hCaptcha API: %v", err)
	}
	defer resp.Body.Close()

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return false, fmt.Errorf("failed to decode hCaptcha API response: %v", err)
	}

	if !response.Success {
		errorMsg := "hCaptcha validation failed"
		if len(response.ErrorCodes) > 0 {
			errorMsg = errorMsg + ": " + strings.Join(response.ErrorCodes, ", ")
		}
		return false, fmt.Errorf("%s", errorMsg)
	}

	return true, nil
}
