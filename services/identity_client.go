// services/identity_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"football-stats-api/logs"
)

// IdentityClient talks to the external identity service that owns token
// verification. Every failure is terminal for the request — no retries.
type IdentityClient struct {
	BaseURL      string
	ServiceToken string
	Client       *http.Client
}

type verifyResponse struct {
	UserID string `json:"user_id"`
}

func NewIdentityClient(baseURL, serviceToken string) *IdentityClient {
	return &IdentityClient{
		BaseURL:      baseURL,
		ServiceToken: serviceToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// VerifyToken calls /auth/verify on the identity service and returns the
// user id the token belongs to.
func (c *IdentityClient) VerifyToken(ctx context.Context, token string) (string, error) {
	url := fmt.Sprintf("%s/auth/verify", c.BaseURL)

	reqBody := map[string]interface{}{
		"id_token": token,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ServiceToken)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		logs.Log.Debugf("identity service /auth/verify returned %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("token verification failed: %d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if out.UserID == "" {
		return "", fmt.Errorf("identity service returned empty user id")
	}

	return out.UserID, nil
}
