package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ErrProviderFailure indicates the provider rejected or failed a request.
var ErrProviderFailure = errors.New("provider request failed")

// Identity describes the authenticated user to the providers.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// CollabClient authorizes users against the collaborative-document
// provider's room-scoped token endpoint.
type CollabClient struct {
	baseURL   string
	secretKey string
	httpc     *http.Client
	logger    *slog.Logger
}

// NewCollabClient creates a client for the collab provider.
// baseURL is overridable so tests can point at a local fake.
func NewCollabClient(baseURL, secretKey string, logger *slog.Logger) *CollabClient {
	return &CollabClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		secretKey: secretKey,
		httpc:     newHTTPClient(),
		logger:    logger.With("component", "gateway.collab"),
	}
}

// collabAuthRequest is the provider's authorize request body.
type collabAuthRequest struct {
	UserID   string         `json:"userId"`
	UserInfo collabUserInfo `json:"userInfo"`
}

type collabUserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Authorize requests a room access token for the user and relays the
// provider's raw token response to the caller.
func (c *CollabClient) Authorize(ctx context.Context, roomID string, id Identity) (json.RawMessage, error) {
	body, err := json.Marshal(collabAuthRequest{
		UserID: id.UserID,
		UserInfo: collabUserInfo{
			Name:  id.Name,
			Email: id.Email,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal authorize request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/rooms/%s/authorize", c.baseURL, roomID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build authorize request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authorize request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read authorize response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("collab authorize rejected",
			"room_id", roomID,
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("%w: authorize returned status %d", ErrProviderFailure, resp.StatusCode)
	}

	return json.RawMessage(payload), nil
}
