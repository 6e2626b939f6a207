package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// roomNamePrefix namespaces provider rooms created by this service.
const roomNamePrefix = "pairdojo-"

// VoiceClient manages rooms and meeting tokens with the voice provider.
type VoiceClient struct {
	baseURL string
	apiKey  string
	domain  string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewVoiceClient creates a client for the voice provider.
// baseURL is overridable so tests can point at a local fake.
func NewVoiceClient(baseURL, apiKey, domain string, logger *slog.Logger) *VoiceClient {
	return &VoiceClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		domain:  domain,
		httpc:   newHTTPClient(),
		logger:  logger.With("component", "gateway.voice"),
	}
}

// RoomName derives the provider room name for one of our rooms.
func (c *VoiceClient) RoomName(roomID string) string {
	return roomNamePrefix + roomID
}

// RoomURL is the browser-facing URL for a provider room.
func (c *VoiceClient) RoomURL(roomName string) string {
	return fmt.Sprintf("https://%s/%s", c.domain, roomName)
}

type voiceRoomRequest struct {
	Name       string              `json:"name"`
	Properties voiceRoomProperties `json:"properties"`
}

type voiceRoomProperties struct {
	MaxParticipants   int  `json:"max_participants"`
	EnableChat        bool `json:"enable_chat"`
	EnableScreenshare bool `json:"enable_screenshare"`
	StartVideoOff     bool `json:"start_video_off"`
	StartAudioOff     bool `json:"start_audio_off"`
}

// EnsureRoom creates the provider room if it does not exist.
// A conflict response means the room already exists and is fine; other
// non-2xx statuses are logged but tolerated, since token creation is the
// authoritative failure point.
func (c *VoiceClient) EnsureRoom(ctx context.Context, roomName string, maxParticipants int) error {
	body, err := json.Marshal(voiceRoomRequest{
		Name: roomName,
		Properties: voiceRoomProperties{
			MaxParticipants:   maxParticipants,
			EnableChat:        false,
			EnableScreenshare: true,
			StartVideoOff:     true,
			StartAudioOff:     false,
		},
	})
	if err != nil {
		return fmt.Errorf("marshal room request: %w", err)
	}

	resp, err := c.post(ctx, "/v1/rooms", body)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		c.logger.Warn("voice room creation failed",
			"room_name", roomName,
			"status", resp.StatusCode,
		)
	}
	return nil
}

type voiceTokenRequest struct {
	Properties voiceTokenProperties `json:"properties"`
}

type voiceTokenProperties struct {
	RoomName          string `json:"room_name"`
	UserName          string `json:"user_name"`
	EnableScreenshare bool   `json:"enable_screenshare"`
	StartVideoOff     bool   `json:"start_video_off"`
	StartAudioOff     bool   `json:"start_audio_off"`
}

type voiceTokenResponse struct {
	Token string `json:"token"`
}

// CreateMeetingToken mints a meeting token for the user in the room.
func (c *VoiceClient) CreateMeetingToken(ctx context.Context, roomName, userName string) (string, error) {
	body, err := json.Marshal(voiceTokenRequest{
		Properties: voiceTokenProperties{
			RoomName:          roomName,
			UserName:          userName,
			EnableScreenshare: true,
			StartVideoOff:     true,
			StartAudioOff:     false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	resp, err := c.post(ctx, "/v1/meeting-tokens", body)
	if err != nil {
		return "", fmt.Errorf("create meeting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("voice token creation failed",
			"room_name", roomName,
			"status", resp.StatusCode,
		)
		return "", fmt.Errorf("%w: meeting token returned status %d", ErrProviderFailure, resp.StatusCode)
	}

	var token voiceTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.Token == "" {
		return "", fmt.Errorf("%w: empty meeting token", ErrProviderFailure)
	}
	return token.Token, nil
}

func (c *VoiceClient) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return c.httpc.Do(req)
}
