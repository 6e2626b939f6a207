package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pairdojo/pairdojo/internal/handler/dto"
	"github.com/pairdojo/pairdojo/internal/model"
)

func createRoomViaHandler(t *testing.T, h *RoomHandler, creator *model.Account, req dto.CreateRoomRequest) dto.RoomResponse {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/v1/rooms", req, creator))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create room failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp dto.RoomResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestRoomHandler_Create(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	h := NewRoomHandler(env.rooms, slog.Default())
	owner := &model.Account{ID: "u1", DisplayName: "Ada"}

	t.Run("private room includes invite code", func(t *testing.T) {
		resp := createRoomViaHandler(t, h, owner, dto.CreateRoomRequest{
			Title:    "Secret Club",
			Language: "rust",
			IsPublic: false,
			MaxUsers: 4,
		})
		if resp.InviteCode == "" {
			t.Error("private room should include an invite code")
		}
		if resp.CreatedByName != "Ada" {
			t.Errorf("created_by_name = %s, want Ada", resp.CreatedByName)
		}
	})

	t.Run("invalid payloads return 400", func(t *testing.T) {
		tests := []struct {
			name string
			req  dto.CreateRoomRequest
		}{
			{name: "short title", req: dto.CreateRoomRequest{Title: "ab", Language: "go", MaxUsers: 4}},
			{name: "unknown language", req: dto.CreateRoomRequest{Title: "Room", Language: "cobol", MaxUsers: 4}},
			{name: "too many users", req: dto.CreateRoomRequest{Title: "Room", Language: "go", MaxUsers: 50}},
			{name: "too few users", req: dto.CreateRoomRequest{Title: "Room", Language: "go", MaxUsers: 1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				h.Create(rec, authedRequest(http.MethodPost, "/api/v1/rooms", tt.req, owner))

				if rec.Code != http.StatusBadRequest {
					t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
				}
			})
		}
	})
}

func TestRoomHandler_ListAndGet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	h := NewRoomHandler(env.rooms, slog.Default())
	owner := &model.Account{ID: "u1", DisplayName: "Ada"}

	public := createRoomViaHandler(t, h, owner, dto.CreateRoomRequest{Title: "Public Room", Language: "go", IsPublic: true, MaxUsers: 6})
	createRoomViaHandler(t, h, owner, dto.CreateRoomRequest{Title: "Private Room", Language: "go", IsPublic: false, MaxUsers: 6})

	t.Run("list returns only public rooms", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.List(rec, authedRequest(http.MethodGet, "/api/v1/rooms", nil, owner))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp dto.RoomListResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Data) != 1 {
			t.Fatalf("len(data) = %d, want 1", len(resp.Data))
		}
		if resp.Data[0].RoomID != public.RoomID {
			t.Errorf("room id = %s, want %s", resp.Data[0].RoomID, public.RoomID)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/v1/rooms/"+public.RoomID, nil, owner)
		req = withURLParam(req, "roomID", public.RoomID)

		rec := httptest.NewRecorder()
		h.Get(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("get unknown room returns 404", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/v1/rooms/missing", nil, owner)
		req = withURLParam(req, "roomID", "missing")

		rec := httptest.NewRecorder()
		h.Get(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestRoomHandler_Join(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	h := NewRoomHandler(env.rooms, slog.Default())
	owner := &model.Account{ID: "owner", DisplayName: "Owner"}
	joiner := &model.Account{ID: "u2", DisplayName: "Grace"}

	public := createRoomViaHandler(t, h, owner, dto.CreateRoomRequest{Title: "Public Room", Language: "go", IsPublic: true, MaxUsers: 2})
	private := createRoomViaHandler(t, h, owner, dto.CreateRoomRequest{Title: "Private Room", Language: "go", IsPublic: false, MaxUsers: 6})

	join := func(roomID string, body any, account *model.Account) *httptest.ResponseRecorder {
		req := authedRequest(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", body, account)
		req = withURLParam(req, "roomID", roomID)
		rec := httptest.NewRecorder()
		h.Join(rec, req)
		return rec
	}

	t.Run("join public room without body", func(t *testing.T) {
		rec := join(public.RoomID, nil, joiner)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		var resp dto.RoomResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ActiveCount != 1 {
			t.Errorf("active_count = %d, want 1", resp.ActiveCount)
		}
	})

	t.Run("full room returns 400", func(t *testing.T) {
		env.registry.AddParticipant(public.RoomID, "filler")

		rec := join(public.RoomID, nil, &model.Account{ID: "u3", DisplayName: "Linus"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("private room without code returns 403", func(t *testing.T) {
		rec := join(private.RoomID, nil, joiner)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("private room with code succeeds", func(t *testing.T) {
		rec := join(private.RoomID, dto.JoinRoomRequest{InviteCode: private.InviteCode}, joiner)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("banned user returns 403", func(t *testing.T) {
		env.ledger.Kick(private.RoomID, "banned-user", time.Minute)

		rec := join(private.RoomID, dto.JoinRoomRequest{InviteCode: private.InviteCode}, &model.Account{ID: "banned-user", DisplayName: "Mallory"})
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("unknown room returns 404", func(t *testing.T) {
		rec := join("missing", nil, joiner)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestRoomHandler_QuickJoin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	h := NewRoomHandler(env.rooms, slog.Default())
	user := &model.Account{ID: "u1", DisplayName: "Ada"}

	rec := httptest.NewRecorder()
	h.QuickJoin(rec, authedRequest(http.MethodGet, "/api/v1/rooms/quick-join/find", nil, user))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp dto.QuickJoinResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Created {
		t.Error("first quick-join should create a room")
	}
	if resp.Room.Title != "Ada's Room" {
		t.Errorf("title = %s, want Ada's Room", resp.Room.Title)
	}
}

func TestModerationHandler_Kick(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rooms := NewRoomHandler(env.rooms, slog.Default())
	h := NewModerationHandler(env.rooms, slog.Default())

	owner := &model.Account{ID: "owner", DisplayName: "Owner"}
	room := createRoomViaHandler(t, rooms, owner, dto.CreateRoomRequest{Title: "Room", Language: "go", IsPublic: true, MaxUsers: 6})
	env.registry.AddParticipant(room.RoomID, "target")

	t.Run("non-owner returns 403", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Kick(rec, authedRequest(http.MethodPost, "/api/v1/moderation/kick", dto.KickRequest{
			RoomID: room.RoomID,
			UserID: "target",
		}, &model.Account{ID: "stranger", DisplayName: "Stranger"}))

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("owner kick succeeds", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Kick(rec, authedRequest(http.MethodPost, "/api/v1/moderation/kick", dto.KickRequest{
			RoomID: room.RoomID,
			UserID: "target",
		}, owner))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if !env.ledger.IsKicked(room.RoomID, "target") {
			t.Error("target should be banned after kick")
		}
	})
}

func TestModerationHandler_LogEvent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	h := NewModerationHandler(env.rooms, slog.Default())
	user := &model.Account{ID: "u1", DisplayName: "Ada"}

	t.Run("own event accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.LogEvent(rec, authedRequest(http.MethodPost, "/api/v1/events/log", dto.EventRequest{
			EventType: string(model.EventMessageSent),
			UserID:    "u1",
			RoomID:    "room-1",
		}, user))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	t.Run("event for another user returns 403", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.LogEvent(rec, authedRequest(http.MethodPost, "/api/v1/events/log", dto.EventRequest{
			EventType: string(model.EventMessageSent),
			UserID:    "someone-else",
			RoomID:    "room-1",
		}, user))

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("unknown event type returns 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.LogEvent(rec, authedRequest(http.MethodPost, "/api/v1/events/log", dto.EventRequest{
			EventType: "bogus",
			UserID:    "u1",
			RoomID:    "room-1",
		}, user))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
