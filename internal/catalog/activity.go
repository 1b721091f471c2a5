package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"catalog-service/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const liveWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	// Clients authenticate with a bearer token, not cookies.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func activityChannel(playlistID string) string {
	return "playlists:" + playlistID + ":activities"
}

// publishActivity announces a playlist change on Redis. Failures are logged only.
func (s *Server) publishActivity(ctx context.Context, rec store.ActivityRecord) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		s.logger.Error("marshal activity", "playlist", rec.PlaylistID, "err", err)
		return
	}
	if err := s.rdb.Publish(ctx, activityChannel(rec.PlaylistID), data).Err(); err != nil {
		s.logger.Warn("publish activity", "playlist", rec.PlaylistID, "err", err)
	}
}

// GET /playlists/{id}/activities/live streams activity events over a websocket
// until either side closes.
func (s *Server) handleLiveActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	playlistID := chi.URLParam(r, "id")

	if err := s.playlists.VerifyPlaylistAccess(r.Context(), playlistID, userID); err != nil {
		s.writeFail(w, r, err)
		return
	}
	if s.rdb == nil {
		writeError(w, http.StatusServiceUnavailable, "live activity feed is unavailable")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := s.rdb.Subscribe(ctx, activityChannel(playlistID))
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		s.writeFail(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade", "playlist", playlistID, "err", err)
		return
	}
	defer conn.Close()

	// Reading is only needed to notice the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				s.logger.Debug("ws write", "playlist", playlistID, "err", err)
				return
			}
		}
	}
}
