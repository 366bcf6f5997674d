package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/botsamples/internal/hub"
)

// StreamPath serves the transcript as a websocket stream of JSON entries.
const StreamPath = "/api/transcript/ws"

const (
	sendBuffer   = 64
	writeTimeout = 10 * time.Second
)

// StreamHandler upgrades the request to a websocket and forwards every
// broadcast entry to the client until either side goes away. The client
// first receives the current backlog.
func StreamHandler(h *hub.Hub, store *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true, // The transcript is a local debugging aid.
		})
		if err != nil {
			slog.Error("Failed to upgrade connection to WebSocket", "error", err)
			return err
		}
		defer conn.CloseNow()

		// The read side only exists to notice the client closing.
		ctx := conn.CloseRead(c.Request().Context())

		sub := hub.NewSubscriber(sendBuffer)
		if !h.Subscribe(ctx, sub) {
			conn.Close(websocket.StatusGoingAway, "transcript unavailable")
			return nil
		}
		defer h.Unsubscribe(sub)

		// Entries recorded between Subscribe and Recent arrive on both paths.
		var lastSeq uint64
		for _, e := range store.Recent(0) {
			lastSeq = e.Seq
			data, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := write(ctx, conn, data); err != nil {
				return nil
			}
		}

		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-sub.Send:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "server shutting down")
					return nil
				}
				if isReplayed(msg, lastSeq) {
					continue
				}
				if err := write(ctx, conn, msg); err != nil {
					if !errors.Is(err, context.Canceled) {
						slog.Warn("Transcript websocket write failed", "error", err)
					}
					return nil
				}
			}
		}
	}
}

// isReplayed reports whether msg is an entry already written from the
// backlog.
func isReplayed(msg []byte, lastSeq uint64) bool {
	var e struct {
		Seq uint64 `json:"seq"`
	}
	if err := json.Unmarshal(msg, &e); err != nil {
		return false
	}
	return e.Seq != 0 && e.Seq <= lastSeq
}

func write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
