package proxy

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

var upgrader = websocket.Upgrader{
	// The remote manager's pages are served through this same proxy,
	// so cross-origin checks add nothing here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// forwardWS bridges a websocket to the remote instance. Both pump
// directions run until either side closes, then the other is torn
// down by closing its connection.
func (h *Handler) forwardWS(w http.ResponseWriter, r *http.Request, base string) {
	target := toWSScheme(base) + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	remote, resp, err := websocket.DefaultDialer.DialContext(r.Context(), target, nil)
	if err != nil {
		h.logger.Error(err)
		status := http.StatusBadGateway
		if resp != nil {
			status = resp.StatusCode
		}
		writeJSON(w, status, map[string]any{"error": "remote websocket unavailable"})
		return
	}
	defer func() { _ = remote.Close() }()

	local, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error(err)
		return
	}
	defer func() { _ = local.Close() }()

	var g errgroup.Group
	g.Go(func() error {
		defer func() { _ = remote.Close() }()
		return pump(local, remote)
	})
	g.Go(func() error {
		defer func() { _ = local.Close() }()
		return pump(remote, local)
	})
	if err := g.Wait(); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.logger.Warn("websocket bridge for " + r.URL.Path + " ended: " + err.Error())
	}
}

// pump copies messages from src to dst until src closes.
func pump(src, dst *websocket.Conn) error {
	for {
		kind, payload, err := src.ReadMessage()
		if err != nil {
			return err
		}
		if err := dst.WriteMessage(kind, payload); err != nil {
			return err
		}
	}
}

func toWSScheme(base string) string {
	if strings.HasPrefix(base, "https://") {
		return "wss://" + strings.TrimPrefix(base, "https://")
	}
	return "ws://" + strings.TrimPrefix(base, "http://")
}
