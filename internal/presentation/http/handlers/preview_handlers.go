// Package handlers provides the websocket endpoint for live design preview
package handlers

import (
	"net/http"

	"github.com/InkVite/inkvite-go/internal/infrastructure/messaging"
	"github.com/InkVite/inkvite-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var previewUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin editor clients are expected; auth happens before upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PreviewHandlers exposes the live preview websocket.
type PreviewHandlers struct {
	broadcaster *messaging.PreviewBroadcaster
	logger      *logging.ChanneledLogger
}

// NewPreviewHandlers creates preview handlers with injected dependencies
func NewPreviewHandlers(broadcaster *messaging.PreviewBroadcaster, logger *logging.ChanneledLogger) *PreviewHandlers {
	return &PreviewHandlers{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetPreviewSocket upgrades the connection and streams design/RSVP events.
// An optional designId query parameter filters events to one design.
func (h *PreviewHandlers) GetPreviewSocket(c *gin.Context) {
	conn, err := previewUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Realtime().Error("Websocket upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.Client{
		Conn:     conn,
		DesignID: c.Query("designId"),
		Send:     make(chan []byte, 16),
	}

	h.broadcaster.Register(client)
	go client.WritePump()
	go client.ReadPump(h.broadcaster)
}
