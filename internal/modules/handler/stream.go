package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/notify"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/serializer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the bearer token is the access control, not the origin
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

type StreamHandler struct {
	hub *notify.Hub
	log *zap.Logger
}

func NewStreamHandler(hub *notify.Hub, log *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, log: log}
}

// Stream godoc
//
//	@Summary		Live change stream
//	@Description	Upgrades to a websocket delivering row-change events filtered to the given site and unfiltered photo-insert events. Reconnecting replaces the previous subscription.
//	@Tags			stream
//	@Param			site_id	query	string	true	"Site ID to follow"	Format(uuid)
//	@Param			token	query	string	false	"Bearer token (websocket clients cannot set headers)"
//	@Security		BearerAuth
//	@Success		101	{string}	string	"switching protocols"
//	@Router			/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	siteID, err := uuid.Parse(c.Query("site_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid site id", err))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.hub.Subscribe(siteID)
	defer h.hub.Unsubscribe(sub)
	defer conn.Close()

	// Reader only watches for the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case ev, ok := <-sub.Events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				h.log.Debug("stream write failed", zap.Error(err))
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
