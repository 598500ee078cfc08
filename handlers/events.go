package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tripflow/services/notification"

	"github.com/gin-gonic/gin"
)

// EventHub is injected at startup before routes are registered.
var EventHub *notification.Hub

// SessionEventsHandler streams job and session events for one session
// over server-sent events until the client disconnects.
func SessionEventsHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	if EventHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event streaming is not enabled"})
		return
	}

	events, cancel := EventHub.Subscribe(sessionID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Type, data)
			c.Writer.Flush()
		}
	}
}
