package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/legal-assistant/internal/chat"
	"github.com/suPer8Hu/legal-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

const heartbeatInterval = 15 * time.Second

// streamEvents writes events as SSE until the stream ends or the client
// goes away. Event names: prediction, chunk, ping, done, error.
func streamEvents(c *gin.Context, events <-chan chat.Event) {
	// SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // helpful if behind nginx

	// avoid gin writing a JSON response later
	c.Status(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		// can't stream
		fmt.Fprintf(c.Writer, "event: error\ndata: flusher not supported\n\n")
		return
	}

	writeJSON := func(event string, payload any) {
		b, err := json.Marshal(payload)
		if err != nil {
			// last-resort: send a simple error that won't break SSE framing
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"message\":\"json marshal failed\"}\n\n")
			flusher.Flush()
			return
		}
		if event != "" {
			fmt.Fprintf(c.Writer, "event: %s\n", event)
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", string(b))
		flusher.Flush()
	}

	lang := middleware.Lang(c)
	ctx := c.Request.Context()

	// heartbeat ticker (keeps connections alive)
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case chat.EventPrediction:
				writeJSON("prediction", gin.H{
					"type":       "prediction",
					"label":      ev.Prediction.Label,
					"label_text": ev.Prediction.Label.Localized(lang),
					"confidence": ev.Prediction.Confidence,
				})
			case chat.EventChunk:
				writeJSON("chunk", gin.H{
					"type":  "chunk",
					"delta": ev.Delta,
				})
			case chat.EventDone:
				writeJSON("done", gin.H{
					"type":       "done",
					"message_id": ev.Message.ID,
					"message":    ev.Message,
				})
				return
			case chat.EventError:
				e := classify(ev.Err)
				writeJSON("error", gin.H{
					"type":    "error",
					"code":    e.code,
					"message": i18n.T(lang, e.key),
				})
				return
			}

		case <-ticker.C:
			writeJSON("ping", gin.H{
				"type": "ping",
				"ts":   time.Now().Unix(),
			})

		case <-ctx.Done():
			return
		}
	}
}
