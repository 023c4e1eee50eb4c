package notify

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type toastEvent struct {
	Severity Severity `json:"severity"`
	Summary  string   `json:"summary"`
	Detail   string   `json:"detail,omitempty"`
	Life     int64    `json:"life"`
}

// StreamHandler streams toasts to the browser as server-sent events
func StreamHandler(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, unsubscribe := h.Subscribe()
		defer unsubscribe()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.Header("Content-Type", "text/event-stream")
		c.Status(http.StatusOK)
		c.Writer.Flush()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case t, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("toast", toastEvent{
					Severity: t.Severity,
					Summary:  t.Summary,
					Detail:   t.Detail,
					Life:     t.LifeMillis(),
				})
				return true
			}
		})
	}
}
