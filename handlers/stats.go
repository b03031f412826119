package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RanjeetKaur14/UniSphere/store"
)

// activeWindow is the trailing window for the distinct-active-authors
// metric.
const activeWindow = 24 * time.Hour

func (h *Handler) GetStats(c *gin.Context) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	ctx, cancel := requestCtx(c)
	defer cancel()

	stats, err := h.store.Stats(ctx, store.StatsWindow{
		DayStart:    dayStart.UnixMilli(),
		ActiveSince: now.Add(-activeWindow).UnixMilli(),
	})
	if err != nil {
		h.fail(c, "stats", err, "Failed to fetch statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
