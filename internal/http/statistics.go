package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/services"
)

type StatisticsController struct {
	stats *services.Statistics
}

func NewStatisticsController(stats *services.Statistics) *StatisticsController {
	return &StatisticsController{stats: stats}
}

// GetSummary returns practice totals for the trailing windows
// GET /api/statistics/summary
func (sc *StatisticsController) GetSummary(c *gin.Context) {
	summary, err := sc.stats.Summary()
	if err != nil {
		respondInternalError(c, err, "statistics summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
