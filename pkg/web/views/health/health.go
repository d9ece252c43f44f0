package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/middleware/redis"
)

type Handle struct{}

func NewHandle() *Handle { return &Handle{} }

func (h *Handle) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the backing stores answer. Redis is optional, a
// missing client only shows up as disabled.
func (h *Handle) Ready(ctx *gin.Context) {
	status := http.StatusOK
	checks := gin.H{}

	checks["database"] = "ok"
	if ds := db.DB(); ds == nil {
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	} else if sqlDB, err := ds.DBIns().DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	}

	checks["redis"] = "disabled"
	if client := redis.GetClient(); client != nil {
		checks["redis"] = "ok"
		if err := client.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
	}

	ctx.JSON(status, checks)
}
