package app

import (
	"fmt"
	"os"
	"strings"

	redisclient "github.com/yardvine/yardvine-backend/internal/clients/redis"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
)

type Clients struct {
	SummaryCache redisclient.SummaryCache
}

// wireClients initializes optional external clients. Redis is skipped when
// REDIS_ADDR is unset; the summary endpoint then recomputes on every call.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	var cache redisclient.SummaryCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redisclient.NewSummaryCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis summary cache: %w", err)
		}
		cache = c
	}

	return Clients{SummaryCache: cache}, nil
}
