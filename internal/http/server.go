package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
)

// Server owns the configured engine so app wiring exposes a single serve
// entrypoint instead of handing the raw gin.Engine around.
type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg), log: cfg.Log}
}

func (s *Server) Run(address string) error {
	if s.log != nil {
		s.log.Info("Server listening", "addr", address)
	}
	return s.Engine.Run(address)
}
