package app

import (
	yvhttp "github.com/yardvine/yardvine-backend/internal/http"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *yvhttp.Server {
	return yvhttp.NewServer(yvhttp.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		AuthMiddleware: mw.Auth,

		AuthHandler:          h.Auth,
		ClientHandler:        h.Client,
		JobHandler:           h.Job,
		QuoteHandler:         h.Quote,
		NoteHandler:          h.Note,
		CommunicationHandler: h.Communication,
		ExportHandler:        h.Export,
		HealthHandler:        h.Health,
	})
}
