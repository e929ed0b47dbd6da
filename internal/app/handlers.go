package app

import (
	httpH "github.com/yardvine/yardvine-backend/internal/http/handlers"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth          *httpH.AuthHandler
	Client        *httpH.ClientHandler
	Job           *httpH.JobHandler
	Quote         *httpH.QuoteHandler
	Note          *httpH.NoteHandler
	Communication *httpH.CommunicationHandler
	Export        *httpH.ExportHandler
	Health        *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:          httpH.NewAuthHandler(s.Auth),
		Client:        httpH.NewClientHandler(s.Client, s.Directory, s.Profile),
		Job:           httpH.NewJobHandler(s.Job),
		Quote:         httpH.NewQuoteHandler(s.Quote),
		Note:          httpH.NewNoteHandler(s.Note),
		Communication: httpH.NewCommunicationHandler(s.Communication),
		Export:        httpH.NewExportHandler(s.Export),
		Health:        httpH.NewHealthHandler(),
	}
}
