package app

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	Avatar        services.AvatarService
	Client        services.ClientService
	Job           services.JobService
	Quote         services.QuoteService
	Note          services.NoteService
	Communication services.CommunicationService
	Directory     services.DirectoryService
	Profile       services.ProfileService
	Export        services.ExportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) (Services, error) {
	log.Info("Wiring services...")

	// Avatar rendering needs a TTF on disk; without one, clients simply
	// have no generated image.
	var avatarService services.AvatarService
	if strings.TrimSpace(os.Getenv("AVATAR_FONT")) != "" {
		as, err := services.NewAvatarService(log, r.Client)
		if err != nil {
			return Services{}, fmt.Errorf("init avatar service: %w", err)
		}
		avatarService = as
	} else {
		log.Warn("AVATAR_FONT not set, client avatars disabled")
	}

	authService := services.NewAuthService(db, log, r.Provider, r.ProviderToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	clientService := services.NewClientService(db, log, r.Client, r.Job, r.Quote, r.Note, r.Communication, avatarService, c.SummaryCache)
	jobService := services.NewJobService(db, log, r.Client, r.Job, c.SummaryCache)
	quoteService := services.NewQuoteService(db, log, r.Client, r.Quote)
	noteService := services.NewNoteService(db, log, r.Client, r.Note)
	commService := services.NewCommunicationService(db, log, r.Client, r.Communication)
	directoryService := services.NewDirectoryService(db, log, r.Client, r.Job, c.SummaryCache)
	profileService := services.NewProfileService(db, log, r.Client, r.Job, r.Quote, r.Note, r.Communication)
	exportService := services.NewExportService(db, log, r.Client, r.Job)

	return Services{
		Auth:          authService,
		Avatar:        avatarService,
		Client:        clientService,
		Job:           jobService,
		Quote:         quoteService,
		Note:          noteService,
		Communication: commService,
		Directory:     directoryService,
		Profile:       profileService,
		Export:        exportService,
	}, nil
}
