package app

import (
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
)

type Repos struct {
	Provider      repos.ProviderRepo
	ProviderToken repos.ProviderTokenRepo
	Client        repos.ClientRepo
	Job           repos.JobRepo
	Quote         repos.QuoteRepo
	Note          repos.NoteRepo
	Communication repos.CommunicationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Provider:      repos.NewProviderRepo(db, log),
		ProviderToken: repos.NewProviderTokenRepo(db, log),
		Client:        repos.NewClientRepo(db, log),
		Job:           repos.NewJobRepo(db, log),
		Quote:         repos.NewQuoteRepo(db, log),
		Note:          repos.NewNoteRepo(db, log),
		Communication: repos.NewCommunicationRepo(db, log),
	}
}
