package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DreamJournal_Go/internal/database/postgres"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// The profile store also serves accounts and ascension. The invite store also
// keeps the daily login counters.
type Repositories struct {
	Profile      repository.Profile
	Account      repository.Account
	Progression  repository.Progression
	Invite       repository.Invite
	LoginLimit   repository.LoginLimit
	Quest        repository.Quest
	Shop         repository.Shop
	Verification repository.Verification
	Catalog      repository.Catalog
	Admin        repository.Admin

	// CatalogStore exposes the upserts used by the seed sync
	CatalogStore *postgres.CatalogRepository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	profiles := postgres.NewProfileRepository(dbPool)
	invites := postgres.NewInviteRepository(dbPool)
	catalog := postgres.NewCatalogRepository(dbPool)

	return &Repositories{
		Profile:      profiles,
		Account:      profiles,
		Progression:  profiles,
		Invite:       invites,
		LoginLimit:   invites,
		Quest:        postgres.NewQuestRepository(dbPool),
		Shop:         postgres.NewShopRepository(dbPool),
		Verification: postgres.NewVerificationRepository(dbPool),
		Catalog:      catalog,
		Admin:        postgres.NewAdminRepository(dbPool),
		CatalogStore: catalog,
	}
}
