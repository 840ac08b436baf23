package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pairloom/garden-engine/internal/database/postgres"
	"github.com/pairloom/garden-engine/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Garden  repository.Garden
	Profile repository.Profile
	Pair    repository.Pair
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Garden:  postgres.NewGardenRepository(dbPool),
		Profile: postgres.NewProfileRepository(dbPool),
		Pair:    postgres.NewPairRepository(dbPool),
	}
}
