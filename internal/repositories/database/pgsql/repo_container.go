package pgsql

import (
	sq "github.com/Masterminds/squirrel"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sqlizer = sq.Sqlizer

// Persistence is the PostgreSQL persistence collaborator.
type Persistence struct {
	BaseRepository
}

// NewPersistence wraps an open pool. Schema migrations are run separately.
func NewPersistence(dbPool *pgxpool.Pool) *Persistence {
	return &Persistence{BaseRepository: BaseRepository{Pool: dbPool}}
}

var _ portsrepo.PersistenceFacade = (*Persistence)(nil)
