package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection.
type Repositories struct {
	User        *UserRepository
	ParentLink  *ParentLinkRepository
	Application *ApplicationRepository
	Requirement *RequirementRepository
	Document    *DocumentRepository
	ParentNote  *ParentNoteRepository
	University  *UniversityRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		ParentLink:  NewParentLinkRepository(db),
		Application: NewApplicationRepository(db),
		Requirement: NewRequirementRepository(db),
		Document:    NewDocumentRepository(db),
		ParentNote:  NewParentNoteRepository(db),
		University:  NewUniversityRepository(db),
	}
}
