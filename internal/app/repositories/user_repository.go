package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kzhao/applytrack/internal/app/models"
	userrepo "github.com/kzhao/applytrack/internal/app/repositories/user"
)

// IUserRepository defines the user persistence operations the services depend on.
type IUserRepository interface {
	CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateStudentTx(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	FindStudentIDByEmail(ctx context.Context, email string) (int64, error)
	FindStudentIDByEmailTx(ctx context.Context, tx pgx.Tx, email string) (int64, error)
	UpdateStudentProfile(ctx context.Context, student *models.Student) error
	CreateParentTx(ctx context.Context, tx pgx.Tx, parent *models.Parent) (int64, error)
	GetParentByUserID(ctx context.Context, userID int64) (*models.Parent, error)
}

// UserRepository combines account, student and parent persistence.
type UserRepository struct {
	*userrepo.Repository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		Repository: userrepo.NewRepository(db),
	}
}
