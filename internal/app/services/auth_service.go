package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/db"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/auth"
	"github.com/kzhao/applytrack/internal/pkg/logger"
)

const minPasswordLength = 8

// AuthService handles registration and login.
type AuthService struct {
	userRepo   repositories.IUserRepository
	linkRepo   repositories.IParentLinkRepository
	txRunner   db.TxRunner
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	linkRepo repositories.IParentLinkRepository,
	txRunner db.TxRunner,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		linkRepo:   linkRepo,
		txRunner:   txRunner,
		jwtService: jwtService,
	}
}

// Register creates a user account with its role profile in one transaction.
// A parent registering with a student email is linked to that student in the
// same transaction; an unresolvable student email is skipped, not an error.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(req.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("Password must be at least 8 characters")
	}

	role := models.RoleType(strings.ToUpper(req.Role))
	if role != models.RoleStudent && role != models.RoleParent {
		return nil, apperrors.NewValidationError("Role must be STUDENT or PARENT")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Name is required")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var (
		user    *models.User
		student *models.Student
		parent  *models.Parent
	)

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		user = &models.User{
			Email:    email,
			Password: hashedPassword,
			RoleType: role,
		}
		userID, err := s.userRepo.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		switch role {
		case models.RoleStudent:
			student = &models.Student{
				UserID:         userID,
				Name:           name,
				GraduationYear: req.GraduationYear,
			}
			studentID, err := s.userRepo.CreateStudentTx(ctx, tx, student)
			if err != nil {
				return err
			}
			student.ID = studentID
		case models.RoleParent:
			parent = &models.Parent{
				UserID: userID,
				Name:   name,
			}
			parentID, err := s.userRepo.CreateParentTx(ctx, tx, parent)
			if err != nil {
				return err
			}
			parent.ID = parentID

			if req.ParentStudentEmail != "" {
				studentEmail := strings.ToLower(strings.TrimSpace(req.ParentStudentEmail))
				studentID, err := s.userRepo.FindStudentIDByEmailTx(ctx, tx, studentEmail)
				if err != nil {
					if errors.Is(err, apperrors.ErrStudentNotFound) {
						logger.Warn().
							Str("email", studentEmail).
							Msg("Registration student link skipped, no student account for email")
						return nil
					}
					return err
				}
				if err := s.linkRepo.CreateLinkTx(ctx, tx, parentID, studentID); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("userId", user.ID).
		Str("role", string(role)).
		Msg("User registered")

	return s.buildAuthResponse(user, student, parent)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	var (
		student *models.Student
		parent  *models.Parent
	)
	switch user.RoleType {
	case models.RoleStudent:
		student, err = s.userRepo.GetStudentByUserID(ctx, user.ID)
	case models.RoleParent:
		parent, err = s.userRepo.GetParentByUserID(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user, student, parent)
}

func (s *AuthService) buildAuthResponse(user *models.User, student *models.Student, parent *models.Parent) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.RoleType))
	if err != nil {
		return nil, err
	}

	authUser := dto.AuthUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.RoleType,
	}
	if student != nil {
		authUser.Profile = student
	} else if parent != nil {
		authUser.Profile = parent
	}

	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      authUser,
	}, nil
}
