package auth

import (
	"context"
	"fmt"

	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// Action is the kind of access being requested on an entity.
type Action string

const (
	// ActionRead covers viewing an entity and its children.
	ActionRead Action = "read"
	// ActionWrite covers mutating or deleting an entity. Students only.
	ActionWrite Action = "write"
	// ActionAnnotate covers attaching a parent note to an entity.
	ActionAnnotate Action = "annotate"
)

// EntityKind identifies the table an EntityRef points into.
type EntityKind string

const (
	EntityApplication EntityKind = "application"
	EntityRequirement EntityKind = "requirement"
	EntityDocument    EntityKind = "document"
)

// EntityRef points at one access-controlled entity.
type EntityRef struct {
	Kind EntityKind
	ID   int64
}

// IPrincipalStore loads the account and profile rows a principal resolves from.
type IPrincipalStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetParentByUserID(ctx context.Context, userID int64) (*models.Parent, error)
}

// ILinkStore answers parent-student relationship queries.
type ILinkStore interface {
	ListStudentIDsByParent(ctx context.Context, parentID int64) ([]int64, error)
}

// IOwnerResolver resolves which student owns an entity. Implementations
// return a not-found sentinel when the entity does not exist.
type IOwnerResolver interface {
	GetOwnerStudentID(ctx context.Context, id int64) (int64, error)
}

// AuthorizationService resolves principals and enforces the ownership rules:
// students reach only their own entities, parents get read access to linked
// students' entities, and everything unreachable reads as not found.
type AuthorizationService struct {
	principals IPrincipalStore
	links      ILinkStore
	resolvers  map[EntityKind]IOwnerResolver
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(principals IPrincipalStore, links ILinkStore, resolvers map[EntityKind]IOwnerResolver) *AuthorizationService {
	return &AuthorizationService{
		principals: principals,
		links:      links,
		resolvers:  resolvers,
	}
}

// ResolvePrincipal loads the full identity behind a token subject. The token
// only vouches for the user ID; everything else comes from the database so
// that role or relationship changes take effect immediately.
func (s *AuthorizationService) ResolvePrincipal(ctx context.Context, userID int64) (*Principal, error) {
	user, err := s.principals.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	principal := &Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.RoleType,
	}

	switch user.RoleType {
	case models.RoleStudent:
		student, err := s.principals.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		principal.Student = student
	case models.RoleParent:
		parent, err := s.principals.GetParentByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		principal.Parent = parent

		linked, err := s.links.ListStudentIDsByParent(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		principal.LinkedStudentIDs = linked
	default:
		return nil, fmt.Errorf("unknown role %q for user %d", user.RoleType, user.ID)
	}

	return principal, nil
}

// Authorize checks whether the principal may perform action on the referenced
// entity and returns the owning student's ID. A missing entity and an entity
// the principal cannot reach are indistinguishable: both return
// ErrResourceNotFound. A parent attempting a write on an entity they can read
// gets ErrPermissionDenied.
func (s *AuthorizationService) Authorize(ctx context.Context, p *Principal, action Action, ref EntityRef) (int64, error) {
	resolver, ok := s.resolvers[ref.Kind]
	if !ok {
		return 0, fmt.Errorf("no owner resolver for entity kind %q", ref.Kind)
	}

	ownerID, err := resolver.GetOwnerStudentID(ctx, ref.ID)
	if err != nil {
		return 0, err
	}

	switch {
	case p.IsStudent():
		if p.Student.ID != ownerID {
			return 0, apperrors.ErrResourceNotFound
		}
		return ownerID, nil
	case p.IsParent():
		if !p.IsLinkedTo(ownerID) {
			return 0, apperrors.ErrResourceNotFound
		}
		if action == ActionWrite {
			return 0, apperrors.ErrPermissionDenied
		}
		return ownerID, nil
	default:
		return 0, apperrors.ErrPermissionDenied
	}
}
