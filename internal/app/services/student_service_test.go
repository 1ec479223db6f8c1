package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

func TestStudentProfile(t *testing.T) {
	store := newMemStore()
	user, student := store.addStudentAccount("alice@example.com", "Alice")
	svc := NewStudentService(store)
	principal := studentPrincipal(user, student)

	profile, err := svc.GetProfile(context.Background(), principal)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)

	name := "  Alice Zhang  "
	year := 2027
	gpa := 3.85
	sat := 1510
	updated, err := svc.UpdateProfile(context.Background(), principal, &dto.UpdateProfileRequest{
		Name:           &name,
		GraduationYear: &year,
		GPA:            &gpa,
		SATScore:       &sat,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Zhang", updated.Name)
	require.NotNil(t, updated.GPA)
	assert.Equal(t, 3.85, *updated.GPA)

	// Untouched fields survive a partial update.
	act := 34
	updated, err = svc.UpdateProfile(context.Background(), principal, &dto.UpdateProfileRequest{ACTScore: &act})
	require.NoError(t, err)
	assert.Equal(t, "Alice Zhang", updated.Name)
	require.NotNil(t, updated.SATScore)
	assert.Equal(t, 1510, *updated.SATScore)
}

func TestUpdateProfile_Validation(t *testing.T) {
	store := newMemStore()
	user, student := store.addStudentAccount("alice@example.com", "Alice")
	svc := NewStudentService(store)
	principal := studentPrincipal(user, student)

	blank := "   "
	_, err := svc.UpdateProfile(context.Background(), principal, &dto.UpdateProfileRequest{Name: &blank})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	gpa := 6.2
	_, err = svc.UpdateProfile(context.Background(), principal, &dto.UpdateProfileRequest{GPA: &gpa})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	sat := 200
	_, err = svc.UpdateProfile(context.Background(), principal, &dto.UpdateProfileRequest{SATScore: &sat})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	act := 40
	_, err = svc.UpdateProfile(context.Background(), principal, &dto.UpdateProfileRequest{ACTScore: &act})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStudentProfile_ParentDenied(t *testing.T) {
	store := newMemStore()
	parentUser, parent := store.addParentAccount("bob@example.com", "Bob")
	svc := NewStudentService(store)

	_, err := svc.GetProfile(context.Background(), parentPrincipal(parentUser, parent))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
