package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

func TestCreateRequirement(t *testing.T) {
	store := newMemStore()
	user, student := store.addStudentAccount("alice@example.com", "Alice")
	uni := store.addUniversity("Stanford University")
	app := addApplication(store, student.ID, uni.ID, models.TypeRegularDecision)

	reqRepo := newMemRequirementRepo(store)
	svc := NewRequirementService(reqRepo, newGuard(store, reqRepo))
	principal := studentPrincipal(user, student)

	req, err := svc.CreateRequirement(context.Background(), principal, app.ID, &dto.CreateRequirementRequest{
		RequirementType: "ESSAY",
		Deadline:        "2026-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, app.ID, req.ApplicationID)
	assert.Equal(t, models.RequirementEssay, req.RequirementType)
	assert.Equal(t, models.RequirementNotStarted, req.Status)
	require.NotNil(t, req.Deadline)

	_, err = svc.CreateRequirement(context.Background(), principal, app.ID, &dto.CreateRequirementRequest{
		RequirementType: "HOMEWORK",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateRequirement_ForeignApplication(t *testing.T) {
	store := newMemStore()
	_, alice := store.addStudentAccount("alice@example.com", "Alice")
	bobUser, bob := store.addStudentAccount("bob@example.com", "Bob")
	uni := store.addUniversity("Stanford University")
	app := addApplication(store, alice.ID, uni.ID, models.TypeRegularDecision)

	reqRepo := newMemRequirementRepo(store)
	svc := NewRequirementService(reqRepo, newGuard(store, reqRepo))

	_, err := svc.CreateRequirement(context.Background(), studentPrincipal(bobUser, bob), app.ID, &dto.CreateRequirementRequest{
		RequirementType: "ESSAY",
	})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUpdateAndDeleteRequirement(t *testing.T) {
	store := newMemStore()
	user, student := store.addStudentAccount("alice@example.com", "Alice")
	bobUser, bob := store.addStudentAccount("bob@example.com", "Bob")
	uni := store.addUniversity("Stanford University")
	app := addApplication(store, student.ID, uni.ID, models.TypeRegularDecision)

	reqRepo := newMemRequirementRepo(store)
	svc := NewRequirementService(reqRepo, newGuard(store, reqRepo))
	principal := studentPrincipal(user, student)

	req, err := svc.CreateRequirement(context.Background(), principal, app.ID, &dto.CreateRequirementRequest{
		RequirementType: "TRANSCRIPT",
	})
	require.NoError(t, err)

	status := "COMPLETED"
	updated, err := svc.UpdateRequirement(context.Background(), principal, req.ID, &dto.UpdateRequirementRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.RequirementCompleted, updated.Status)

	bad := "ABANDONED"
	_, err = svc.UpdateRequirement(context.Background(), principal, req.ID, &dto.UpdateRequirementRequest{Status: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Another student cannot touch it through the one-hop ownership chain.
	_, err = svc.UpdateRequirement(context.Background(), studentPrincipal(bobUser, bob), req.ID, &dto.UpdateRequirementRequest{Status: &status})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	err = svc.DeleteRequirement(context.Background(), studentPrincipal(bobUser, bob), req.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	err = svc.DeleteRequirement(context.Background(), principal, req.ID)
	require.NoError(t, err)

	_, err = svc.UpdateRequirement(context.Background(), principal, req.ID, &dto.UpdateRequirementRequest{})
	assert.ErrorIs(t, err, apperrors.ErrRequirementNotFound)
}
