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

func newParentService(store *memStore) *ParentService {
	return NewParentService(store, store, store, &memNoteRepo{store: store}, newGuard(store, nil))
}

func addApplication(store *memStore, studentID int64, uniID int64, appType models.ApplicationType) *models.Application {
	app := &models.Application{
		StudentID:       studentID,
		UniversityID:    uniID,
		ApplicationType: appType,
		Status:          models.StatusNotStarted,
	}
	id, _ := store.Create(context.Background(), app)
	app.ID = id
	return app
}

func TestLinkStudent(t *testing.T) {
	store := newMemStore()
	_, student := store.addStudentAccount("kid@example.com", "Kid")
	parentUser, parent := store.addParentAccount("mom@example.com", "Mom")
	uni := store.addUniversity("Stanford University")
	app := addApplication(store, student.ID, uni.ID, models.TypeRegularDecision)
	svc := newParentService(store)

	principal := parentPrincipal(parentUser, parent)

	linkedStudent, err := svc.LinkStudent(context.Background(), principal, &dto.LinkStudentRequest{
		StudentEmail: "KID@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, linkedStudent)
	assert.Equal(t, "Kid", linkedStudent.Name)
	require.Len(t, linkedStudent.Applications, 1)
	assert.Equal(t, app.ID, linkedStudent.Applications[0].ID)

	linked, err := store.IsLinked(context.Background(), parent.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, linked)
}

func TestLinkStudent_UnknownEmail(t *testing.T) {
	store := newMemStore()
	parentUser, parent := store.addParentAccount("mom@example.com", "Mom")
	svc := newParentService(store)

	_, err := svc.LinkStudent(context.Background(), parentPrincipal(parentUser, parent), &dto.LinkStudentRequest{
		StudentEmail: "nobody@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestLinkStudent_AlreadyLinked(t *testing.T) {
	store := newMemStore()
	_, student := store.addStudentAccount("kid@example.com", "Kid")
	parentUser, parent := store.addParentAccount("mom@example.com", "Mom")
	store.link(parent.ID, student.ID)
	svc := newParentService(store)

	_, err := svc.LinkStudent(context.Background(), parentPrincipal(parentUser, parent), &dto.LinkStudentRequest{
		StudentEmail: "kid@example.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLinked)
}

func TestListStudents(t *testing.T) {
	store := newMemStore()
	_, alice := store.addStudentAccount("alice@example.com", "Alice")
	_, bob := store.addStudentAccount("bob@example.com", "Bob")
	parentUser, parent := store.addParentAccount("mom@example.com", "Mom")
	uni := store.addUniversity("Stanford University")
	store.link(parent.ID, alice.ID)
	aliceApp := addApplication(store, alice.ID, uni.ID, models.TypeRegularDecision)
	addApplication(store, bob.ID, uni.ID, models.TypeRegularDecision)
	svc := newParentService(store)

	students, err := svc.ListStudents(context.Background(), parentPrincipal(parentUser, parent, alice.ID))
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Alice", students[0].Name)
	require.Len(t, students[0].Applications, 1)
	assert.Equal(t, aliceApp.ID, students[0].Applications[0].ID)
}

func TestParentListApplications_LinkageAlwaysApplies(t *testing.T) {
	store := newMemStore()
	_, alice := store.addStudentAccount("alice@example.com", "Alice")
	_, bob := store.addStudentAccount("bob@example.com", "Bob")
	parentUser, parent := store.addParentAccount("mom@example.com", "Mom")
	uni := store.addUniversity("Stanford University")
	store.link(parent.ID, alice.ID)

	aliceApp := addApplication(store, alice.ID, uni.ID, models.TypeRegularDecision)
	addApplication(store, bob.ID, uni.ID, models.TypeRegularDecision)

	svc := newParentService(store)
	principal := parentPrincipal(parentUser, parent, alice.ID)

	// Unfiltered: only the linked student's applications.
	apps, err := svc.ListApplications(context.Background(), principal, &dto.ParentApplicationsFilter{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, aliceApp.ID, apps[0].ID)

	// Filtering by the linked student narrows to them.
	apps, err = svc.ListApplications(context.Background(), principal, &dto.ParentApplicationsFilter{StudentID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	// Filtering by an unlinked student never widens the view.
	apps, err = svc.ListApplications(context.Background(), principal, &dto.ParentApplicationsFilter{StudentID: &bob.ID})
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestParentListApplications_OnlyOwnNotes(t *testing.T) {
	store := newMemStore()
	_, alice := store.addStudentAccount("alice@example.com", "Alice")
	momUser, mom := store.addParentAccount("mom@example.com", "Mom")
	dadUser, dad := store.addParentAccount("dad@example.com", "Dad")
	uni := store.addUniversity("Stanford University")
	store.link(mom.ID, alice.ID)
	store.link(dad.ID, alice.ID)

	app := addApplication(store, alice.ID, uni.ID, models.TypeRegularDecision)
	svc := newParentService(store)

	_, err := svc.AddNote(context.Background(), parentPrincipal(momUser, mom, alice.ID), app.ID, &dto.CreateNoteRequest{Content: "mom's note"})
	require.NoError(t, err)
	_, err = svc.AddNote(context.Background(), parentPrincipal(dadUser, dad, alice.ID), app.ID, &dto.CreateNoteRequest{Content: "dad's note"})
	require.NoError(t, err)

	apps, err := svc.ListApplications(context.Background(), parentPrincipal(momUser, mom, alice.ID), &dto.ParentApplicationsFilter{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Len(t, apps[0].ParentNotes, 1)
	assert.Equal(t, "mom's note", apps[0].ParentNotes[0].Content)
}

func TestAddNote(t *testing.T) {
	store := newMemStore()
	_, alice := store.addStudentAccount("alice@example.com", "Alice")
	parentUser, parent := store.addParentAccount("mom@example.com", "Mom")
	uni := store.addUniversity("Stanford University")
	store.link(parent.ID, alice.ID)
	app := addApplication(store, alice.ID, uni.ID, models.TypeRegularDecision)
	svc := newParentService(store)

	principal := parentPrincipal(parentUser, parent, alice.ID)

	note, err := svc.AddNote(context.Background(), principal, app.ID, &dto.CreateNoteRequest{
		Content: "  Ask about financial aid  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ask about financial aid", note.Content)
	assert.Equal(t, parent.ID, note.ParentID)
}

func TestAddNote_Rejections(t *testing.T) {
	store := newMemStore()
	_, alice := store.addStudentAccount("alice@example.com", "Alice")
	parentUser, parent := store.addParentAccount("mom@example.com", "Mom")
	uni := store.addUniversity("Stanford University")
	app := addApplication(store, alice.ID, uni.ID, models.TypeRegularDecision)
	svc := newParentService(store)

	// Not linked: the application reads as missing.
	_, err := svc.AddNote(context.Background(), parentPrincipal(parentUser, parent), app.ID, &dto.CreateNoteRequest{Content: "note"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	store.link(parent.ID, alice.ID)
	principal := parentPrincipal(parentUser, parent, alice.ID)

	_, err = svc.AddNote(context.Background(), principal, app.ID, &dto.CreateNoteRequest{Content: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AddNote(context.Background(), principal, 9999, &dto.CreateNoteRequest{Content: "note"})
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}
