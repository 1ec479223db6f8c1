package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

func TestListUniversities(t *testing.T) {
	store := newMemStore()
	store.addUniversity("Stanford University")
	store.addUniversity("Harvard University")
	store.addUniversity("University of Michigan")

	svc := NewUniversityService(&memUniversityRepo{store: store})

	page, err := svc.ListUniversities(context.Background(), dto.UniversityFilterRequest{}, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Universities, 2)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	page, err = svc.ListUniversities(context.Background(), dto.UniversityFilterRequest{}, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Universities, 1)

	search := "university of"
	page, err = svc.ListUniversities(context.Background(), dto.UniversityFilterRequest{Search: &search}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Universities, 1)
	assert.Equal(t, "University of Michigan", page.Universities[0].Name)
}

func TestGetUniversity(t *testing.T) {
	store := newMemStore()
	uni := store.addUniversity("Stanford University")
	svc := NewUniversityService(&memUniversityRepo{store: store})

	got, err := svc.GetUniversity(context.Background(), uni.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stanford University", got.Name)

	_, err = svc.GetUniversity(context.Background(), uni.ID+1000)
	assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)
}
