package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type stubClassRepo struct {
	stubRoster
	replaced []models.ClassSection
}

func (s *stubClassRepo) Replace(ctx context.Context, userID string, sections []models.ClassSection) error {
	s.replaced = sections
	return nil
}

func TestClassSectionReplace(t *testing.T) {
	repo := &stubClassRepo{}
	cache := &stubInvalidator{}
	svc := NewClassSectionService(repo, cache, nil, nil)

	sections, err := svc.Replace(context.Background(), "u1", dto.ReplaceRosterRequest{Sections: []dto.ClassSectionItem{
		{Rombel: " Unggulan 1 ", Level: "VII"},
		{Rombel: "VIII-B", Level: "8"},
	}})
	require.NoError(t, err)
	assert.Len(t, sections, 2)
	assert.Equal(t, "Unggulan 1", repo.replaced[0].Rombel)
	assert.Equal(t, []string{"topic:u1:*"}, cache.patterns)

	_, err = svc.Replace(context.Background(), "u1", dto.ReplaceRosterRequest{Sections: []dto.ClassSectionItem{
		{Rombel: "VII-A", Level: "7"},
		{Rombel: "vii-a", Level: "7"},
	}})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))

	_, err = svc.Replace(context.Background(), "u1", dto.ReplaceRosterRequest{Sections: []dto.ClassSectionItem{{Rombel: "Z", Level: "13"}}})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))
}

func TestClassSectionListNeverNil(t *testing.T) {
	svc := NewClassSectionService(&stubClassRepo{}, nil, nil, nil)
	items, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, items)
}
