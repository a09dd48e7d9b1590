package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/internal/planner"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type classSectionRepository interface {
	List(ctx context.Context, userID string) ([]models.ClassSection, error)
	Replace(ctx context.Context, userID string, sections []models.ClassSection) error
}

// ClassSectionService maintains the rombel to grade-level roster consulted by topic lookup.
type ClassSectionService struct {
	repo      classSectionRepository
	cache     topicCacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassSectionService constructs a ClassSectionService.
func NewClassSectionService(repo classSectionRepository, cache topicCacheInvalidator, validate *validator.Validate, logger *zap.Logger) *ClassSectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassSectionService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns the roster.
func (s *ClassSectionService) List(ctx context.Context, userID string) ([]models.ClassSection, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list class sections", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list class sections")
	}
	if items == nil {
		items = []models.ClassSection{}
	}
	return items, nil
}

// Replace swaps the roster. Rombel names are unique ignoring case; levels accept Arabic or
// Roman numerals and are stored as given.
func (s *ClassSectionService) Replace(ctx context.Context, userID string, req dto.ReplaceRosterRequest) ([]models.ClassSection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	seen := make(map[string]struct{}, len(req.Sections))
	sections := make([]models.ClassSection, 0, len(req.Sections))
	for _, item := range req.Sections {
		rombel := strings.TrimSpace(item.Rombel)
		key := strings.ToUpper(rombel)
		if _, dup := seen[key]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("class %s appears twice", rombel))
		}
		seen[key] = struct{}{}
		level := strings.TrimSpace(item.Level)
		if planner.AlternateGrade(level) == strings.ToUpper(level) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("level %q is not a grade between 1 and 12", level))
		}
		sections = append(sections, models.ClassSection{Rombel: rombel, Level: level})
	}

	if err := s.repo.Replace(ctx, userID, sections); err != nil {
		s.logger.Error("failed to replace class sections", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to replace class sections")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, topicCachePattern(userID)); err != nil {
			s.logger.Warn("failed to invalidate topic cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return sections, nil
}
