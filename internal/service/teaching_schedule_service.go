package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type teachingScheduleRepository interface {
	List(ctx context.Context, filter models.TeachingScheduleFilter) ([]models.TeachingSchedule, error)
	Create(ctx context.Context, schedule *models.TeachingSchedule) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}

// TeachingScheduleService maintains the weekly timetable used for budget derivation and
// daily topic cards.
type TeachingScheduleService struct {
	repo      teachingScheduleRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeachingScheduleService constructs a TeachingScheduleService.
func NewTeachingScheduleService(repo teachingScheduleRepository, validate *validator.Validate, logger *zap.Logger) *TeachingScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeachingScheduleService{repo: repo, validator: validate, logger: logger}
}

// List returns the user's slots, optionally for one weekday.
func (s *TeachingScheduleService) List(ctx context.Context, userID string, dayOfWeek *int) ([]models.TeachingSchedule, error) {
	if dayOfWeek != nil && (*dayOfWeek < 1 || *dayOfWeek > 7) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be between 1 and 7")
	}
	items, err := s.repo.List(ctx, models.TeachingScheduleFilter{UserID: userID, DayOfWeek: dayOfWeek})
	if err != nil {
		s.logger.Error("failed to list teaching schedules", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list teaching schedules")
	}
	if items == nil {
		items = []models.TeachingSchedule{}
	}
	return items, nil
}

// Create adds a slot.
func (s *TeachingScheduleService) Create(ctx context.Context, userID string, req dto.TeachingScheduleRequest) (*models.TeachingSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teaching schedule payload")
	}
	schedule := &models.TeachingSchedule{
		UserID:      userID,
		ClassName:   strings.TrimSpace(req.Class),
		Subject:     strings.TrimSpace(req.Subject),
		DayOfWeek:   req.DayOfWeek,
		StartPeriod: req.StartPeriod,
		EndPeriod:   req.EndPeriod,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if req.SubjectID != nil && strings.TrimSpace(*req.SubjectID) != "" {
		id := strings.TrimSpace(*req.SubjectID)
		schedule.SubjectID = &id
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		s.logger.Error("failed to create teaching schedule", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to create teaching schedule")
	}
	return schedule, nil
}

// Delete removes a slot.
func (s *TeachingScheduleService) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		s.logger.Error("failed to delete teaching schedule", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete teaching schedule")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "teaching schedule not found")
	}
	return nil
}
