package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/internal/planner"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type holidayRepository interface {
	List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error)
	FindByID(ctx context.Context, userID, id string) (*models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	Update(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, userID, id string) error
}

// HolidayService manages manual holidays and, for administrators, public ones.
type HolidayService struct {
	repo      holidayRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHolidayService constructs a HolidayService.
func NewHolidayService(repo holidayRepository, validate *validator.Validate, logger *zap.Logger) *HolidayService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{repo: repo, validator: validate, logger: logger}
}

// List returns the user's manual holidays and every public holiday.
func (s *HolidayService) List(ctx context.Context, userID string, q dto.HolidayQuery) ([]models.Holiday, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday filter")
	}
	filter := models.HolidayFilter{UserID: userID, Type: q.Type, From: parseDay(q.From), To: parseDay(q.To)}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list holidays", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list holidays")
	}
	if items == nil {
		items = []models.Holiday{}
	}
	return items, nil
}

// Create stores a holiday owned by the caller.
func (s *HolidayService) Create(ctx context.Context, claims *models.JWTClaims, req dto.HolidayRequest) (*models.Holiday, error) {
	holiday, err := s.build(claims, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, holiday); err != nil {
		s.logger.Error("failed to create holiday", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to create holiday")
	}
	return holiday, nil
}

// Update replaces one of the caller's holidays.
func (s *HolidayService) Update(ctx context.Context, claims *models.JWTClaims, id string, req dto.HolidayRequest) (*models.Holiday, error) {
	existing, err := s.find(ctx, claims.UserID, id)
	if err != nil {
		return nil, err
	}
	holiday, err := s.build(claims, req)
	if err != nil {
		return nil, err
	}
	holiday.ID = existing.ID
	holiday.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, holiday); err != nil {
		s.logger.Error("failed to update holiday", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to update holiday")
	}
	return holiday, nil
}

// Delete removes one of the caller's holidays.
func (s *HolidayService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.find(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		s.logger.Error("failed to delete holiday", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete holiday")
	}
	return nil
}

func (s *HolidayService) find(ctx context.Context, userID, id string) (*models.Holiday, error) {
	holiday, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "holiday not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load holiday")
	}
	return holiday, nil
}

func (s *HolidayService) build(claims *models.JWTClaims, req dto.HolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid holiday payload")
	}
	if req.Type == string(planner.HolidayPublic) && claims.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only administrators manage public holidays")
	}

	holiday := &models.Holiday{
		UserID:   claims.UserID,
		Name:     req.Name,
		Category: req.Category,
		Type:     req.Type,
	}
	date, start, end := parseDay(req.Date), parseDay(req.StartDate), parseDay(req.EndDate)
	switch {
	case start != nil && end != nil:
		if end.Before(*start) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
		}
		holiday.StartDate, holiday.EndDate = start, end
	case date != nil && start == nil && end == nil:
		holiday.Date = date
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "set either date or both startDate and endDate")
	}
	return holiday, nil
}

func parseDay(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &day
}
