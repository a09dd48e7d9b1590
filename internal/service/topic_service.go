package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/internal/planner"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type programDocumentLister interface {
	List(ctx context.Context, filter models.ProgramDocumentFilter) ([]models.ProgramDocument, error)
}

type classRosterReader interface {
	List(ctx context.Context, userID string) ([]models.ClassSection, error)
}

type topicCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const dateLayout = "2006-01-02"

func topicCachePattern(userID string) string {
	return fmt.Sprintf("topic:%s:*", userID)
}

func topicCacheKey(userID, class, subject string, date time.Time) string {
	return fmt.Sprintf("topic:%s:%s:%s:%s", userID, cacheToken(class), cacheToken(subject), date.Format(dateLayout))
}

// cacheToken escapes a class or subject so distinct inputs never share a key and no glob
// metacharacter reaches the invalidation pattern.
func cacheToken(raw string) string {
	return url.QueryEscape(strings.ToLower(strings.TrimSpace(raw)))
}

// TopicService answers "what is this class studying this week" from the stored programs.
type TopicService struct {
	docs      programDocumentLister
	roster    classRosterReader
	schedules scheduleReader
	cache     topicCache
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTopicService constructs a TopicService. A nil cache disables caching.
func NewTopicService(docs programDocumentLister, roster classRosterReader, schedules scheduleReader, cache topicCache, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TopicService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TopicService{
		docs:      docs,
		roster:    roster,
		schedules: schedules,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// topicData is everything a lookup needs for one teacher and period.
type topicData struct {
	resolver  *planner.TopicResolver
	programs  []planner.ProgramRecord
	calendars []planner.CalendarRecord
}

// ResolveCurrentTopic returns the topic for one class and subject on a date. A miss is a
// result with found=false, not an error. The boolean reports a cache hit.
func (s *TopicService) ResolveCurrentTopic(ctx context.Context, userID string, q dto.TopicQuery) (*dto.TopicView, bool, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "class is required and date must be YYYY-MM-DD")
	}
	date, err := s.parseDate(q.Date)
	if err != nil {
		return nil, false, err
	}

	key := topicCacheKey(userID, q.Class, q.Subject, date)
	if s.cache != nil {
		var cached dto.TopicView
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("topic cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit {
			return &cached, true, nil
		}
	}

	data, err := s.load(ctx, userID, planner.PeriodForDate(date))
	if err != nil {
		return nil, false, err
	}
	result := data.resolve(q.Class, q.Subject, date)
	s.metrics.RecordTopicLookup(result.ProgramTier)

	view := &dto.TopicView{Class: q.Class, Subject: q.Subject, Date: date.Format(dateLayout), Topic: result}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, view, s.cacheTTL); err != nil {
			s.logger.Debug("topic not cached", zap.String("key", key), zap.Error(err))
		}
	}
	return view, false, nil
}

// TopicsForDay resolves the topic of every teaching slot on the date's weekday.
func (s *TopicService) TopicsForDay(ctx context.Context, userID, rawDate string) (*dto.DayTopics, error) {
	date, err := s.parseDate(rawDate)
	if err != nil {
		return nil, err
	}
	day := isoWeekday(date)
	result := &dto.DayTopics{Date: date.Format(dateLayout), DayOfWeek: day, Slots: []dto.ScheduleTopic{}}
	if s.schedules == nil {
		return result, nil
	}

	rows, err := s.schedules.List(ctx, models.TeachingScheduleFilter{UserID: userID, DayOfWeek: &day})
	if err != nil {
		return nil, s.storeError(err, "failed to load teaching schedules")
	}
	if len(rows) == 0 {
		return result, nil
	}

	data, err := s.load(ctx, userID, planner.PeriodForDate(date))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		topic := data.resolve(row.ClassName, row.Subject, date)
		s.metrics.RecordTopicLookup(topic.ProgramTier)
		result.Slots = append(result.Slots, dto.ScheduleTopic{
			ScheduleID:  row.ID,
			Class:       row.ClassName,
			Subject:     row.Subject,
			StartPeriod: row.StartPeriod,
			EndPeriod:   row.EndPeriod,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
			Topic:       topic,
		})
	}
	return result, nil
}

func (d topicData) resolve(class, subject string, date time.Time) planner.TopicResult {
	return d.resolver.Resolve(planner.TopicQuery{Class: class, Subject: subject, Date: date}, d.programs, d.calendars)
}

func (s *TopicService) load(ctx context.Context, userID string, period planner.AcademicPeriod) (topicData, error) {
	start := time.Now()
	docs, err := s.docs.List(ctx, models.ProgramDocumentFilter{
		UserID:       userID,
		Types:        []models.DocumentType{models.DocumentTypeProgram, models.DocumentTypeCalendar},
		AcademicYear: period.AcademicYear,
	})
	s.metrics.ObserveDBQuery("program_document_list", time.Since(start))
	if err != nil {
		return topicData{}, s.storeError(err, "failed to load programs")
	}

	var roster []models.ClassSection
	if s.roster != nil {
		roster, err = s.roster.List(ctx, userID)
		if err != nil {
			return topicData{}, s.storeError(err, "failed to load class roster")
		}
	}

	data := topicData{resolver: planner.NewTopicResolver(models.ClassSectionsToPlanner(roster))}
	for i := range docs {
		doc := &docs[i]
		semester, _ := planner.ParseSemester(doc.Semester)
		switch doc.Type {
		case models.DocumentTypeProgram:
			var payload models.ProgramPayload
			if err := doc.Payload.Unmarshal(&payload); err != nil {
				s.logger.Warn("skipping unreadable program", zap.String("id", doc.ID), zap.Error(err))
				continue
			}
			data.programs = append(data.programs, planner.ProgramRecord{
				ID:           doc.ID,
				Subject:      doc.Subject,
				GradeLevel:   doc.GradeLevel,
				AcademicYear: doc.AcademicYear,
				Semester:     semester,
				UpdatedAt:    doc.UpdatedAt,
				Objectives:   payload.Objectives,
				Cells:        payload.Cells,
				Calendar:     payload.Calendar,
			})
		case models.DocumentTypeCalendar:
			var payload models.CalendarPayload
			if err := doc.Payload.Unmarshal(&payload); err != nil {
				s.logger.Warn("skipping unreadable calendar", zap.String("id", doc.ID), zap.Error(err))
				continue
			}
			data.calendars = append(data.calendars, planner.CalendarRecord{
				ID:           doc.ID,
				GradeLevel:   doc.GradeLevel,
				AcademicYear: doc.AcademicYear,
				Semester:     semester,
				UpdatedAt:    doc.UpdatedAt,
				Months:       payload.Months,
			})
		}
	}
	return data, nil
}

func (s *TopicService) parseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}
	return date, nil
}

func (s *TopicService) storeError(err error, message string) error {
	s.logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, message)
}

// isoWeekday numbers Monday as 1 and Sunday as 7.
func isoWeekday(date time.Time) int {
	if date.Weekday() == time.Sunday {
		return 7
	}
	return int(date.Weekday())
}
