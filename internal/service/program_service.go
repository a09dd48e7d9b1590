package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-program-api/internal/dto"
	"github.com/noah-isme/teaching-program-api/internal/models"
	"github.com/noah-isme/teaching-program-api/internal/planner"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

type programDocumentStore interface {
	Get(ctx context.Context, userID, id string) (*models.ProgramDocument, error)
	Upsert(ctx context.Context, doc *models.ProgramDocument) error
	Delete(ctx context.Context, userID, id string) error
}

type holidayReader interface {
	List(ctx context.Context, filter models.HolidayFilter) ([]models.Holiday, error)
}

type scheduleReader interface {
	List(ctx context.Context, filter models.TeachingScheduleFilter) ([]models.TeachingSchedule, error)
}

type topicCacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// ProgramService exposes the calendar and allocation workflows of a teacher's program on top
// of the document store.
type ProgramService struct {
	docs      programDocumentStore
	holidays  holidayReader
	schedules scheduleReader
	engine    *planner.Engine
	cache     topicCacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgramService constructs a ProgramService.
func NewProgramService(docs programDocumentStore, holidays holidayReader, schedules scheduleReader, engine *planner.Engine, cache topicCacheInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ProgramService {
	if engine == nil {
		engine = planner.NewEngine(planner.Options{})
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{
		docs:      docs,
		holidays:  holidays,
		schedules: schedules,
		engine:    engine,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// loadedCalendar is a calendar plus the program document read while resolving it.
type loadedCalendar struct {
	calendar       planner.Calendar
	source         dto.CalendarSource
	id             string
	updatedAt      *time.Time
	program        *models.ProgramPayload
	programUpdated *time.Time
}

// LoadCalendar returns the scope's calendar. Missing configuration is never an error: the
// lookup falls back from the grade key to the legacy shared key, the calendar embedded in the
// program, and finally the default template.
func (s *ProgramService) LoadCalendar(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.CalendarView, error) {
	scope, err := s.scope(userID, q, false)
	if err != nil {
		return nil, err
	}
	loaded, err := s.loadCalendar(ctx, scope)
	if err != nil {
		return nil, err
	}
	return calendarView(scope, loaded), nil
}

// SaveCalendar validates and replaces the grade calendar. When the request names a subject
// and a weekly budget, the program header is refreshed as well.
func (s *ProgramService) SaveCalendar(ctx context.Context, userID string, req dto.SaveCalendarRequest) (*dto.CalendarView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calendar payload")
	}
	scope, err := s.scope(userID, req.ProgramScopeQuery, false)
	if err != nil {
		return nil, err
	}
	calendar := planner.Calendar{Period: scope.Period(), Months: req.Months}
	if err := calendar.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	doc, err := s.writeDocument(ctx, scope, scope.CalendarKey(), models.DocumentTypeCalendar, models.CalendarPayload{Months: req.Months})
	if err != nil {
		return nil, err
	}

	loaded := loadedCalendar{calendar: calendar, source: dto.CalendarSourceGrade, id: doc.ID, updatedAt: &doc.UpdatedAt}
	if scope.Subject != "" {
		payload, programDoc, err := s.readProgram(ctx, scope)
		if err != nil {
			return nil, err
		}
		if req.WeeklyHourBudget != nil {
			payload.WeeklyHourBudget = planner.FlexInt(*req.WeeklyHourBudget)
			payload.Calendar = req.Months
			if _, err := s.writeProgram(ctx, scope, calendar, payload); err != nil {
				return nil, err
			}
			loaded.program = payload
		} else if programDoc != nil {
			loaded.program = payload
		}
	}
	s.invalidateTopics(ctx, scope.UserID)
	return calendarView(scope, loaded), nil
}

// SyncBudget derives the weekly hour budget from the teacher's schedule, stores it in the
// program header and returns it.
func (s *ProgramService) SyncBudget(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.SyncBudgetResult, error) {
	scope, err := s.scope(userID, q, true)
	if err != nil {
		return nil, err
	}
	budget, className, ok, err := s.scheduleBudget(ctx, scope, q.SubjectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("no teaching schedule matches grade %s and subject %s", scope.GradeLevel, scope.Subject))
	}

	loaded, err := s.loadCalendar(ctx, scope)
	if err != nil {
		return nil, err
	}
	payload := loaded.program
	if payload == nil {
		payload = &models.ProgramPayload{}
	}
	payload.WeeklyHourBudget = planner.FlexInt(budget)
	if _, err := s.writeProgram(ctx, scope, loaded.calendar, payload); err != nil {
		return nil, err
	}
	s.invalidateTopics(ctx, scope.UserID)

	return &dto.SyncBudgetResult{
		WeeklyHourBudget: budget,
		ClassName:        className,
		TotalEffective:   loaded.calendar.TotalEffectiveHours(budget),
	}, nil
}

// LoadAllocation returns the stored objectives and assignments, or an empty program when none
// has been saved yet.
func (s *ProgramService) LoadAllocation(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.AllocationView, error) {
	scope, err := s.scope(userID, q, true)
	if err != nil {
		return nil, err
	}
	loaded, err := s.loadCalendar(ctx, scope)
	if err != nil {
		return nil, err
	}

	view := &dto.AllocationView{
		ID:         scope.ProgramKey(),
		Objectives: []planner.Objective{},
		Cells:      planner.AssignmentMap{},
		Calendar:   *calendarView(scope, loaded),
	}
	budget := 0
	if program := loaded.program; program != nil {
		view.Exists = true
		budget = program.WeeklyHourBudget.Int()
		if program.Objectives != nil {
			view.Objectives = program.Objectives
		}
		if program.Cells != nil {
			view.Cells = program.Cells
		}
		view.UpdatedAt = loaded.programUpdated
	}
	view.WeeklyHourBudget = budget
	view.TotalEffectiveWeeks = loaded.calendar.TotalEffectiveWeeks()
	view.TotalEffectiveHours = loaded.calendar.TotalEffectiveHours(budget)
	view.Report = planner.ReconcileObjectives(view.Objectives, loaded.calendar, budget)
	return view, nil
}

// SaveObjectives replaces the objective list. Cells of objectives that no longer exist are
// dropped. The reconciliation report is a recommendation; it never rejects the save.
func (s *ProgramService) SaveObjectives(ctx context.Context, userID string, req dto.SaveObjectivesRequest) (*dto.SaveObjectivesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid objectives payload")
	}
	scope, err := s.scope(userID, req.ProgramScopeQuery, true)
	if err != nil {
		return nil, err
	}
	if err := checkObjectives(req.Objectives); err != nil {
		return nil, err
	}
	return s.replaceObjectives(ctx, scope, req.Objectives, req.WeeklyHourBudget)
}

// AutoDistribute proposes an assignment map without saving it. The budget is taken from the
// request, then the stored program header, then the teaching schedule; a zero budget is
// rejected.
func (s *ProgramService) AutoDistribute(ctx context.Context, userID string, req dto.AutoDistributeRequest) (*dto.AutoDistributeResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid distribution payload")
	}
	scope, err := s.scope(userID, req.ProgramScopeQuery, true)
	if err != nil {
		return nil, err
	}
	loaded, err := s.loadCalendar(ctx, scope)
	if err != nil {
		return nil, err
	}

	objectives := req.Objectives
	if len(objectives) == 0 && loaded.program != nil {
		objectives = loaded.program.Objectives
	}
	if len(objectives) == 0 {
		s.metrics.RecordDistribution("rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "no objectives to distribute")
	}
	if err := checkObjectives(objectives); err != nil {
		return nil, err
	}

	budget, source, err := s.resolveBudget(ctx, scope, req, loaded.program)
	if err != nil {
		return nil, err
	}
	if budget <= 0 {
		s.metrics.RecordDistribution("rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "weekly hour budget is not set")
	}

	holidays, err := s.semesterHolidays(ctx, scope, loaded.calendar)
	if err != nil {
		return nil, err
	}

	distribution := s.engine.AutoDistribute(objectives, loaded.calendar, holidays, budget)
	if len(distribution.Shortfalls) > 0 {
		s.metrics.RecordDistribution("shortfall")
		s.logger.Info("auto distribution left objectives short",
			zap.String("program_id", scope.ProgramKey()),
			zap.Int("shortfalls", len(distribution.Shortfalls)),
			zap.Bool("exhausted", distribution.Exhausted))
	} else {
		s.metrics.RecordDistribution("complete")
	}

	return &dto.AutoDistributeResult{WeeklyHourBudget: budget, BudgetSource: source, Distribution: distribution}, nil
}

// ValidateAndSave checks every objective against its target and persists the assignments
// with blocked-week cells removed. A mismatch rejects the whole save and reports every
// offending objective. Store failures are returned as is and never retried.
func (s *ProgramService) ValidateAndSave(ctx context.Context, userID string, req dto.SaveAssignmentsRequest) (*dto.SaveAssignmentsResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignments payload")
	}
	scope, err := s.scope(userID, req.ProgramScopeQuery, true)
	if err != nil {
		return nil, err
	}
	loaded, err := s.loadCalendar(ctx, scope)
	if err != nil {
		return nil, err
	}
	payload := loaded.program
	if payload == nil {
		payload = &models.ProgramPayload{}
	}
	objectives := req.Objectives
	if len(objectives) == 0 {
		objectives = payload.Objectives
	}
	if err := checkObjectives(objectives); err != nil {
		return nil, err
	}

	holidays, err := s.semesterHolidays(ctx, scope, loaded.calendar)
	if err != nil {
		return nil, err
	}

	check, err := s.engine.ValidateForSave(objectives, req.Cells, loaded.calendar, holidays)
	if err != nil {
		var mismatch *planner.MismatchError
		if errors.As(err, &mismatch) {
			s.metrics.RecordSaveValidation(false, 0)
			s.logger.Info("allocation save rejected",
				zap.String("program_id", scope.ProgramKey()),
				zap.Int("mismatches", len(mismatch.Mismatches)))
			return nil, appErrors.WithDetails(
				appErrors.Clone(appErrors.ErrAllocationMismatch, mismatch.Error()),
				mismatch.Mismatches)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate assignments")
	}

	payload.Objectives = objectives
	payload.Cells = check.Cells
	doc, err := s.writeProgram(ctx, scope, loaded.calendar, payload)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSaveValidation(true, check.StrippedCells)
	s.invalidateTopics(ctx, scope.UserID)

	return &dto.SaveAssignmentsResult{
		ID:            doc.ID,
		Cells:         check.Cells,
		StrippedCells: check.StrippedCells,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

// Reset deletes the program document: objectives, assignments and budget header.
func (s *ProgramService) Reset(ctx context.Context, userID string, q dto.ProgramScopeQuery) error {
	scope, err := s.scope(userID, q, true)
	if err != nil {
		return err
	}
	start := time.Now()
	err = s.docs.Delete(ctx, scope.UserID, scope.ProgramKey())
	s.metrics.ObserveDBQuery("program_document_delete", time.Since(start))
	if err != nil {
		return s.storeError(err, "failed to reset program")
	}
	s.invalidateTopics(ctx, scope.UserID)
	return nil
}

// WeekStatuses reports, per calendar week, the overlapping holidays and whether the week is
// blocked for assignments.
func (s *ProgramService) WeekStatuses(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.WeekGrid, error) {
	scope, err := s.scope(userID, q, false)
	if err != nil {
		return nil, err
	}
	loaded, err := s.loadCalendar(ctx, scope)
	if err != nil {
		return nil, err
	}
	holidays, err := s.semesterHolidays(ctx, scope, loaded.calendar)
	if err != nil {
		return nil, err
	}
	return &dto.WeekGrid{
		ThresholdDays: s.engine.Holidays().Threshold(),
		Weeks:         s.engine.WeekStatuses(loaded.calendar, holidays),
	}, nil
}

// LoadATP returns the learning-objective flow of a program, empty when none is stored.
func (s *ProgramService) LoadATP(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.ATPDocument, error) {
	scope, err := s.scope(userID, q, true)
	if err != nil {
		return nil, err
	}
	doc, err := s.readDocument(ctx, scope.UserID, scope.ATPKey())
	if err != nil {
		return nil, err
	}
	result := &dto.ATPDocument{ID: scope.ATPKey(), Items: []models.ATPItem{}}
	if doc == nil {
		return result, nil
	}
	var payload models.ATPPayload
	if err := doc.Payload.Unmarshal(&payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored learning-objective flow is unreadable")
	}
	if payload.Items != nil {
		result.Items = payload.Items
	}
	result.UpdatedAt = &doc.UpdatedAt
	return result, nil
}

// SaveATP replaces the learning-objective flow of a program.
func (s *ProgramService) SaveATP(ctx context.Context, userID string, req dto.SaveATPRequest) (*dto.ATPDocument, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid learning-objective flow payload")
	}
	scope, err := s.scope(userID, req.ProgramScopeQuery, true)
	if err != nil {
		return nil, err
	}
	items := req.Items
	if items == nil {
		items = []models.ATPItem{}
	}
	doc, err := s.writeDocument(ctx, scope, scope.ATPKey(), models.DocumentTypeATP, models.ATPPayload{Items: items})
	if err != nil {
		return nil, err
	}
	return &dto.ATPDocument{ID: doc.ID, Items: items, UpdatedAt: &doc.UpdatedAt}, nil
}

// ImportObjectivesFromATP replaces the program objectives with the rows of the stored
// learning-objective flow, numbered from 1 in order.
func (s *ProgramService) ImportObjectivesFromATP(ctx context.Context, userID string, q dto.ProgramScopeQuery) (*dto.SaveObjectivesResult, error) {
	scope, err := s.scope(userID, q, true)
	if err != nil {
		return nil, err
	}
	atp, err := s.LoadATP(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	if len(atp.Items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no learning-objective flow stored for this program")
	}
	objectives := make([]planner.Objective, len(atp.Items))
	for i, item := range atp.Items {
		objectives[i] = planner.Objective{
			ID:           i + 1,
			Element:      item.Element,
			TopicLabel:   item.Topic,
			LearningGoal: item.Goal,
			TargetHours:  item.Hours,
		}
	}
	return s.replaceObjectives(ctx, scope, objectives, nil)
}

func (s *ProgramService) replaceObjectives(ctx context.Context, scope models.ProgramScope, objectives []planner.Objective, budget *int) (*dto.SaveObjectivesResult, error) {
	loaded, err := s.loadCalendar(ctx, scope)
	if err != nil {
		return nil, err
	}
	payload := loaded.program
	if payload == nil {
		payload = &models.ProgramPayload{}
	}
	if budget != nil {
		payload.WeeklyHourBudget = planner.FlexInt(*budget)
	}
	if objectives == nil {
		objectives = []planner.Objective{}
	}

	known := make(map[int]struct{}, len(objectives))
	for _, objective := range objectives {
		known[objective.ID] = struct{}{}
	}
	cells := planner.AssignmentMap{}
	dropped := 0
	for key, hours := range payload.Cells {
		if _, ok := known[key.ObjectiveID]; !ok {
			dropped++
			continue
		}
		cells[key] = hours
	}
	payload.Objectives = objectives
	payload.Cells = cells

	doc, err := s.writeProgram(ctx, scope, loaded.calendar, payload)
	if err != nil {
		return nil, err
	}
	s.invalidateTopics(ctx, scope.UserID)

	return &dto.SaveObjectivesResult{
		ID:           doc.ID,
		Objectives:   objectives,
		DroppedCells: dropped,
		Report:       planner.ReconcileObjectives(objectives, loaded.calendar, payload.WeeklyHourBudget.Int()),
	}, nil
}

func (s *ProgramService) scope(userID string, q dto.ProgramScopeQuery, needSubject bool) (models.ProgramScope, error) {
	if strings.TrimSpace(userID) == "" {
		return models.ProgramScope{}, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(q); err != nil {
		return models.ProgramScope{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "grade, year and semester are required")
	}
	semester, ok := planner.ParseSemester(q.Semester)
	if !ok {
		return models.ProgramScope{}, appErrors.Clone(appErrors.ErrValidation, "semester must be Ganjil or Genap")
	}
	scope := models.ProgramScope{
		UserID:       userID,
		Subject:      strings.TrimSpace(q.Subject),
		GradeLevel:   strings.TrimSpace(q.GradeLevel),
		AcademicYear: strings.TrimSpace(q.AcademicYear),
		Semester:     semester,
	}
	period := scope.Period()
	if _, ok := period.CalendarYear(period.StartMonth()); !ok {
		return models.ProgramScope{}, appErrors.Clone(appErrors.ErrValidation, "academic year must look like 2025/2026")
	}
	if needSubject && scope.Subject == "" {
		return models.ProgramScope{}, appErrors.Clone(appErrors.ErrValidation, "subject is required")
	}
	return scope, nil
}

func (s *ProgramService) loadCalendar(ctx context.Context, scope models.ProgramScope) (loadedCalendar, error) {
	var program *models.ProgramPayload
	var programDoc *models.ProgramDocument
	if scope.Subject != "" {
		var err error
		program, programDoc, err = s.readProgram(ctx, scope)
		if err != nil {
			return loadedCalendar{}, err
		}
		if programDoc == nil {
			program = nil
		}
	}
	loaded := loadedCalendar{program: program}
	if programDoc != nil {
		updated := programDoc.UpdatedAt
		loaded.programUpdated = &updated
	}

	candidates := []struct {
		id     string
		source dto.CalendarSource
	}{
		{scope.CalendarKey(), dto.CalendarSourceGrade},
		{scope.LegacyCalendarKey(), dto.CalendarSourceLegacy},
	}
	for _, candidate := range candidates {
		doc, err := s.readDocument(ctx, scope.UserID, candidate.id)
		if err != nil {
			return loadedCalendar{}, err
		}
		if doc == nil {
			continue
		}
		var payload models.CalendarPayload
		if err := doc.Payload.Unmarshal(&payload); err != nil || len(payload.Months) != planner.MonthsPerSemester {
			s.logger.Warn("skipping unusable calendar document", zap.String("id", candidate.id), zap.Error(err))
			continue
		}
		loaded.calendar = planner.Calendar{Period: scope.Period(), Months: payload.Months}
		loaded.source = candidate.source
		loaded.id = doc.ID
		updated := doc.UpdatedAt
		loaded.updatedAt = &updated
		return loaded, nil
	}

	if program != nil && len(program.Calendar) == planner.MonthsPerSemester {
		loaded.calendar = planner.Calendar{Period: scope.Period(), Months: program.Calendar}
		loaded.source = dto.CalendarSourceProgram
		loaded.id = scope.ProgramKey()
		loaded.updatedAt = loaded.programUpdated
		return loaded, nil
	}

	loaded.calendar = s.engine.DefaultCalendar(scope.Period())
	loaded.source = dto.CalendarSourceDefault
	loaded.id = scope.CalendarKey()
	return loaded, nil
}

// readProgram returns the decoded program payload, or an empty payload and a nil document when
// nothing is stored yet.
func (s *ProgramService) readProgram(ctx context.Context, scope models.ProgramScope) (*models.ProgramPayload, *models.ProgramDocument, error) {
	doc, err := s.readDocument(ctx, scope.UserID, scope.ProgramKey())
	if err != nil {
		return nil, nil, err
	}
	payload := &models.ProgramPayload{}
	if doc == nil {
		return payload, nil, nil
	}
	if err := doc.Payload.Unmarshal(payload); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored program is unreadable")
	}
	return payload, doc, nil
}

func (s *ProgramService) readDocument(ctx context.Context, userID, id string) (*models.ProgramDocument, error) {
	start := time.Now()
	doc, err := s.docs.Get(ctx, userID, id)
	s.metrics.ObserveDBQuery("program_document_get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, s.storeError(err, "failed to load document")
	}
	return doc, nil
}

func (s *ProgramService) writeProgram(ctx context.Context, scope models.ProgramScope, calendar planner.Calendar, payload *models.ProgramPayload) (*models.ProgramDocument, error) {
	budget := payload.WeeklyHourBudget.Int()
	payload.TotalEffectiveWeeks = calendar.TotalEffectiveWeeks()
	payload.TotalEffectiveHours = calendar.TotalEffectiveHours(budget)
	if payload.Objectives == nil {
		payload.Objectives = []planner.Objective{}
	}
	if payload.Cells == nil {
		payload.Cells = planner.AssignmentMap{}
	}
	return s.writeDocument(ctx, scope, scope.ProgramKey(), models.DocumentTypeProgram, payload)
}

func (s *ProgramService) writeDocument(ctx context.Context, scope models.ProgramScope, id string, docType models.DocumentType, payload interface{}) (*models.ProgramDocument, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode document")
	}
	doc := &models.ProgramDocument{
		ID:           id,
		UserID:       scope.UserID,
		Type:         docType,
		Subject:      scope.Subject,
		GradeLevel:   scope.GradeLevel,
		AcademicYear: scope.AcademicYear,
		Semester:     string(scope.Semester),
		Payload:      types.JSONText(raw),
	}
	start := time.Now()
	err = s.docs.Upsert(ctx, doc)
	s.metrics.ObserveDBQuery("program_document_upsert", time.Since(start))
	if err != nil {
		return nil, s.storeError(err, "failed to save document")
	}
	return doc, nil
}

func (s *ProgramService) resolveBudget(ctx context.Context, scope models.ProgramScope, req dto.AutoDistributeRequest, program *models.ProgramPayload) (int, dto.BudgetSource, error) {
	if req.WeeklyHourBudget != nil && *req.WeeklyHourBudget > 0 {
		return *req.WeeklyHourBudget, dto.BudgetSourceRequest, nil
	}
	if program != nil && program.WeeklyHourBudget.Int() > 0 {
		return program.WeeklyHourBudget.Int(), dto.BudgetSourceProgram, nil
	}
	budget, _, ok, err := s.scheduleBudget(ctx, scope, req.SubjectID)
	if err != nil || !ok {
		return 0, "", err
	}
	return budget, dto.BudgetSourceSchedule, nil
}

func (s *ProgramService) scheduleBudget(ctx context.Context, scope models.ProgramScope, subjectID string) (int, string, bool, error) {
	if s.schedules == nil {
		return 0, "", false, nil
	}
	start := time.Now()
	rows, err := s.schedules.List(ctx, models.TeachingScheduleFilter{UserID: scope.UserID})
	s.metrics.ObserveDBQuery("teaching_schedule_list", time.Since(start))
	if err != nil {
		return 0, "", false, s.storeError(err, "failed to load teaching schedules")
	}
	entries := make([]planner.ScheduleEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.ToPlanner()
	}
	budget, className, ok := planner.DeriveWeeklyBudget(entries, planner.BudgetQuery{
		Grade:     scope.GradeLevel,
		Subject:   scope.Subject,
		SubjectID: subjectID,
	})
	return budget, className, ok, nil
}

// semesterHolidays loads the holidays that can touch any week of the calendar. Weeks past the
// 28th roll into the following month, hence the extra margin at the end.
func (s *ProgramService) semesterHolidays(ctx context.Context, scope models.ProgramScope, calendar planner.Calendar) ([]planner.Holiday, error) {
	if s.holidays == nil {
		return nil, nil
	}
	period := calendar.Period
	year, _ := period.CalendarYear(period.StartMonth())
	from := time.Date(year, period.StartMonth(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, planner.MonthsPerSemester, 14)

	start := time.Now()
	rows, err := s.holidays.List(ctx, models.HolidayFilter{UserID: scope.UserID, From: &from, To: &to})
	s.metrics.ObserveDBQuery("holiday_list", time.Since(start))
	if err != nil {
		return nil, s.storeError(err, "failed to load holidays")
	}
	return models.HolidaysToPlanner(rows), nil
}

func (s *ProgramService) invalidateTopics(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, topicCachePattern(userID)); err != nil {
		s.logger.Warn("failed to invalidate topic cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *ProgramService) storeError(err error, message string) error {
	s.logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, message)
}

func calendarView(scope models.ProgramScope, loaded loadedCalendar) *dto.CalendarView {
	budget := 0
	if loaded.program != nil {
		budget = loaded.program.WeeklyHourBudget.Int()
	}
	return &dto.CalendarView{
		ID:               loaded.id,
		Source:           loaded.source,
		GradeLevel:       scope.GradeLevel,
		AcademicYear:     scope.AcademicYear,
		Semester:         scope.Semester,
		Months:           loaded.calendar.Months,
		WeeklyHourBudget: budget,
		Summary:          planner.ComputeEffectiveWeeks(loaded.calendar, budget),
		UpdatedAt:        loaded.updatedAt,
	}
}

// checkObjectives rejects objective lists the matrix cannot address: ids must be positive
// and unique and targets must not be negative.
func checkObjectives(objectives []planner.Objective) error {
	seen := make(map[int]struct{}, len(objectives))
	for _, objective := range objectives {
		if objective.ID <= 0 {
			return appErrors.Clone(appErrors.ErrValidation, "objective ids must be positive")
		}
		if _, dup := seen[objective.ID]; dup {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("objective %d appears twice", objective.ID))
		}
		seen[objective.ID] = struct{}{}
		if objective.TargetHours.Int() < 0 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("objective %d has a negative target", objective.ID))
		}
	}
	return nil
}
