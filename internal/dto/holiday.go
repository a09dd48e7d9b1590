package dto

// HolidayQuery filters holiday listings. Dates are YYYY-MM-DD.
type HolidayQuery struct {
	Type string `form:"type" validate:"omitempty,oneof=manual public"`
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}

// HolidayRequest creates or replaces a holiday. Either Date or both StartDate and EndDate
// must be set.
type HolidayRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Category  string `json:"category" validate:"omitempty,max=100"`
	Type      string `json:"type" validate:"required,oneof=manual public"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// TeachingScheduleRequest creates a weekly teaching slot. DayOfWeek is 1 (Monday) to 7.
type TeachingScheduleRequest struct {
	Class       string  `json:"class" validate:"required,max=50"`
	Subject     string  `json:"subject" validate:"required,max=100"`
	SubjectID   *string `json:"subjectId"`
	DayOfWeek   int     `json:"dayOfWeek" validate:"required,min=1,max=7"`
	StartPeriod int     `json:"startPeriod" validate:"required,min=1"`
	EndPeriod   int     `json:"endPeriod" validate:"required,gtefield=StartPeriod"`
	StartTime   string  `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime     string  `json:"endTime" validate:"omitempty,datetime=15:04"`
}

// ClassSectionItem maps a class section to its grade level.
type ClassSectionItem struct {
	Rombel string `json:"rombel" validate:"required,max=50"`
	Level  string `json:"level" validate:"required,max=10"`
}

// ReplaceRosterRequest replaces the teacher's class roster.
type ReplaceRosterRequest struct {
	Sections []ClassSectionItem `json:"sections" validate:"dive"`
}
