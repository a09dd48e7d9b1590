package dto

import "github.com/noah-isme/teaching-program-api/internal/planner"

// TopicQuery asks for the topic taught to a class on a date (YYYY-MM-DD, default today).
type TopicQuery struct {
	Class   string `form:"class" validate:"required"`
	Subject string `form:"subject"`
	Date    string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// TopicView is a resolved (or missed) topic lookup.
type TopicView struct {
	Class   string              `json:"class"`
	Subject string              `json:"subject"`
	Date    string              `json:"date"`
	Topic   planner.TopicResult `json:"topic"`
}

// ScheduleTopic is one teaching slot of a day with its current topic.
type ScheduleTopic struct {
	ScheduleID  string              `json:"scheduleId"`
	Class       string              `json:"class"`
	Subject     string              `json:"subject"`
	StartPeriod int                 `json:"startPeriod"`
	EndPeriod   int                 `json:"endPeriod"`
	StartTime   string              `json:"startTime,omitempty"`
	EndTime     string              `json:"endTime,omitempty"`
	Topic       planner.TopicResult `json:"topic"`
}

// DayTopics lists the topics of every slot on one weekday.
type DayTopics struct {
	Date      string          `json:"date"`
	DayOfWeek int             `json:"dayOfWeek"`
	Slots     []ScheduleTopic `json:"slots"`
}
