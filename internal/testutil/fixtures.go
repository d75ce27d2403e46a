package testutil

import (
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/google/uuid"
)

// Answer event options
type AnswerOption func(*domain.AnswerEvent)

func WithPoints(p int) AnswerOption {
	return func(e *domain.AnswerEvent) {
		e.Points = p
	}
}

func WithAnsweredAt(t time.Time) AnswerOption {
	return func(e *domain.AnswerEvent) {
		e.AnsweredAt = t
	}
}

func WithStreak(n int) AnswerOption {
	return func(e *domain.AnswerEvent) {
		e.Streak = n
	}
}

func NewTestAnswerEvent(module domain.Module, correct bool, opts ...AnswerOption) *domain.AnswerEvent {
	e := &domain.AnswerEvent{
		ID:         uuid.New().String(),
		Module:     module,
		Points:     10,
		Correct:    correct,
		AnsweredAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session options
type SessionOption func(*domain.SessionLog)

func WithEndedAt(t time.Time) SessionOption {
	return func(s *domain.SessionLog) {
		s.EndedAt = t
	}
}

func NewTestSessionLog(module domain.Module, minutes int, opts ...SessionOption) *domain.SessionLog {
	s := &domain.SessionLog{
		ID:      uuid.New().String(),
		Module:  module,
		Minutes: minutes,
		EndedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Level change options
type LevelChangeOption func(*domain.LevelChangeEvent)

func WithAnswerEventID(id string) LevelChangeOption {
	return func(c *domain.LevelChangeEvent) {
		c.AnswerEventID = &id
	}
}

func WithChangedAt(t time.Time) LevelChangeOption {
	return func(c *domain.LevelChangeEvent) {
		c.ChangedAt = t
	}
}

func NewTestLevelChange(module domain.Module, from, to int, opts ...LevelChangeOption) *domain.LevelChangeEvent {
	c := &domain.LevelChangeEvent{
		ID:        uuid.New().String(),
		Module:    module,
		FromLevel: from,
		ToLevel:   to,
		ChangedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
