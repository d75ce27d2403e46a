package domain

import "time"

// AnswerEvent is one journaled answer.
type AnswerEvent struct {
	ID         string
	Module     Module
	Points     int
	Correct    bool
	Streak     int
	AnsweredAt time.Time
}

// SessionLog is one journaled play session.
type SessionLog struct {
	ID      string
	Module  Module
	Minutes int
	EndedAt time.Time
}

// LevelChangeEvent is one journaled difficulty transition. AnswerEventID is
// nil for manual overrides.
type LevelChangeEvent struct {
	ID            string
	AnswerEventID *string
	Module        Module
	FromLevel     int
	ToLevel       int
	ChangedAt     time.Time
}

// ModuleActivity aggregates journal rows for one module over a period.
type ModuleActivity struct {
	Module       Module  `json:"module" yaml:"module"`
	Answers      int     `json:"answers" yaml:"answers"`
	Correct      int     `json:"correct" yaml:"correct"`
	Points       int     `json:"points" yaml:"points"`
	Minutes      int     `json:"minutes" yaml:"minutes"`
	LevelChanges int     `json:"level_changes" yaml:"level_changes"`
	Accuracy     float64 `json:"accuracy" yaml:"accuracy"`
}
