package domain

import "strings"

// Module is a subject key such as "math" or "literacy".
type Module string

const (
	ModuleLiteracy Module = "literacy"
	ModulePinyin   Module = "pinyin"
	ModuleMath     Module = "math"
	ModuleEnglish  Module = "english"
	ModuleLogic    Module = "logic"
	ModuleVehicle  Module = "vehicle"
)

// Modules is the canonical, ordered set of subject keys.
var Modules = []Module{
	ModuleLiteracy,
	ModulePinyin,
	ModuleMath,
	ModuleEnglish,
	ModuleLogic,
	ModuleVehicle,
}

// ParseModule normalizes a caller-supplied key. The second result is false
// for keys outside Modules.
func ParseModule(key string) (Module, bool) {
	m := Module(strings.ToLower(strings.TrimSpace(key)))
	for _, known := range Modules {
		if m == known {
			return m, true
		}
	}
	return m, false
}

const (
	MinLevel = 1
	MaxLevel = 3
)

// ClampLevel bounds a difficulty level to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

const (
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 3.0
	DefaultEaseFactor = 2.5
)

// ClampEase bounds an ease factor to [MinEaseFactor, MaxEaseFactor].
func ClampEase(ef float64) float64 {
	if ef < MinEaseFactor {
		return MinEaseFactor
	}
	if ef > MaxEaseFactor {
		return MaxEaseFactor
	}
	return ef
}

type Feedback string

const (
	FeedbackPraise          Feedback = "praise"
	FeedbackEncouragement   Feedback = "encouragement"
	FeedbackStreakMilestone Feedback = "streak_milestone"
)

type ChallengeType string

const (
	ChallengeCorrect       ChallengeType = "correct"
	ChallengeStreak        ChallengeType = "streak"
	ChallengeModuleCorrect ChallengeType = "module_correct"
	ChallengeTime          ChallengeType = "time"
	ChallengeReview        ChallengeType = "review"
	ChallengePerfect       ChallengeType = "perfect"
)

type LimitKind string

const (
	LimitNone    LimitKind = ""
	LimitSession LimitKind = "session"
	LimitDaily   LimitKind = "daily"
)

const (
	MaxWrongQuestions = 50
	MaxNotifications  = 50
	MaxMinuteHistory  = 30
)
