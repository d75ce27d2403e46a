package storage

import (
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)

func TestDecode_MissingFieldsFilledFromDefaults(t *testing.T) {
	doc := []byte(`{
		"user_info": {"name": "小明", "age": 6, "created_at": "2026-01-01"},
		"overall": {"total_correct": 12},
		"modules": {"math": {"correct": 4, "wrong": 1}}
	}`)

	s, err := Decode(doc, testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.SchemaVersion, s.Version)
	assert.Equal(t, "小明", s.UserInfo.Name)
	assert.Equal(t, "2026-01-01", s.UserInfo.CreatedAt)
	assert.Equal(t, 12, s.Overall.TotalCorrect)
	assert.Equal(t, 4, s.Modules[domain.ModuleMath].Correct)
	assert.Equal(t, 1, s.Modules[domain.ModuleMath].Level, "missing level defaults to 1")
	require.Contains(t, s.Modules, domain.ModuleLiteracy, "absent modules are added")
	assert.Equal(t, domain.DefaultTargetQuestions, s.DailyPlan.TargetQuestions)
	assert.Equal(t, domain.DefaultTargetMinutes, s.DailyPlan.TargetMinutes)
	assert.NotNil(t, s.Rewards.Badges)
	assert.NotNil(t, s.Reviews)
}

func TestDecode_PartialNestedObjectKeepsDefaults(t *testing.T) {
	doc := []byte(`{"daily_plan": {"target_minutes": 30}}`)

	s, err := Decode(doc, testNow)
	require.NoError(t, err)
	assert.Equal(t, 30, s.DailyPlan.TargetMinutes)
	assert.Equal(t, domain.DefaultTargetQuestions, s.DailyPlan.TargetQuestions)
	assert.Equal(t, "2026-03-14", s.UserInfo.CreatedAt)
}

func TestDecode_ClampsOutOfRangeValues(t *testing.T) {
	doc := []byte(`{
		"modules": {"math": {"level": 9}, "english": {"level": -2}},
		"review_items": {"literacy": {"苹果": {"learn_date": "2026-03-01", "next_review": "2026-02-01", "ease_factor": 7.5}}},
		"parent_settings": {"allowed_start_hour": -3, "daily_limit_min": -10}
	}`)

	s, err := Decode(doc, testNow)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Modules[domain.ModuleMath].Level)
	assert.Equal(t, 1, s.Modules[domain.ModuleEnglish].Level)

	item := s.Reviews["literacy"]["苹果"]
	require.NotNil(t, item)
	assert.Equal(t, "苹果", item.Content)
	assert.Equal(t, domain.MaxEaseFactor, item.EaseFactor)
	assert.Equal(t, "2026-03-02", item.NextReview, "next review must be after learn date")

	require.NotNil(t, s.Parent.AllowedStartHour)
	assert.Equal(t, 0, *s.Parent.AllowedStartHour)
	assert.Equal(t, 0, s.Parent.DailyLimitMin)
}

func TestDecode_MalformedLearnDateResetToToday(t *testing.T) {
	doc := []byte(`{"review_items": {"pinyin": {"zh": {"learn_date": "2024/01/05", "next_review": "2024/01/05"}}}}`)

	s, err := Decode(doc, testNow)
	require.NoError(t, err)

	item := s.Reviews["pinyin"]["zh"]
	require.NotNil(t, item)
	assert.Equal(t, "2026-03-14", item.LearnDate)
	assert.Equal(t, "2026-03-15", item.NextReview)
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	s, err := Decode([]byte(`{"future_field": {"x": 1}, "rewards": {"stars": 4}}`), testNow)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Rewards.Stars)
}

func TestDecode_RejectsMalformedAndEmpty(t *testing.T) {
	_, err := Decode([]byte(`{"overall": {"total_correct": `), testNow)
	assert.Error(t, err)

	_, err = Decode([]byte("   \n"), testNow)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDecode_RejectsFutureVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version": 99}`), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version")
}

func TestEncodeDecode_RoundTripPreservesSnapshot(t *testing.T) {
	s := domain.NewSnapshot(testNow)
	s.UserInfo.Name = "乐乐"
	s.Overall.TotalCorrect = 7
	s.Overall.DailyMinutes = append(s.Overall.DailyMinutes, domain.DayMinutes{Date: "2026-03-14", Minutes: 12})
	s.Modules[domain.ModuleMath].Level = 2
	s.Rewards.Badges = append(s.Rewards.Badges, "first_answer")
	s.WrongQuestions[domain.ModuleMath] = []domain.WrongQuestion{{Question: "3+4", Answer: "7", WrongCount: 2, FirstSeen: "2026-03-10", LastSeen: "2026-03-14"}}
	s.Reviews["literacy"] = map[string]*domain.ReviewItem{
		"苹果": {Content: "苹果", LearnDate: "2026-03-14", NextReview: "2026-03-17", EaseFactor: 2.5 + 0.1 + 0.1 + 0.1, ReviewCount: 3, CorrectStreak: 3},
	}
	start := 8
	s.Parent.AllowedStartHour = &start

	data, err := Encode(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "乐乐", "non-ASCII text is not escaped")

	got, err := Decode(data, testNow.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestNormalize_Idempotent(t *testing.T) {
	s := domain.NewSnapshot(testNow)
	s.Modules[domain.ModuleLogic].Level = 5
	Normalize(s, testNow)
	once := s.Clone()
	Normalize(s, testNow)
	assert.Equal(t, once, s)
}
