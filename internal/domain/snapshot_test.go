package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedSnapshot() *Snapshot {
	s := NewSnapshot(testNow)
	start, end := 8, 20
	s.Parent.AllowedStartHour = &start
	s.Parent.AllowedEndHour = &end
	s.Parent.Notifications = append(s.Parent.Notifications, Notification{ID: "n1", Kind: "note"})
	s.Modules[ModuleMath].Correct = 4
	s.Reviews["pinyin"] = map[string]*ReviewItem{
		"zh": {Content: "zh", LearnDate: "2026-03-14", NextReview: "2026-03-15", EaseFactor: 2.5},
	}
	s.Mastered["pinyin"] = []string{"a"}
	s.WrongQuestions[ModuleMath] = []WrongQuestion{{Question: "3+4", Answer: "7", WrongCount: 1}}
	s.DailyPlan.ModuleCorrect[ModuleMath] = 2
	s.Rewards.Badges = []string{"first_correct"}
	s.Overall.DailyMinutes = []DayMinutes{{Date: "2026-03-14", Minutes: 10}}
	s.Challenges.Completed = []string{"c1"}
	return s
}

func TestClone_SharesNoMutableState(t *testing.T) {
	orig := populatedSnapshot()
	c := orig.Clone()
	require.Equal(t, orig, c)

	*c.Parent.AllowedStartHour = 6
	*c.Parent.AllowedEndHour = 23
	c.Parent.Notifications[0].Kind = "changed"
	c.Modules[ModuleMath].Correct = 99
	c.Reviews["pinyin"]["zh"].EaseFactor = 1.3
	c.Reviews["pinyin"]["ch"] = &ReviewItem{Content: "ch"}
	c.Reviews["english"] = map[string]*ReviewItem{}
	c.Mastered["pinyin"][0] = "b"
	c.WrongQuestions[ModuleMath][0].WrongCount = 5
	c.DailyPlan.ModuleCorrect[ModuleMath] = 7
	c.Rewards.Badges[0] = "x"
	c.Overall.DailyMinutes[0].Minutes = 99
	c.Challenges.Completed[0] = "c9"

	assert.Equal(t, 8, *orig.Parent.AllowedStartHour)
	assert.Equal(t, 20, *orig.Parent.AllowedEndHour)
	assert.Equal(t, "note", orig.Parent.Notifications[0].Kind)
	assert.Equal(t, 4, orig.Modules[ModuleMath].Correct)
	assert.Equal(t, 2.5, orig.Reviews["pinyin"]["zh"].EaseFactor)
	assert.Len(t, orig.Reviews["pinyin"], 1)
	assert.NotContains(t, orig.Reviews, "english")
	assert.Equal(t, "a", orig.Mastered["pinyin"][0])
	assert.Equal(t, 1, orig.WrongQuestions[ModuleMath][0].WrongCount)
	assert.Equal(t, 2, orig.DailyPlan.ModuleCorrect[ModuleMath])
	assert.Equal(t, "first_correct", orig.Rewards.Badges[0])
	assert.Equal(t, 10, orig.Overall.DailyMinutes[0].Minutes)
	assert.Equal(t, "c1", orig.Challenges.Completed[0])
}

func TestClone_NilHoursStayNil(t *testing.T) {
	c := NewSnapshot(testNow).Clone()
	assert.Nil(t, c.Parent.AllowedStartHour)
	assert.Nil(t, c.Parent.AllowedEndHour)
	assert.Nil(t, (*Snapshot)(nil).Clone())
}

func TestNewSnapshot_AllModulesAtMinLevel(t *testing.T) {
	s := NewSnapshot(testNow)
	for _, m := range Modules {
		require.NotNil(t, s.Modules[m], "module %s", m)
		assert.Equal(t, MinLevel, s.Modules[m].Level)
	}
	assert.Equal(t, "2026-03-14", s.DailyPlan.Date)
	assert.Equal(t, DefaultTargetQuestions, s.DailyPlan.TargetQuestions)
}

func TestParseModule(t *testing.T) {
	cases := []struct {
		key  string
		want Module
		ok   bool
	}{
		{"math", ModuleMath, true},
		{"  Pinyin ", ModulePinyin, true},
		{"VEHICLE", ModuleVehicle, true},
		{"chemistry", "chemistry", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseModule(tc.key)
		assert.Equal(t, tc.ok, ok, "key=%q", tc.key)
		assert.Equal(t, tc.want, got, "key=%q", tc.key)
	}
}
