// Package achievement maps snapshot predicates to badge unlocks.
package achievement

import "github.com/alexanderramin/sprout/internal/domain"

// Badge is the presentation metadata for an unlockable badge. IDs are
// persisted and must stay stable.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Predicate inspects a snapshot. Implementations must not modify it.
type Predicate func(s *domain.Snapshot) bool

// Rule pairs a predicate with the badge it unlocks.
type Rule struct {
	Badge Badge
	Met   Predicate
}

// Rules is the fixed rule table, in display order.
var Rules = []Rule{
	{Badge{"first_answer", "初次答题", "完成第一道题", "🌱"}, func(s *domain.Snapshot) bool {
		return s.Overall.TotalCorrect+s.Overall.TotalWrong >= 1
	}},
	{Badge{"correct_10", "小试牛刀", "累计答对10题", "⭐"}, totalCorrectAtLeast(10)},
	{Badge{"correct_50", "渐入佳境", "累计答对50题", "🌟"}, totalCorrectAtLeast(50)},
	{Badge{"correct_100", "百题达人", "累计答对100题", "🏅"}, totalCorrectAtLeast(100)},
	{Badge{"correct_500", "学习之星", "累计答对500题", "🏆"}, totalCorrectAtLeast(500)},
	{Badge{"streak_5", "连对5题", "连续答对5题", "🔥"}, bestStreakAtLeast(5)},
	{Badge{"streak_10", "连对10题", "连续答对10题", "💪"}, bestStreakAtLeast(10)},
	{Badge{"streak_20", "势不可挡", "连续答对20题", "🚀"}, bestStreakAtLeast(20)},
	{Badge{"stars_10", "星星收集者", "获得10颗星星", "✨"}, starsAtLeast(10)},
	{Badge{"stars_50", "星光闪闪", "获得50颗星星", "🌠"}, starsAtLeast(50)},
	{Badge{"days_3", "坚持三天", "累计学习3天", "📅"}, daysAtLeast(3)},
	{Badge{"days_7", "一周坚持", "累计学习7天", "🗓️"}, daysAtLeast(7)},
	{Badge{"days_30", "学习习惯", "累计学习30天", "🎖️"}, daysAtLeast(30)},
	{Badge{"time_60", "专注一小时", "累计学习60分钟", "⏰"}, func(s *domain.Snapshot) bool {
		return s.Overall.TotalMinutes >= 60
	}},
	{Badge{"level_max", "挑战高手", "任意科目达到最高难度", "👑"}, func(s *domain.Snapshot) bool {
		for _, m := range s.Modules {
			if m != nil && m.Level >= domain.MaxLevel {
				return true
			}
		}
		return false
	}},
	{Badge{"all_rounder", "全能小将", "每个科目都答对10题", "🌈"}, func(s *domain.Snapshot) bool {
		for _, key := range domain.Modules {
			m := s.Modules[key]
			if m == nil || m.Correct < 10 {
				return false
			}
		}
		return true
	}},
	{Badge{"accuracy_90", "神准", "答题50道以上且正确率达到90%", "🎯"}, func(s *domain.Snapshot) bool {
		total := s.Overall.TotalCorrect + s.Overall.TotalWrong
		return total >= 50 && float64(s.Overall.TotalCorrect) >= 0.9*float64(total)
	}},
	{Badge{"reviewer_10", "温故知新", "完成10次复习", "📖"}, func(s *domain.Snapshot) bool {
		return s.TotalReviews() >= 10
	}},
	{Badge{"mastered_20", "知识宝库", "掌握20个知识点", "💎"}, func(s *domain.Snapshot) bool {
		return s.TotalMastered() >= 20
	}},
	{Badge{"challenge_10", "挑战达人", "完成10个每日挑战", "🥇"}, func(s *domain.Snapshot) bool {
		return s.Challenges.TotalCompleted >= 10
	}},
}

func totalCorrectAtLeast(n int) Predicate {
	return func(s *domain.Snapshot) bool { return s.Overall.TotalCorrect >= n }
}

func bestStreakAtLeast(n int) Predicate {
	return func(s *domain.Snapshot) bool { return s.Overall.BestStreak >= n }
}

func starsAtLeast(n int) Predicate {
	return func(s *domain.Snapshot) bool { return s.Rewards.Stars >= n }
}

func daysAtLeast(n int) Predicate {
	return func(s *domain.Snapshot) bool { return s.Overall.DaysLearned >= n }
}

// Lookup returns the badge metadata for id.
func Lookup(id string) (Badge, bool) {
	for _, r := range Rules {
		if r.Badge.ID == id {
			return r.Badge, true
		}
	}
	return Badge{}, false
}
