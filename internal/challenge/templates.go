// Package challenge generates the daily challenge set and tracks progress
// against it.
package challenge

import "github.com/alexanderramin/sprout/internal/domain"

// PerDay is the number of challenges drawn each day.
const PerDay = 3

// Templates is the canonical pool challenges are drawn from. Keep IDs stable:
// completed IDs are persisted.
var Templates = []domain.Challenge{
	{ID: "correct_10", Type: domain.ChallengeCorrect, Title: "今天答对10题", Target: 10, Reward: 2},
	{ID: "correct_20", Type: domain.ChallengeCorrect, Title: "今天答对20题", Target: 20, Reward: 3},
	{ID: "streak_5", Type: domain.ChallengeStreak, Title: "连续答对5题", Target: 5, Reward: 2},
	{ID: "streak_10", Type: domain.ChallengeStreak, Title: "连续答对10题", Target: 10, Reward: 4},
	{ID: "math_5", Type: domain.ChallengeModuleCorrect, Module: domain.ModuleMath, Title: "数学答对5题", Target: 5, Reward: 2},
	{ID: "literacy_5", Type: domain.ChallengeModuleCorrect, Module: domain.ModuleLiteracy, Title: "识字答对5题", Target: 5, Reward: 2},
	{ID: "pinyin_5", Type: domain.ChallengeModuleCorrect, Module: domain.ModulePinyin, Title: "拼音答对5题", Target: 5, Reward: 2},
	{ID: "english_5", Type: domain.ChallengeModuleCorrect, Module: domain.ModuleEnglish, Title: "英语答对5题", Target: 5, Reward: 2},
	{ID: "time_10", Type: domain.ChallengeTime, Title: "学习10分钟", Target: 10, Reward: 2},
	{ID: "time_20", Type: domain.ChallengeTime, Title: "学习20分钟", Target: 20, Reward: 3},
	{ID: "review_5", Type: domain.ChallengeReview, Title: "复习5个知识点", Target: 5, Reward: 2},
	{ID: "perfect_10", Type: domain.ChallengePerfect, Title: "全对10题不出错", Target: 10, Reward: 5},
}
