package domain

import "time"

// SchemaVersion is bumped whenever the persisted document changes shape.
const SchemaVersion = 2

// Snapshot is the complete persisted state of one child's learning progress.
type Snapshot struct {
	Version        int                               `json:"version"`
	UserInfo       UserInfo                          `json:"user_info"`
	Overall        Overall                           `json:"overall"`
	Modules        map[Module]*ModuleStats           `json:"modules"`
	Rewards        Rewards                           `json:"rewards"`
	WrongQuestions map[Module][]WrongQuestion        `json:"wrong_questions"`
	Mastered       map[string][]string               `json:"mastered_items"`
	DailyPlan      DailyPlan                         `json:"daily_plan"`
	Reviews        map[string]map[string]*ReviewItem `json:"review_items"`
	Parent         ParentSettings                    `json:"parent_settings"`
	Challenges     DailyChallenges                   `json:"daily_challenges"`
}

type UserInfo struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	CreatedAt string `json:"created_at"`
}

type Overall struct {
	TotalScore     int          `json:"total_score"`
	TotalCorrect   int          `json:"total_correct"`
	TotalWrong     int          `json:"total_wrong"`
	DaysLearned    int          `json:"days_learned"`
	LastActiveDate string       `json:"last_active_date"`
	TotalMinutes   int          `json:"total_minutes"`
	CurrentStreak  int          `json:"current_streak"`
	BestStreak     int          `json:"best_streak"`
	DailyMinutes   []DayMinutes `json:"daily_minutes"`
}

// DayMinutes is one entry of the rolling learning-time history.
type DayMinutes struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type ModuleStats struct {
	Score      int `json:"score"`
	Correct    int `json:"correct"`
	Wrong      int `json:"wrong"`
	TimeSpentM int `json:"time_spent_min"`
	Level      int `json:"level"`
}

// Attempts is the number of answers recorded for the module.
func (m ModuleStats) Attempts() int {
	return m.Correct + m.Wrong
}

// Accuracy is correct/attempts, or zero before any attempt.
func (m ModuleStats) Accuracy() float64 {
	if m.Attempts() == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Attempts())
}

type Rewards struct {
	Stars        int      `json:"stars"`
	Badges       []string `json:"badges"`
	Achievements []string `json:"achievements"`
}

// HasBadge reports whether id has been unlocked.
func (r Rewards) HasBadge(id string) bool {
	for _, b := range r.Badges {
		if b == id {
			return true
		}
	}
	return false
}

type WrongQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	WrongCount int    `json:"wrong_count"`
	FirstSeen  string `json:"first_seen"`
	LastSeen   string `json:"last_seen"`
}

type DailyPlan struct {
	Date             string         `json:"date"`
	TodayQuestions   int            `json:"today_questions"`
	TodayCorrect     int            `json:"today_correct"`
	TodayMinutes     int            `json:"today_minutes"`
	TodayReviews     int            `json:"today_reviews"`
	BestStreakToday  int            `json:"best_streak_today"`
	ModuleCorrect    map[Module]int `json:"module_correct"`
	TargetQuestions  int            `json:"target_questions"`
	TargetMinutes    int            `json:"target_minutes"`
	LastRestReminder int            `json:"last_rest_reminder"`
}

// TodayWrong is derived from the question and correct counters.
func (p DailyPlan) TodayWrong() int {
	return NonNegative(p.TodayQuestions - p.TodayCorrect)
}

type ReviewItem struct {
	Content       string  `json:"content"`
	LearnDate     string  `json:"learn_date"`
	ReviewCount   int     `json:"review_count"`
	NextReview    string  `json:"next_review"`
	LastReview    string  `json:"last_review,omitempty"`
	EaseFactor    float64 `json:"ease_factor"`
	CorrectStreak int     `json:"correct_streak"`
}

type ParentSettings struct {
	PasswordHash     string         `json:"password_hash,omitempty"`
	Password         string         `json:"password,omitempty"`
	DailyLimitMin    int            `json:"daily_limit_min"`
	SessionLimitMin  int            `json:"session_limit_min"`
	AllowedStartHour *int           `json:"allowed_start_hour,omitempty"`
	AllowedEndHour   *int           `json:"allowed_end_hour,omitempty"`
	WeekendBonusMin  int            `json:"weekend_bonus_min"`
	LockEnabled      bool           `json:"lock_enabled"`
	TimeLockEnabled  bool           `json:"time_lock_enabled"`
	Notifications    []Notification `json:"notifications"`
}

// HasPassword reports whether any parent password is configured.
func (p ParentSettings) HasPassword() bool {
	return p.PasswordHash != "" || p.Password != ""
}

type Notification struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Challenge struct {
	ID     string        `json:"id"`
	Type   ChallengeType `json:"type"`
	Title  string        `json:"title"`
	Module Module        `json:"module,omitempty"`
	Target int           `json:"target"`
	Reward int           `json:"reward"`
}

type DailyChallenges struct {
	Date           string      `json:"date"`
	Challenges     []Challenge `json:"challenges"`
	Completed      []string    `json:"completed"`
	Streak         int         `json:"streak"`
	TotalCompleted int         `json:"total_completed"`
}

// IsCompleted reports whether challenge id was completed today.
func (d DailyChallenges) IsCompleted(id string) bool {
	for _, c := range d.Completed {
		if c == id {
			return true
		}
	}
	return false
}

const (
	DefaultTargetQuestions = 20
	DefaultTargetMinutes   = 15
)

// NewSnapshot returns a fresh snapshot stamped with now's calendar day.
func NewSnapshot(now time.Time) *Snapshot {
	today := DateOf(now)
	s := &Snapshot{
		Version:  SchemaVersion,
		UserInfo: UserInfo{CreatedAt: today},
		DailyPlan: DailyPlan{
			Date:            today,
			TargetQuestions: DefaultTargetQuestions,
			TargetMinutes:   DefaultTargetMinutes,
		},
	}
	s.EnsureCollections()
	return s
}

// EnsureCollections allocates nil maps and slices and adds a ModuleStats entry
// for every known module.
func (s *Snapshot) EnsureCollections() {
	if s.Modules == nil {
		s.Modules = make(map[Module]*ModuleStats, len(Modules))
	}
	for _, m := range Modules {
		if s.Modules[m] == nil {
			s.Modules[m] = &ModuleStats{Level: MinLevel}
		}
	}
	if s.WrongQuestions == nil {
		s.WrongQuestions = make(map[Module][]WrongQuestion)
	}
	if s.Mastered == nil {
		s.Mastered = make(map[string][]string)
	}
	if s.Reviews == nil {
		s.Reviews = make(map[string]map[string]*ReviewItem)
	}
	if s.DailyPlan.ModuleCorrect == nil {
		s.DailyPlan.ModuleCorrect = make(map[Module]int)
	}
	if s.Rewards.Badges == nil {
		s.Rewards.Badges = []string{}
	}
	if s.Rewards.Achievements == nil {
		s.Rewards.Achievements = []string{}
	}
	if s.Overall.DailyMinutes == nil {
		s.Overall.DailyMinutes = []DayMinutes{}
	}
	if s.Parent.Notifications == nil {
		s.Parent.Notifications = []Notification{}
	}
	if s.Challenges.Challenges == nil {
		s.Challenges.Challenges = []Challenge{}
	}
	if s.Challenges.Completed == nil {
		s.Challenges.Completed = []string{}
	}
}

// TotalMastered counts mastered items across all categories.
func (s *Snapshot) TotalMastered() int {
	n := 0
	for _, items := range s.Mastered {
		n += len(items)
	}
	return n
}

// TotalReviews sums review counts across all review items.
func (s *Snapshot) TotalReviews() int {
	n := 0
	for _, items := range s.Reviews {
		for _, it := range items {
			n += it.ReviewCount
		}
	}
	return n
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s

	c.Overall.DailyMinutes = append([]DayMinutes(nil), s.Overall.DailyMinutes...)

	c.Modules = make(map[Module]*ModuleStats, len(s.Modules))
	for k, v := range s.Modules {
		if v == nil {
			continue
		}
		ms := *v
		c.Modules[k] = &ms
	}

	c.Rewards.Badges = append([]string(nil), s.Rewards.Badges...)
	c.Rewards.Achievements = append([]string(nil), s.Rewards.Achievements...)

	c.WrongQuestions = make(map[Module][]WrongQuestion, len(s.WrongQuestions))
	for k, v := range s.WrongQuestions {
		c.WrongQuestions[k] = append([]WrongQuestion(nil), v...)
	}

	c.Mastered = make(map[string][]string, len(s.Mastered))
	for k, v := range s.Mastered {
		c.Mastered[k] = append([]string(nil), v...)
	}

	c.DailyPlan.ModuleCorrect = make(map[Module]int, len(s.DailyPlan.ModuleCorrect))
	for k, v := range s.DailyPlan.ModuleCorrect {
		c.DailyPlan.ModuleCorrect[k] = v
	}

	c.Reviews = make(map[string]map[string]*ReviewItem, len(s.Reviews))
	for cat, items := range s.Reviews {
		cp := make(map[string]*ReviewItem, len(items))
		for k, v := range items {
			if v == nil {
				continue
			}
			it := *v
			cp[k] = &it
		}
		c.Reviews[cat] = cp
	}

	if s.Parent.AllowedStartHour != nil {
		h := *s.Parent.AllowedStartHour
		c.Parent.AllowedStartHour = &h
	}
	if s.Parent.AllowedEndHour != nil {
		h := *s.Parent.AllowedEndHour
		c.Parent.AllowedEndHour = &h
	}
	c.Parent.Notifications = append([]Notification(nil), s.Parent.Notifications...)

	c.Challenges.Challenges = append([]Challenge(nil), s.Challenges.Challenges...)
	c.Challenges.Completed = append([]string(nil), s.Challenges.Completed...)

	c.EnsureCollections()
	return &c
}
