package progress

import (
	"strings"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/scheduler"
)

func cleanKey(s string) string {
	return strings.TrimSpace(s)
}

// AddReviewItem schedules content in category for its first review
// tomorrow. It returns false when the pair already exists or either key is
// blank.
func (s *Store) AddReviewItem(category, content string) bool {
	category, content = cleanKey(category), cleanKey(content)
	if category == "" || content == "" {
		s.logger.Warn("review item rejected: blank key", "category", category, "content", content)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.today()

	items := s.snap.Reviews[category]
	if _, exists := items[content]; exists {
		return false
	}
	if items == nil {
		items = make(map[string]*domain.ReviewItem)
		s.snap.Reviews[category] = items
	}
	items[content] = scheduler.NewItem(content, now)
	s.dirty.Store(true)
	return true
}

// ReviewUpdate reports the outcome of one review.
type ReviewUpdate struct {
	Unlocks
	Found      bool   `json:"found"`
	NextReview string `json:"next_review,omitempty"`
	Mastered   bool   `json:"mastered"`
}

// UpdateReviewItem records a review outcome and reschedules the item. An
// unknown pair is a no-op with Found false and no date.
func (s *Store) UpdateReviewItem(category, content string, correct bool) ReviewUpdate {
	category, content = cleanKey(category), cleanKey(content)

	s.mu.Lock()
	now, _ := s.today()
	item, ok := s.snap.Reviews[category][content]
	if !ok {
		s.mu.Unlock()
		return ReviewUpdate{}
	}
	res := ReviewUpdate{
		Found:      true,
		NextReview: scheduler.Apply(item, correct, now),
		Mastered:   scheduler.IsMastered(item),
	}
	s.snap.DailyPlan.TodayReviews++
	res.Unlocks = s.settle()
	s.mu.Unlock()

	s.afterUnlock(res.Unlocks)
	return res
}

// RemoveReviewItem deletes a review item. It returns false when absent.
func (s *Store) RemoveReviewItem(category, content string) bool {
	category, content = cleanKey(category), cleanKey(content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()

	items, ok := s.snap.Reviews[category]
	if !ok {
		return false
	}
	if _, ok := items[content]; !ok {
		return false
	}
	delete(items, content)
	if len(items) == 0 {
		delete(s.snap.Reviews, category)
	}
	s.dirty.Store(true)
	return true
}

// DueReviews lists items due today or earlier, most overdue first. An empty
// category lists every category.
func (s *Store) DueReviews(category string) []scheduler.DueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.today()
	return scheduler.Due(s.snap.Reviews, cleanKey(category), now)
}

// ReviewStats summarizes review items per category.
func (s *Store) ReviewStats() scheduler.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.today()
	return scheduler.Summarize(s.snap.Reviews, now)
}

// ReviewCalendar counts items falling due on each of the next days days.
func (s *Store) ReviewCalendar(days int) []scheduler.CalendarDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	now, _ := s.today()
	return scheduler.Calendar(s.snap.Reviews, now, days)
}

// AddWrongQuestion files a wrongly answered question in the module's book.
// Re-adding a question bumps its count instead of duplicating it; the book
// keeps the newest MaxWrongQuestions entries.
func (s *Store) AddWrongQuestion(module, question, answer string) bool {
	m, ok := domain.ParseModule(module)
	question = cleanKey(question)
	if !ok || question == "" {
		s.logger.Warn("wrong question rejected", "module", module, "question", question)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, day := s.today()

	book := s.snap.WrongQuestions[m]
	for i := range book {
		if book[i].Question == question {
			book[i].WrongCount++
			book[i].LastSeen = day
			book[i].Answer = domain.CoalesceStr(answer, book[i].Answer)
			s.dirty.Store(true)
			return true
		}
	}
	book = append(book, domain.WrongQuestion{
		Question:   question,
		Answer:     answer,
		WrongCount: 1,
		FirstSeen:  day,
		LastSeen:   day,
	})
	if over := len(book) - domain.MaxWrongQuestions; over > 0 {
		book = append([]domain.WrongQuestion(nil), book[over:]...)
	}
	s.snap.WrongQuestions[m] = book
	s.dirty.Store(true)
	return true
}

// RemoveWrongQuestion drops a question from the module's book, typically
// once the child answers it correctly. It returns false when absent.
func (s *Store) RemoveWrongQuestion(module, question string) bool {
	m, ok := domain.ParseModule(module)
	if !ok {
		return false
	}
	question = cleanKey(question)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.today()

	book := s.snap.WrongQuestions[m]
	for i := range book {
		if book[i].Question != question {
			continue
		}
		book = append(book[:i:i], book[i+1:]...)
		if len(book) == 0 {
			delete(s.snap.WrongQuestions, m)
		} else {
			s.snap.WrongQuestions[m] = book
		}
		s.dirty.Store(true)
		return true
	}
	return false
}

// WrongQuestions returns a copy of the module's wrong-question book, or of
// every book when module is empty.
func (s *Store) WrongQuestions(module string) map[domain.Module][]domain.WrongQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[domain.Module][]domain.WrongQuestion)
	if cleanKey(module) == "" {
		for m, book := range s.snap.WrongQuestions {
			out[m] = append([]domain.WrongQuestion(nil), book...)
		}
		return out
	}
	if m, ok := domain.ParseModule(module); ok && len(s.snap.WrongQuestions[m]) > 0 {
		out[m] = append([]domain.WrongQuestion(nil), s.snap.WrongQuestions[m]...)
	}
	return out
}

// AddMasteredItem marks id as mastered in category. It is idempotent and
// returns whether the item was newly added.
func (s *Store) AddMasteredItem(category, id string) (bool, Unlocks) {
	category, id = cleanKey(category), cleanKey(id)
	if category == "" || id == "" {
		s.logger.Warn("mastered item rejected: blank key", "category", category, "id", id)
		return false, Unlocks{}
	}

	s.mu.Lock()
	s.today()
	list, added := domain.AppendUnique(s.snap.Mastered[category], id)
	var u Unlocks
	if added {
		s.snap.Mastered[category] = list
		u = s.settle()
	}
	s.mu.Unlock()

	s.afterUnlock(u)
	return added, u
}

// IsMastered reports whether id was marked mastered in category.
func (s *Store) IsMastered(category, id string) bool {
	category, id = cleanKey(category), cleanKey(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.snap.Mastered[category] {
		if v == id {
			return true
		}
	}
	return false
}

// MasteredItems returns a copy of the mastered ids per category, or of one
// category when category is not empty.
func (s *Store) MasteredItems(category string) map[string][]string {
	category = cleanKey(category)
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]string)
	for cat, ids := range s.snap.Mastered {
		if category != "" && cat != category {
			continue
		}
		out[cat] = append([]string(nil), ids...)
	}
	return out
}
