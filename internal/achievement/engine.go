package achievement

import "github.com/alexanderramin/sprout/internal/domain"

// Pending returns the badges whose rule now holds but which are not yet in
// s.Rewards.Badges. It does not modify s.
func Pending(s *domain.Snapshot, rules []Rule) []Badge {
	var out []Badge
	for _, r := range rules {
		if s.Rewards.HasBadge(r.Badge.ID) {
			continue
		}
		if r.Met(s) {
			out = append(out, r.Badge)
		}
	}
	return out
}

// Unlock appends every pending badge to the snapshot and returns the newly
// unlocked ones. Badges are append-only; a rule that stops holding never
// revokes its badge.
func Unlock(s *domain.Snapshot, rules []Rule) []Badge {
	pending := Pending(s, rules)
	for _, b := range pending {
		s.Rewards.Badges, _ = domain.AppendUnique(s.Rewards.Badges, b.ID)
	}
	return pending
}
