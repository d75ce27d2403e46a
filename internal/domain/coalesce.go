package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// PositiveOr returns v when it is greater than zero, otherwise fallback.
func PositiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// NonNegative floors v at zero.
func NonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// AppendUnique appends s unless it is already present.
func AppendUnique(list []string, s string) ([]string, bool) {
	for _, v := range list {
		if v == s {
			return list, false
		}
	}
	return append(list, s), true
}

// Dedupe removes repeated strings while keeping first-seen order.
func Dedupe(list []string) []string {
	if len(list) == 0 {
		return list
	}
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, v := range list {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
