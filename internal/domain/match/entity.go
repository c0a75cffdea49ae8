package match

import (
	"sort"
	"strings"
)

const skillSeparator = ", "

// Recommendation scores one employee against one role. MatchScore counts the
// matched skills. MatchedSkills and MissingSkills follow the role's order.
type Recommendation struct {
	EmployeeID    string
	RoleID        string
	MatchScore    int
	MatchedSkills []string
	MissingSkills []string
}

func JoinSkills(names []string) string {
	return strings.Join(names, skillSeparator)
}

func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TopK orders recs by score, highest first, keeping the incoming order among
// equal scores, and returns at most k of them. k <= 0 returns all.
func TopK(recs []Recommendation, k int) []Recommendation {
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}

// ForEmployee filters recs down to one employee, preserving order.
func ForEmployee(recs []Recommendation, employeeID string) []Recommendation {
	out := make([]Recommendation, 0)
	for _, r := range recs {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}
