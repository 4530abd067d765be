package directory

import (
	"strings"

	"employee-directory/internal/domain"
)

// Filter returns the records whose username, email or phone number contains
// term, ignoring case. An empty term keeps everything. Order is preserved and
// the input is never modified.
func Filter(records []domain.Employee, term string) []domain.Employee {
	out := make([]domain.Employee, 0, len(records))
	if term == "" {
		return append(out, records...)
	}

	needle := strings.ToLower(term)
	for _, e := range records {
		if matches(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e domain.Employee, needle string) bool {
	return strings.Contains(strings.ToLower(e.Username), needle) ||
		strings.Contains(strings.ToLower(e.Email), needle) ||
		strings.Contains(strings.ToLower(e.PhoneNumber), needle)
}
