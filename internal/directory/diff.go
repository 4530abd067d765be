package directory

import "employee-directory/internal/domain"

// Diff compares two snapshots keyed by employee tag. Order follows next for
// added and changed records and prev for removed ones. Records without a tag
// are ignored.
func Diff(prev, next []domain.Employee) (added, changed, removed []domain.Employee) {
	prevByTag := make(map[string]domain.Employee, len(prev))
	for _, e := range prev {
		if e.EmployeeTag != "" {
			prevByTag[e.EmployeeTag] = e
		}
	}

	seen := make(map[string]bool, len(next))
	for _, e := range next {
		if e.EmployeeTag == "" {
			continue
		}
		seen[e.EmployeeTag] = true
		old, ok := prevByTag[e.EmployeeTag]
		switch {
		case !ok:
			added = append(added, e)
		case old != e:
			changed = append(changed, e)
		}
	}

	for _, e := range prev {
		if e.EmployeeTag != "" && !seen[e.EmployeeTag] {
			removed = append(removed, e)
		}
	}
	return added, changed, removed
}
