package directory

import "employee-directory/internal/domain"

// State is a snapshot of the directory screen.
//
// Draft is set exactly when Selected is set.
type State struct {
	Records  []domain.Employee
	Loading  bool
	Saving   bool
	Selected *domain.Employee
	Draft    *domain.EditDraft
}

// Editing reports whether an edit session is open.
func (s State) Editing() bool {
	return s.Selected != nil
}

func (s State) clone() State {
	out := State{
		Loading: s.Loading,
		Saving:  s.Saving,
	}
	if s.Records != nil {
		out.Records = append(make([]domain.Employee, 0, len(s.Records)), s.Records...)
	}
	if s.Selected != nil {
		e := *s.Selected
		out.Selected = &e
	}
	if s.Draft != nil {
		d := *s.Draft
		out.Draft = &d
	}
	return out
}
