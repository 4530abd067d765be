// Package permission answers capability questions for an identity.
//
// Decisions are never cached: callers evaluate the gate each time they render
// or act, so a changed identity or policy takes effect immediately.
package permission

import "employee-directory/internal/session"

// Gate decides whether id may perform action on resource.
type Gate interface {
	Allowed(action, resource string, id session.Identity) bool
}

// GateFunc adapts a plain function to Gate.
type GateFunc func(action, resource string, id session.Identity) bool

func (f GateFunc) Allowed(action, resource string, id session.Identity) bool {
	return f(action, resource, id)
}

var (
	AllowAll Gate = GateFunc(func(string, string, session.Identity) bool { return true })
	DenyAll  Gate = GateFunc(func(string, string, session.Identity) bool { return false })
)

// Capability is an (action, resource) pair the directory asks about.
type Capability struct {
	Action   string
	Resource string
}

const (
	ActionExport = "EXPORT"
	ActionEdit   = "EDIT"

	ResourceContractorList = "Contractor list"
	ResourceEmployeeList   = "Employee List"
)

// Both export formats are granted by the same privilege.
var (
	CapExportPDF         = Capability{Action: ActionExport, Resource: ResourceContractorList}
	CapExportSpreadsheet = Capability{Action: ActionExport, Resource: ResourceContractorList}
	CapEdit              = Capability{Action: ActionEdit, Resource: ResourceEmployeeList}
)

// Check evaluates a single capability. A nil gate denies.
func Check(g Gate, c Capability, id session.Identity) bool {
	if g == nil {
		return false
	}
	return g.Allowed(c.Action, c.Resource, id)
}

// Capabilities is the set of decisions the directory screen needs.
type Capabilities struct {
	ExportPDF         bool
	ExportSpreadsheet bool
	Edit              bool
}

// CanExport reports whether any export action is available.
func (c Capabilities) CanExport() bool {
	return c.ExportPDF || c.ExportSpreadsheet
}

func Evaluate(g Gate, id session.Identity) Capabilities {
	return Capabilities{
		ExportPDF:         Check(g, CapExportPDF, id),
		ExportSpreadsheet: Check(g, CapExportSpreadsheet, id),
		Edit:              Check(g, CapEdit, id),
	}
}
