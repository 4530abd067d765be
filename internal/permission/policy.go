package permission

import (
	"fmt"
	"os"
	"strings"

	"employee-directory/internal/session"

	"gopkg.in/yaml.v3"
)

// Policy grants privileges by role and by employee tag. Grants are written
// as "ACTION:resource"; either side may be "*".
//
//	roles:
//	  admin: ["*:*"]
//	  manager: ["EXPORT:Contractor list", "EDIT:Employee List"]
//	employees:
//	  E42: ["EXPORT:*"]
type Policy struct {
	Roles     map[string][]string `yaml:"roles"`
	Employees map[string][]string `yaml:"employees"`
}

func ParsePolicy(b []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("permission: parse policy: %w", err)
	}
	for who, grants := range p.Roles {
		if err := checkGrants(grants); err != nil {
			return nil, fmt.Errorf("permission: role %q: %w", who, err)
		}
	}
	for who, grants := range p.Employees {
		if err := checkGrants(grants); err != nil {
			return nil, fmt.Errorf("permission: employee %q: %w", who, err)
		}
	}
	return &p, nil
}

func LoadPolicy(path string) (*Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("permission: read policy: %w", err)
	}
	return ParsePolicy(b)
}

func checkGrants(grants []string) error {
	for _, g := range grants {
		if _, _, ok := splitGrant(g); !ok {
			return fmt.Errorf("malformed grant %q (want ACTION:resource)", g)
		}
	}
	return nil
}

func splitGrant(g string) (action, resource string, ok bool) {
	action, resource, ok = strings.Cut(g, ":")
	action = strings.TrimSpace(action)
	resource = strings.TrimSpace(resource)
	return action, resource, ok && action != "" && resource != ""
}

// Allowed implements Gate.
func (p *Policy) Allowed(action, resource string, id session.Identity) bool {
	if p == nil {
		return false
	}
	if id.Role != "" && matchAny(p.Roles[id.Role], action, resource) {
		return true
	}
	if id.EmployeeTag != "" && matchAny(p.Employees[id.EmployeeTag], action, resource) {
		return true
	}
	return false
}

func matchAny(grants []string, action, resource string) bool {
	for _, g := range grants {
		a, r, ok := splitGrant(g)
		if !ok {
			continue
		}
		if (a == "*" || strings.EqualFold(a, action)) && (r == "*" || strings.EqualFold(r, resource)) {
			return true
		}
	}
	return false
}
