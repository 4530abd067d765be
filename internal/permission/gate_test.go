package permission

import (
	"os"
	"path/filepath"
	"testing"

	"employee-directory/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPolicy = `
roles:
  admin: ["*:*"]
  manager:
    - "EXPORT:Contractor list"
    - "EDIT:Employee List"
  auditor: ["export:*"]
employees:
  E42: ["EDIT:Employee List"]
`

func TestEvaluate(t *testing.T) {
	p, err := ParsePolicy([]byte(testPolicy))
	require.NoError(t, err)

	testCases := []struct {
		name string
		id   session.Identity
		want Capabilities
	}{
		{"admin", session.Identity{Role: "admin"}, Capabilities{true, true, true}},
		{"manager", session.Identity{Role: "manager"}, Capabilities{true, true, true}},
		{"auditor exports only", session.Identity{Role: "auditor"}, Capabilities{true, true, false}},
		{"unknown role", session.Identity{Role: "guest"}, Capabilities{}},
		{"employee grant", session.Identity{Role: "guest", EmployeeTag: "E42"}, Capabilities{Edit: true}},
		{"empty identity", session.Identity{}, Capabilities{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Evaluate(p, tc.id))
		})
	}
}

func TestEvaluateIsNotCached(t *testing.T) {
	allowed := true
	g := GateFunc(func(string, string, session.Identity) bool { return allowed })

	assert.True(t, Evaluate(g, session.Identity{}).Edit)
	allowed = false
	assert.False(t, Evaluate(g, session.Identity{}).Edit)
}

func TestCheckNilGateDenies(t *testing.T) {
	assert.False(t, Check(nil, CapEdit, session.Identity{Role: "admin"}))
	assert.True(t, Check(AllowAll, CapEdit, session.Identity{}))
	assert.False(t, Check(DenyAll, CapExportPDF, session.Identity{}))
}

func TestCapabilitiesCanExport(t *testing.T) {
	assert.False(t, Capabilities{Edit: true}.CanExport())
	assert.True(t, Capabilities{ExportSpreadsheet: true}.CanExport())
}

func TestParsePolicyRejectsMalformedGrant(t *testing.T) {
	_, err := ParsePolicy([]byte("roles:\n  admin: [\"EXPORT\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed grant")

	_, err = ParsePolicy([]byte("roles: [oops"))
	assert.Error(t, err)
}

func TestLoadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPolicy), 0o644))

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.True(t, p.Allowed(ActionExport, ResourceContractorList, session.Identity{Role: "manager"}))

	_, err = LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNilPolicyDenies(t *testing.T) {
	var p *Policy
	assert.False(t, p.Allowed(ActionEdit, ResourceEmployeeList, session.Identity{Role: "admin"}))
}
