package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditDraftClearsPassword(t *testing.T) {
	e := Employee{EmployeeTag: "E1", Username: "Bob", Email: "b@x.com", PhoneNumber: "123"}
	d := NewEditDraft(e)

	assert.Equal(t, EditDraft{Username: "Bob", Email: "b@x.com", PhoneNumber: "123"}, d)
	assert.Empty(t, d.Password)
}

func TestEditDraftSetGet(t *testing.T) {
	var d EditDraft
	for _, name := range []string{FieldUsername, FieldEmail, FieldPhoneNumber, FieldPassword} {
		require.NoError(t, d.Set(name, name+"-value"))
		got, err := d.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name+"-value", got)
	}

	err := d.Set("employee_tag", "E2")
	assert.True(t, errors.Is(err, ErrUnknownField))
	_, err = d.Get("nope")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestEditDraftPayload(t *testing.T) {
	d := EditDraft{Username: "Bobby", Email: "bobby@x.com", PhoneNumber: "456"}

	b, err := json.Marshal(d.Payload("E1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"employees_tag":"E1","username":"Bobby","email":"bobby@x.com","phoneNumber":"456","password":""}`, string(b))
}

func TestEditDraftApplyKeepsTag(t *testing.T) {
	e := Employee{EmployeeTag: "E1", Username: "Bob", Email: "b@x.com", PhoneNumber: "123"}
	d := EditDraft{Username: "Bobby", Email: "bobby@x.com", PhoneNumber: "456", Password: "secret"}

	got := d.Apply(e)
	assert.Equal(t, Employee{EmployeeTag: "E1", Username: "Bobby", Email: "bobby@x.com", PhoneNumber: "456"}, got)
}

func TestValidateDraft(t *testing.T) {
	testCases := []struct {
		name    string
		draft   EditDraft
		wantErr bool
	}{
		{"valid", EditDraft{Username: "Bob", Email: "b@x.com", PhoneNumber: "123"}, false},
		{"valid with password", EditDraft{Username: "Bob", Email: "b@x.com", PhoneNumber: "123", Password: "x"}, false},
		{"missing username", EditDraft{Email: "b@x.com", PhoneNumber: "123"}, true},
		{"bad email", EditDraft{Username: "Bob", Email: "not-an-email", PhoneNumber: "123"}, true},
		{"missing phone", EditDraft{Username: "Bob", Email: "b@x.com"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDraft(tc.draft)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
