package main

import (
	"testing"

	"employee-directory/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestChangesFields(t *testing.T) {
	c := changes{tag: "E1", email: "new@x.com", newPassword: "s3cret"}
	assert.Equal(t, map[string]string{
		domain.FieldEmail:    "new@x.com",
		domain.FieldPassword: "s3cret",
	}, c.fields())

	assert.Empty(t, changes{tag: "E1"}.fields())
}

func TestFind(t *testing.T) {
	records := []domain.Employee{{EmployeeTag: "E1"}, {EmployeeTag: "E2", Username: "Bob"}}

	e, ok := find(records, "E2")
	assert.True(t, ok)
	assert.Equal(t, "Bob", e.Username)

	_, ok = find(records, "E3")
	assert.False(t, ok)
}

func TestRunRequiresTag(t *testing.T) {
	assert.EqualError(t, run(changes{}), "missing flag: -tag")
}
