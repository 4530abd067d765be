package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTag      = errors.New("domain: employee tag is empty")
	ErrUnknownColumn = errors.New("domain: unknown column")
)

// Employee is one row of the directory as the POS endpoint returns it.
// Field order matches the wire key order and the exported column order.
type Employee struct {
	EmployeeTag string `json:"employee_tag"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Validate reports records that cannot be rendered or targeted by an update.
func (e Employee) Validate() error {
	if strings.TrimSpace(e.EmployeeTag) == "" {
		return ErrEmptyTag
	}
	return nil
}

// Columns are the wire keys in declaration order.
var Columns = []string{"employee_tag", "username", "email", "phoneNumber"}

// Values returns the field values in Columns order.
func (e Employee) Values() []string {
	return []string{e.EmployeeTag, e.Username, e.Email, e.PhoneNumber}
}

// Pick returns the requested columns by wire key, for compact listings.
func (e Employee) Pick(keys ...string) (map[string]string, error) {
	vals := e.Values()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		i := columnIndex(k)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, k)
		}
		out[k] = vals[i]
	}
	return out, nil
}

func columnIndex(key string) int {
	for i, c := range Columns {
		if c == key {
			return i
		}
	}
	return -1
}
