package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrUnknownField = errors.New("domain: unknown draft field")

// Draft field names, as sent on the wire.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
	FieldPassword    = "password"
)

// EditDraft is the in-progress copy of an employee's editable fields.
// Password is write-only and never seeded from server data.
type EditDraft struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password"`
}

func NewEditDraft(e Employee) EditDraft {
	return EditDraft{
		Username:    e.Username,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
	}
}

// Set assigns a single field by its wire name.
func (d *EditDraft) Set(name, value string) error {
	switch name {
	case FieldUsername:
		d.Username = value
	case FieldEmail:
		d.Email = value
	case FieldPhoneNumber:
		d.PhoneNumber = value
	case FieldPassword:
		d.Password = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Get reads a single field by its wire name.
func (d EditDraft) Get(name string) (string, error) {
	switch name {
	case FieldUsername:
		return d.Username, nil
	case FieldEmail:
		return d.Email, nil
	case FieldPhoneNumber:
		return d.PhoneNumber, nil
	case FieldPassword:
		return d.Password, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Payload builds the update body for the employee identified by tag.
func (d EditDraft) Payload(tag string) UpdateRequest {
	return UpdateRequest{
		EmployeesTag: tag,
		Username:     d.Username,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		Password:     d.Password,
	}
}

// Apply returns e with the draft's visible fields. The password never lands
// on a record.
func (d EditDraft) Apply(e Employee) Employee {
	e.Username = d.Username
	e.Email = d.Email
	e.PhoneNumber = d.PhoneNumber
	return e
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDraft checks the draft before it is offered for saving. The store
// does not call it; it is meant for input forms.
func ValidateDraft(d EditDraft) error {
	return validate.Struct(d)
}

// UpdateRequest is the PUT body of the update endpoint. An empty password
// means "unchanged" and is still sent.
type UpdateRequest struct {
	EmployeesTag string `json:"employees_tag"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Password     string `json:"password"`
}
