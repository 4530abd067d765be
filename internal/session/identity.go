// Package session describes who is using the directory. The values are
// supplied from outside (configuration or a login token) and are read-only
// to the rest of the program.
package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the acting user: the bearer token sent to the POS endpoints
// plus the role and tag permission checks are keyed by.
type Identity struct {
	Token       string
	Role        string
	EmployeeTag string
	UserName    string
}

// Claims are the fields the login endpoint puts in its tokens.
type Claims struct {
	Role        string `json:"role"`
	EmployeeTag string `json:"employee_tag"`
	Username    string `json:"username"`
	jwt.RegisteredClaims
}

// FromToken decodes the identity fields carried in a JWT. The signature is
// not checked here; the server verifies every request. Tokens that are not
// JWTs yield an identity with only Token set.
func FromToken(token string) Identity {
	id := Identity{Token: token}
	if strings.Count(token, ".") != 2 {
		return id
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return id
	}

	id.Role = claims.Role
	id.EmployeeTag = claims.EmployeeTag
	if id.EmployeeTag == "" {
		id.EmployeeTag = claims.Subject
	}
	id.UserName = claims.Username
	return id
}

// Resolve decodes token and lets non-empty explicit values win over claims.
func Resolve(token, role, employeeTag, userName string) Identity {
	id := FromToken(token)
	if role != "" {
		id.Role = role
	}
	if employeeTag != "" {
		id.EmployeeTag = employeeTag
	}
	if userName != "" {
		id.UserName = userName
	}
	return id
}
