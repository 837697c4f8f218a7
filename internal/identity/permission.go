package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Permission is a tagged action/resource pair. The wire and storage form is
// the "action:resource" string (e.g. "create:client"); comparison is
// case-insensitive.
type Permission struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

var ErrInvalidPermission = errors.New("permission must be in action:resource form")

// ParsePermission parses the "action:resource" string form.
func ParsePermission(raw string) (Permission, error) {
	action, resource, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return Permission{}, ErrInvalidPermission
	}
	action = strings.TrimSpace(action)
	resource = strings.TrimSpace(resource)
	if action == "" || resource == "" {
		return Permission{}, ErrInvalidPermission
	}
	return Permission{Action: action, Resource: resource}, nil
}

// MustParsePermission is ParsePermission for route tables built at startup.
func MustParsePermission(raw string) Permission {
	p, err := ParsePermission(raw)
	if err != nil {
		panic(fmt.Sprintf("identity: %v: %q", err, raw))
	}
	return p
}

func (p Permission) String() string {
	return strings.ToLower(p.Action) + ":" + strings.ToLower(p.Resource)
}

// Normalize returns the uppercase storage form.
func (p Permission) Normalize() Permission {
	return Permission{
		Action:   strings.ToUpper(strings.TrimSpace(p.Action)),
		Resource: strings.ToUpper(strings.TrimSpace(p.Resource)),
	}
}

func (p Permission) Equal(other Permission) bool {
	return strings.EqualFold(p.Action, other.Action) &&
		strings.EqualFold(p.Resource, other.Resource)
}
