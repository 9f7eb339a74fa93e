// Package authz implements the access-control decision procedure. It is a pure
// predicate over already-loaded data: callers resolve the target resource first
// (a lookup miss is not found, never forbidden) and consult Decide before any
// mutation.
package authz

import "github.com/openblog/blog-api/internal/core/domain"

// Action is a requested operation on a resource.
type Action string

const (
	ActionRead     Action = "read"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionModerate Action = "moderate"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Input carries everything the decision procedure looks at. OwnerID is the
// user_id recorded on the target resource; PublicResource marks resources that
// are readable without identity (posts, categories, approved comments).
type Input struct {
	CallerRole     string
	CallerID       string
	OwnerID        string
	Action         Action
	PublicResource bool
}

// Decide evaluates the policy table in precedence order:
//
//  1. admin: allowed, any action
//  2. read of a public resource: allowed, identity irrelevant
//  3. moderate: allowed for moderators (admins already passed rule 1)
//  4. owner: allowed to read, update, and delete what they own
//  5. everything else: denied
func Decide(in Input) Decision {
	if in.CallerRole == domain.RoleAdmin {
		return Allow
	}
	if in.Action == ActionRead && in.PublicResource {
		return Allow
	}
	if in.Action == ActionModerate {
		if in.CallerRole == domain.RoleModerator {
			return Allow
		}
		return Deny
	}
	if in.CallerID != "" && in.CallerID == in.OwnerID {
		switch in.Action {
		case ActionRead, ActionUpdate, ActionDelete:
			return Allow
		}
	}
	return Deny
}

// CanModerate reports whether role may toggle comment visibility.
func CanModerate(role string) bool {
	return role == domain.RoleAdmin || role == domain.RoleModerator
}
