package gate

import "errors"

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNoProfileDefined = errors.New("no profile defined for role")
)

// Gate maps role names to profiles and answers permission checks.
type Gate struct {
	profiles map[string]Profile
}

// NewGate creates an empty Gate ready to register profiles.
func NewGate() *Gate {
	return &Gate{profiles: make(map[string]Profile)}
}

// Register adds a profile for a role name, overwriting any existing one.
func (g *Gate) Register(role string, p Profile) {
	g.profiles[role] = p
}

// Authorize checks whether the role grants the permission. Returns
// ErrNoProfileDefined for unknown roles and ErrUnauthorized for denied
// permissions.
func (g *Gate) Authorize(role string, perm Permission) error {
	p, ok := g.profiles[role]
	if !ok {
		return ErrNoProfileDefined
	}
	if !p.HasPermission(perm) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(role string, perm Permission) bool {
	return g.Authorize(role, perm) == nil
}
