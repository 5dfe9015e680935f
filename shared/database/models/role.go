package models

// Role identifiers are an external contract shared with the credential
// store; the middleware only ever tests set membership on them.
const (
	RoleMod   = 1
	RoleAdmin = 2
	RoleUser  = 3
)

// PrivilegedRoles are the roles allowed to act on resources they do not own.
var PrivilegedRoles = []int{RoleMod, RoleAdmin}
