// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

// Package sec provides cryptographic primitives and identity claim types.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, bearer
// token generation, role hierarchy) from the domain logic. It is injected
// into the application layer via small interfaces so that services never
// depend on a concrete crypto implementation.
package sec

// AuthClaims is the resolved identity attached to an authenticated request.
//
// # Resolution
//
// A bearer token presented in the Authorization header is resolved — via the
// Redis cache or a PostgreSQL lookup — into these claims exactly once per
// request by the authentication middleware. Downstream handlers receive the
// claims through the request context and pass them to services explicitly.
type AuthClaims struct {
	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// IsAdmin reports whether the claims carry the administrator role.
func (c *AuthClaims) IsAdmin() bool {
	return UserRole(c.Role) == RoleAdmin
}
