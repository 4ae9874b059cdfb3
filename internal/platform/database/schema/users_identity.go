// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

// Package schema centralizes the table and column names of the Inkwell
// database so that repository queries never embed raw string literals.
package schema

// UserIdentityTable represents the 'users.identity' table
type UserIdentityTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     string
	JoinedAt     string
}

// UserIdentity is the schema definition for users.identity
var UserIdentity = UserIdentityTable{
	Table:        "users.identity",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "passwordhash",
	Role:         "role",
	IsActive:     "isactive",
	JoinedAt:     "joinedat",
}

// Columns returns all standard column names
func (t UserIdentityTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.Role, t.IsActive, t.JoinedAt,
	}
}
