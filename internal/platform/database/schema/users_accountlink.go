// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package schema

// UserAccountLinkTable represents the 'users.accountlink' table.
// It binds exactly one identity to at most one profile (nullable until the
// profile is created).
type UserAccountLinkTable struct {
	Table      string
	ID         string
	IdentityID string
	ProfileID  string
}

// UserAccountLink is the schema definition for users.accountlink
var UserAccountLink = UserAccountLinkTable{
	Table:      "users.accountlink",
	ID:         "id",
	IdentityID: "identityid",
	ProfileID:  "profileid",
}

// Columns returns all standard column names
func (t UserAccountLinkTable) Columns() []string {
	return []string{t.ID, t.IdentityID, t.ProfileID}
}
