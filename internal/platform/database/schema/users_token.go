// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package schema

// UserTokenTable represents the 'users.token' table.
// One row per identity: issuance is an idempotent get-or-create, the key
// never rotates once issued.
type UserTokenTable struct {
	Table      string
	Key        string
	IdentityID string
	CreatedAt  string
}

// UserToken is the schema definition for users.token
var UserToken = UserTokenTable{
	Table:      "users.token",
	Key:        "key",
	IdentityID: "identityid",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t UserTokenTable) Columns() []string {
	return []string{t.Key, t.IdentityID, t.CreatedAt}
}
