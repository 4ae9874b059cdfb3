// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package schema

// UserProfileTable represents the 'users.profile' table
type UserProfileTable struct {
	Table        string
	ID           string
	FirstName    string
	LastName     string
	Nickname     string
	CountryCode  string
	Sex          string
	DateOfBirth  string
	ArticleCount string
}

// UserProfile is the schema definition for users.profile
var UserProfile = UserProfileTable{
	Table:        "users.profile",
	ID:           "id",
	FirstName:    "firstname",
	LastName:     "lastname",
	Nickname:     "nickname",
	CountryCode:  "countrycode",
	Sex:          "sex",
	DateOfBirth:  "dateofbirth",
	ArticleCount: "articlecount",
}

// Columns returns all standard column names
func (t UserProfileTable) Columns() []string {
	return []string{
		t.ID, t.FirstName, t.LastName, t.Nickname, t.CountryCode,
		t.Sex, t.DateOfBirth, t.ArticleCount,
	}
}
