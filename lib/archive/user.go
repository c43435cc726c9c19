package archive

// User is one usermap entry from the comment metadata endpoint.
type User struct {
	UserID   int    `yaml:"userid" json:"userid" xml:"userid,attr"`
	Username string `yaml:"username" json:"username" xml:"username,attr"`
}

// UserLookup builds a userid → username map from the usermap in
// declaration order; later entries shadow earlier ones with the same
// id, which mirrors how the upstream feed behaves.
func UserLookup(usermap []User) map[int]string {
	lookup := make(map[int]string, len(usermap))
	for _, u := range usermap {
		lookup[u.UserID] = u.Username
	}
	return lookup
}
