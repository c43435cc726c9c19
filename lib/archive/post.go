package archive

import (
	"fmt"
	"log/slog"
)

// Security is the access level of a post. The set matches what the
// export endpoint actually emits; anything else is rejected outright.
type Security string

const (
	SecurityPublic  Security = "public"
	SecurityPrivate Security = "private"
	SecurityFriends Security = "friends"
	SecurityUsemask Security = "usemask"
	SecurityCustom  Security = "custom"
)

func (s Security) Valid() bool {
	switch s {
	case SecurityPublic, SecurityPrivate, SecurityFriends, SecurityUsemask, SecurityCustom:
		return true
	}
	return false
}

// Post is one journal entry. HTML in Event is preserved verbatim.
type Post struct {
	ItemID       int      `yaml:"itemid" json:"itemid" xml:"itemid"`
	JItemID      *int     `yaml:"jitemid" json:"jitemid" xml:"jitemid"`
	EventTime    string   `yaml:"eventtime" json:"eventtime" xml:"eventtime"`
	LogTime      string   `yaml:"logtime" json:"logtime" xml:"logtime"`
	Subject      *string  `yaml:"subject" json:"subject" xml:"subject"`
	Event        string   `yaml:"event" json:"event" xml:"event"`
	Security     Security `yaml:"security" json:"security" xml:"security"`
	AllowMask    int      `yaml:"allowmask" json:"allowmask" xml:"allowmask"`
	CurrentMood  *string  `yaml:"current_mood" json:"current_mood" xml:"current_mood"`
	CurrentMusic *string  `yaml:"current_music" json:"current_music" xml:"current_music"`
}

// DeriveJItemID computes the comment-linking id from an itemid.
func DeriveJItemID(itemid int) int {
	return itemid >> 8
}

// NewPost validates and finalizes a post parsed off the wire. When the
// payload carried no jitemid it is derived from itemid; when it did,
// the wire value is trusted as-is, with an audit log entry if it
// disagrees with the derivation.
func NewPost(p Post) (Post, error) {
	if !p.Security.Valid() {
		return Post{}, fmt.Errorf("post %d: invalid security value %q", p.ItemID, p.Security)
	}
	if p.JItemID == nil {
		derived := DeriveJItemID(p.ItemID)
		p.JItemID = &derived
	} else if *p.JItemID != DeriveJItemID(p.ItemID) {
		slog.Warn(
			"post jitemid disagrees with derivation, trusting wire value",
			"itemid", p.ItemID,
			"jitemid", *p.JItemID,
			"derived", DeriveJItemID(p.ItemID),
		)
	}
	return p, nil
}
