package archive

import "fmt"

// CommentStateDeleted is the only comment state kept in the archive;
// the wire marker "D" is normalized to it by the parser.
const CommentStateDeleted = "deleted"

// Comment is one comment on a post, linked to it through JItemID.
// PosterUsername starts out nil and is filled in by username
// resolution after the usermap has been fetched.
type Comment struct {
	ID             int     `yaml:"id" json:"id" xml:"id"`
	JItemID        int     `yaml:"jitemid" json:"jitemid" xml:"jitemid"`
	PosterID       *int    `yaml:"posterid" json:"posterid" xml:"posterid"`
	PosterUsername *string `yaml:"poster_username" json:"poster_username" xml:"poster_username"`
	ParentID       *int    `yaml:"parentid" json:"parentid" xml:"parentid"`
	Date           string  `yaml:"date" json:"date" xml:"date"`
	Subject        *string `yaml:"subject" json:"subject" xml:"subject"`
	Body           *string `yaml:"body" json:"body" xml:"body"`
	State          *string `yaml:"state" json:"state" xml:"state"`
}

// NewComment validates a comment parsed off the wire.
func NewComment(c Comment) (Comment, error) {
	if c.State != nil && *c.State != CommentStateDeleted {
		return Comment{}, fmt.Errorf("comment %d: invalid state %q", c.ID, *c.State)
	}
	return c, nil
}
