package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func intptr(n int) *int {
	return &n
}

func TestValidateCleanArchive(t *testing.T) {
	e := New("testuser", time.Now())
	e.Posts = []Post{{ItemID: 116992, JItemID: intptr(457), Security: SecurityPublic}}
	e.Usermap = []User{{UserID: 123, Username: "friend1"}}
	e.Comments = []Comment{
		{ID: 10, JItemID: 457, PosterID: intptr(123), Date: "2023-01-15T10:00:00Z"},
	}

	require.Empty(t, Validate(e))
}

func TestValidateFindsInconsistencies(t *testing.T) {
	e := New("testuser", time.Now())
	e.Posts = []Post{
		{ItemID: 116992, JItemID: intptr(457), Security: SecurityPublic},
		{ItemID: 116992, JItemID: intptr(457), Security: SecurityPublic},
	}
	e.Comments = []Comment{
		// jitemid with no matching post, poster not in usermap
		{ID: 10, JItemID: 900, PosterID: intptr(55), Date: "2023-01-15T10:00:00Z"},
		// parent that doesn't exist
		{ID: 11, JItemID: 457, ParentID: intptr(999), Date: "2023-01-15T11:00:00Z"},
	}

	findings := Validate(e)
	require.Contains(t, findings, "Duplicate itemids found in posts")
	require.Contains(t, findings, "Duplicate jitemids found in posts")
	require.Contains(t, findings, "Comment 10: jitemid 900 does not match any post")
	require.Contains(t, findings, "Comment 10: posterid 55 not in usermap")
	require.Contains(t, findings, "Comment 11: parentid 999 does not exist")
}

func TestSecurityBreakdown(t *testing.T) {
	posts := []Post{
		{ItemID: 1, Security: SecurityPublic},
		{ItemID: 2, Security: SecurityPublic},
		{ItemID: 3, Security: SecurityPrivate},
		{ItemID: 4, Security: SecurityFriends},
	}

	breakdown := SecurityBreakdown(posts)
	require.Equal(t, map[Security]int{
		SecurityPublic:  2,
		SecurityPrivate: 1,
		SecurityFriends: 1,
	}, breakdown)
}

func TestUpdateCounts(t *testing.T) {
	e := New("testuser", time.Now())
	e.Posts = make([]Post, 3)
	e.Comments = make([]Comment, 2)
	e.Inbox = make([]InboxMessage, 1)

	e.UpdateCounts()
	require.Equal(t, 3, e.Metadata.PostCount)
	require.Equal(t, 2, e.Metadata.CommentCount)
	require.Equal(t, 1, e.Metadata.InboxCount)
	require.Equal(t, "testuser", e.Metadata.User)
}
