package archive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveJItemID(t *testing.T) {
	testCases := []struct {
		itemid   int
		expected int
	}{
		{itemid: 116992, expected: 457},
		{itemid: 117248, expected: 458},
		{itemid: 116736, expected: 456},
		{itemid: 0, expected: 0},
		{itemid: 255, expected: 0},
		{itemid: 256, expected: 1},
	}
	for _, c := range testCases {
		require.Equal(t, c.expected, DeriveJItemID(c.itemid), "itemid %d", c.itemid)
	}
}

func TestNewPostDerivesJItemID(t *testing.T) {
	post, err := NewPost(Post{
		ItemID:    116992,
		EventTime: "2023-01-15 14:30:00",
		LogTime:   "2023-01-15 14:30:00",
		Event:     "content",
		Security:  SecurityPublic,
	})
	require.NoError(t, err)
	require.NotNil(t, post.JItemID)
	require.Equal(t, 457, *post.JItemID)
}

func TestNewPostTrustsWireJItemID(t *testing.T) {
	// a wire value disagreeing with the derivation is kept as-is
	wire := 999
	post, err := NewPost(Post{
		ItemID:    116992,
		JItemID:   &wire,
		EventTime: "2023-01-15 14:30:00",
		LogTime:   "2023-01-15 14:30:00",
		Event:     "content",
		Security:  SecurityPublic,
	})
	require.NoError(t, err)
	require.Equal(t, 999, *post.JItemID)
}

func TestNewPostRejectsUnknownSecurity(t *testing.T) {
	_, err := NewPost(Post{
		ItemID:    1,
		EventTime: "2023-01-15 14:30:00",
		LogTime:   "2023-01-15 14:30:00",
		Event:     "content",
		Security:  Security("everyone"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid security value")
}

func TestUserLookupLastWins(t *testing.T) {
	lookup := UserLookup([]User{
		{UserID: 1, Username: "first"},
		{UserID: 2, Username: "other"},
		{UserID: 1, Username: "second"},
	})
	require.Equal(t, "second", lookup[1])
	require.Equal(t, "other", lookup[2])
}
