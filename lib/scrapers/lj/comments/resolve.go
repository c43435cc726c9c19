package comments

import (
	"fmt"

	"ljexport/lib/archive"
)

// ResolveUsernames rewrites every comment's poster username from the
// usermap. Poster ids the map doesn't know get a recognizable
// placeholder; anonymous comments (no posterid) stay unresolved.
func ResolveUsernames(comments []archive.Comment, usermap []archive.User) {
	lookup := archive.UserLookup(usermap)
	for i := range comments {
		if comments[i].PosterID == nil {
			continue
		}
		username, ok := lookup[*comments[i].PosterID]
		if !ok {
			username = fmt.Sprintf("[unknown-%d]", *comments[i].PosterID)
		}
		comments[i].PosterUsername = &username
	}
}
