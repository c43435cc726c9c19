package archive

import "fmt"

// Validate runs the post-hoc consistency checks over a finished
// archive: duplicate ids, comments pointing at posts or parents that
// aren't there, posters missing from the usermap. The result is a
// list of advisory findings, not an error; upstream data is allowed
// to be inconsistent and the archive is kept as downloaded.
func Validate(e *Export) []string {
	var findings []string
	findings = append(findings, validatePosts(e.Posts)...)
	findings = append(findings, validateComments(e.Comments, e.Posts, e.Usermap)...)
	return findings
}

// SecurityBreakdown counts posts per security level.
func SecurityBreakdown(posts []Post) map[Security]int {
	breakdown := map[Security]int{}
	for _, p := range posts {
		breakdown[p.Security]++
	}
	return breakdown
}

func validatePosts(posts []Post) []string {
	var findings []string

	itemids := map[int]bool{}
	jitemids := map[int]bool{}
	dupItem := false
	dupJItem := false
	for _, p := range posts {
		if itemids[p.ItemID] {
			dupItem = true
		}
		itemids[p.ItemID] = true
		if p.JItemID != nil {
			if jitemids[*p.JItemID] {
				dupJItem = true
			}
			jitemids[*p.JItemID] = true
		}
	}
	if dupItem {
		findings = append(findings, "Duplicate itemids found in posts")
	}
	if dupJItem {
		findings = append(findings, "Duplicate jitemids found in posts")
	}

	return findings
}

func validateComments(comments []Comment, posts []Post, usermap []User) []string {
	var findings []string

	postJItemIDs := map[int]bool{}
	for _, p := range posts {
		if p.JItemID != nil {
			postJItemIDs[*p.JItemID] = true
		}
	}
	commentIDs := map[int]bool{}
	for _, c := range comments {
		commentIDs[c.ID] = true
	}
	userIDs := map[int]bool{}
	for _, u := range usermap {
		userIDs[u.UserID] = true
	}

	for _, c := range comments {
		if !postJItemIDs[c.JItemID] {
			findings = append(findings, fmt.Sprintf(
				"Comment %d: jitemid %d does not match any post", c.ID, c.JItemID,
			))
		}
		if c.ParentID != nil && !commentIDs[*c.ParentID] {
			findings = append(findings, fmt.Sprintf(
				"Comment %d: parentid %d does not exist", c.ID, *c.ParentID,
			))
		}
		if c.PosterID != nil && !userIDs[*c.PosterID] {
			findings = append(findings, fmt.Sprintf(
				"Comment %d: posterid %d not in usermap", c.ID, *c.PosterID,
			))
		}
	}

	return findings
}
