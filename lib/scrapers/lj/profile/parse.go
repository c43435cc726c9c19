package profile

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"ljexport/lib/scrapers/lj/core"
)

// Profile is the journal metadata read off the profile page, used to
// bound the posts download range.
type Profile struct {
	PostCount    int
	CreatedYear  int
	CreatedMonth int
	UpdatedYear  int
	UpdatedMonth int
}

var (
	siteRemoteRegex = regexp.MustCompile(`(?s)Site\.remote\s*=\s*(\{.*?\});`)
	entryCountRegex = regexp.MustCompile(`(?s)class="b-profile-stat-item\s+b-profile-stat-entrycount"[^>]*>.*?class="b-profile-stat-value">(\d+)</div>`)
	createdRegex    = regexp.MustCompile(`on\s+(\d+)\s+([а-яА-ЯёЁa-zA-Zäöüß]+)\s+(\d{4})`)
	updatedRegex    = regexp.MustCompile(`<span class="tooltip"[^>]*>(\d+)\s+([а-яА-ЯёЁa-zA-Zäöüß]+)\s+(\d{4})</span>`)
)

// ParseProfile extracts the post count and the creation/update dates
// from a profile page. The post count and creation date are
// mandatory; a missing or unreadable update date falls back to now.
func ParseProfile(data []byte, now time.Time) (Profile, error) {
	page := string(data)

	count, ok := postCountFromJSON(page)
	if !ok {
		count, ok = postCountFromStats(page)
	}
	if !ok {
		return Profile{}, &core.ParsingError{
			Message: "Could not extract post count from profile page",
		}
	}

	decoded := html.UnescapeString(page)
	createdYear, createdMonth, err := creationDate(decoded)
	if err != nil {
		return Profile{}, err
	}

	updatedYear, updatedMonth, ok := updateDate(decoded)
	if !ok {
		updatedYear, updatedMonth = now.Year(), int(now.Month())
	}

	return Profile{
		PostCount:    count,
		CreatedYear:  createdYear,
		CreatedMonth: createdMonth,
		UpdatedYear:  updatedYear,
		UpdatedMonth: updatedMonth,
	}, nil
}

// postCountFromJSON reads the count out of the Site.remote JSON blob
// embedded in the page scripts. The count is a string in the JSON.
func postCountFromJSON(page string) (int, bool) {
	groups := siteRemoteRegex.FindStringSubmatch(page)
	if len(groups) < 2 {
		return 0, false
	}
	var remote struct {
		NumberOfPosts string `json:"number_of_posts"`
	}
	err := json.Unmarshal([]byte(groups[1]), &remote)
	if err != nil {
		slog.Debug("failed to decode Site.remote JSON", "err", err)
		return 0, false
	}
	if remote.NumberOfPosts == "" {
		return 0, false
	}
	count, err := strconv.Atoi(remote.NumberOfPosts)
	if err != nil {
		return 0, false
	}
	return count, true
}

// postCountFromStats falls back to the rendered statistics block.
func postCountFromStats(page string) (int, bool) {
	groups := entryCountRegex.FindStringSubmatch(page)
	if len(groups) < 2 {
		return 0, false
	}
	count, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, false
	}
	return count, true
}

func creationDate(decoded string) (int, int, error) {
	groups := createdRegex.FindStringSubmatch(decoded)
	if len(groups) < 4 {
		return 0, 0, &core.ParsingError{
			Message: "Could not find journal creation date in profile",
		}
	}
	month, ok := MonthNumber(groups[2])
	if !ok {
		return 0, 0, &core.ParsingError{
			Message: fmt.Sprintf("Unknown month name %q in creation date", groups[2]),
		}
	}
	year, err := strconv.Atoi(groups[3])
	if err != nil {
		return 0, 0, &core.ParsingError{
			Message: "Invalid year in creation date: " + groups[3],
		}
	}
	return year, month, nil
}

func updateDate(decoded string) (int, int, bool) {
	groups := updatedRegex.FindStringSubmatch(decoded)
	if len(groups) < 4 {
		return 0, 0, false
	}
	month, ok := MonthNumber(groups[2])
	if !ok {
		slog.Warn("unknown month name in update date", "month", groups[2])
		return 0, 0, false
	}
	year, err := strconv.Atoi(groups[3])
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
