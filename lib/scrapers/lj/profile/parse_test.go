package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

const sampleProfileHTML = `<html><head><script>
Site.remote = {"username": "testuser", "number_of_posts": "358", "is_personal": 1};
</script></head><body>
<div class="b-details-journal">Journal created: on  5 January 2011&nbsp;(#33401138)</div>
<div class="b-details-updated">Updated <span class="tooltip" title='18 hours ago'>11 November 2025</span></div>
</body></html>`

func TestParseProfile(t *testing.T) {
	parsed, err := ParseProfile([]byte(sampleProfileHTML), testNow)
	require.NoError(t, err)
	require.Equal(t, 358, parsed.PostCount)
	require.Equal(t, 2011, parsed.CreatedYear)
	require.Equal(t, 1, parsed.CreatedMonth)
	require.Equal(t, 2025, parsed.UpdatedYear)
	require.Equal(t, 11, parsed.UpdatedMonth)
}

func TestParseProfileStatsFallback(t *testing.T) {
	// no Site.remote blob, count comes from the statistics block
	html := `<html><body>
<div class="b-profile-stat-item b-profile-stat-entrycount">
  <div class="b-profile-stat-value">42</div>
  <div class="b-profile-stat-title">Journal entries</div>
</div>
<div>Journal created: on  17 March 2015&nbsp;(#1)</div>
</body></html>`
	parsed, err := ParseProfile([]byte(html), testNow)
	require.NoError(t, err)
	require.Equal(t, 42, parsed.PostCount)
	require.Equal(t, 2015, parsed.CreatedYear)
	require.Equal(t, 3, parsed.CreatedMonth)
}

func TestParseProfileNoPostCount(t *testing.T) {
	html := `<html><body><div>Journal created: on  5 January 2011</div></body></html>`
	_, err := ParseProfile([]byte(html), testNow)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Could not extract post count")
}

func TestParseProfileLocalizedDates(t *testing.T) {
	testCases := []struct {
		name          string
		created       string
		expectedYear  int
		expectedMonth int
	}{
		{name: "russian", created: "on  23 августа 2009", expectedYear: 2009, expectedMonth: 8},
		{name: "german", created: "on  1 Dezember 2012", expectedYear: 2012, expectedMonth: 12},
		{name: "french", created: "on  14 juillet 2018", expectedYear: 2018, expectedMonth: 7},
		{name: "spanish", created: "on  2 enero 2020", expectedYear: 2020, expectedMonth: 1},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			html := `<html><body>
<script>Site.remote = {"number_of_posts": "10"};</script>
<div>Journal created: ` + c.created + `&nbsp;(#1)</div>
</body></html>`
			parsed, err := ParseProfile([]byte(html), testNow)
			require.NoError(t, err)
			require.Equal(t, c.expectedYear, parsed.CreatedYear)
			require.Equal(t, c.expectedMonth, parsed.CreatedMonth)
		})
	}
}

func TestParseProfileUnknownCreationMonth(t *testing.T) {
	html := `<html><body>
<script>Site.remote = {"number_of_posts": "10"};</script>
<div>Journal created: on  5 Bananuary 2011</div>
</body></html>`
	_, err := ParseProfile([]byte(html), testNow)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown month name")
}

func TestParseProfileMissingCreationDate(t *testing.T) {
	html := `<html><body>
<script>Site.remote = {"number_of_posts": "10"};</script>
</body></html>`
	_, err := ParseProfile([]byte(html), testNow)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Could not find journal creation date")
}

func TestParseProfileUpdateDateFallsBackToNow(t *testing.T) {
	// no update tooltip anywhere, caller's clock bounds the range
	html := `<html><body>
<script>Site.remote = {"number_of_posts": "10"};</script>
<div>Journal created: on  5 January 2011</div>
</body></html>`
	parsed, err := ParseProfile([]byte(html), testNow)
	require.NoError(t, err)
	require.Equal(t, 2025, parsed.UpdatedYear)
	require.Equal(t, 11, parsed.UpdatedMonth)
}

func TestMonthNumber(t *testing.T) {
	testCases := []struct {
		name     string
		expected int
		known    bool
	}{
		{name: "January", expected: 1, known: true},
		{name: "AUGUST", expected: 8, known: true},
		{name: "мая", expected: 5, known: true},
		{name: "Mai", expected: 5, known: true},
		{name: "décembre", expected: 12, known: true},
		{name: "noviembre", expected: 11, known: true},
		{name: "Smarch", known: false},
	}
	for _, c := range testCases {
		n, ok := MonthNumber(c.name)
		require.Equal(t, c.known, ok, c.name)
		if c.known {
			require.Equal(t, c.expected, n, c.name)
		}
	}
}
