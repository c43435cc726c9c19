package posts

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"ljexport/lib/archive"
	"ljexport/lib/scrapers/lj/core"
)

// all fields come in as strings so that missing elements and
// malformed numbers report as distinct failures
type wireEntry struct {
	ItemID       *string `xml:"itemid"`
	JItemID      *string `xml:"jitemid"`
	EventTime    *string `xml:"eventtime"`
	LogTime      *string `xml:"logtime"`
	Subject      *string `xml:"subject"`
	Event        *string `xml:"event"`
	Security     *string `xml:"security"`
	AllowMask    *string `xml:"allowmask"`
	CurrentMood  *string `xml:"current_mood"`
	CurrentMusic *string `xml:"current_music"`
}

type wireJournal struct {
	Entries []wireEntry `xml:"entry"`
}

func requireText(field string, value *string) (string, error) {
	if value == nil {
		return "", &core.ParsingError{Message: "Missing required field: " + field}
	}
	return *value, nil
}

func requireInt(field string, value *string) (int, error) {
	text, err := requireText(field, value)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &core.ParsingError{Message: fmt.Sprintf("Invalid %s value: %q", field, text)}
	}
	return n, nil
}

// entry-scoped variants carry the itemid so a bad entry in a large
// month can be found
func entryText(field string, itemid int, value *string) (string, error) {
	if value == nil {
		return "", &core.ParsingError{
			Message: fmt.Sprintf("Missing required field: %s (itemid %d)", field, itemid),
		}
	}
	return *value, nil
}

func entryInt(field string, itemid int, value *string) (int, error) {
	text, err := entryText(field, itemid, value)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &core.ParsingError{
			Message: fmt.Sprintf("Invalid %s value: %q (itemid %d)", field, text, itemid),
		}
	}
	return n, nil
}

func optionalText(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

// ParsePosts decodes one month's worth of entries. A malformed
// document or an entry missing a required field fails the whole
// batch; the month can be retried as a unit.
func ParsePosts(data []byte) ([]archive.Post, error) {
	var journal wireJournal
	err := xml.Unmarshal(data, &journal)
	if err != nil {
		return nil, &core.ParsingError{Message: "Failed to parse XML", Err: err}
	}

	parsed := []archive.Post{}
	for _, entry := range journal.Entries {
		itemid, err := requireInt("itemid", entry.ItemID)
		if err != nil {
			return nil, err
		}
		eventtime, err := entryText("eventtime", itemid, entry.EventTime)
		if err != nil {
			return nil, err
		}
		logtime, err := entryText("logtime", itemid, entry.LogTime)
		if err != nil {
			return nil, err
		}
		event, err := entryText("event", itemid, entry.Event)
		if err != nil {
			return nil, err
		}
		security, err := entryText("security", itemid, entry.Security)
		if err != nil {
			return nil, err
		}

		var jitemid *int
		if entry.JItemID != nil {
			n, err := entryInt("jitemid", itemid, entry.JItemID)
			if err != nil {
				return nil, err
			}
			jitemid = &n
		}
		allowmask := 0
		if entry.AllowMask != nil {
			allowmask, err = entryInt("allowmask", itemid, entry.AllowMask)
			if err != nil {
				return nil, err
			}
		}

		post, err := archive.NewPost(archive.Post{
			ItemID:       itemid,
			JItemID:      jitemid,
			EventTime:    eventtime,
			LogTime:      logtime,
			Subject:      optionalText(entry.Subject),
			Event:        event,
			Security:     archive.Security(security),
			AllowMask:    allowmask,
			CurrentMood:  optionalText(entry.CurrentMood),
			CurrentMusic: optionalText(entry.CurrentMusic),
		})
		if err != nil {
			return nil, &core.ParsingError{Message: "invalid entry", Err: err}
		}
		parsed = append(parsed, post)
	}
	return parsed, nil
}
