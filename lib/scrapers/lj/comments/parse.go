package comments

import (
	"encoding/xml"
	"log/slog"
	"strconv"

	"ljexport/lib/archive"
	"ljexport/lib/scrapers/lj/core"
)

type wireMeta struct {
	MaxID   *string `xml:"maxid"`
	Usermap []struct {
		ID   *string `xml:"id,attr"`
		User *string `xml:"user,attr"`
	} `xml:"usermap"`
}

// ParseMeta decodes the comment metadata response into the highest
// comment id and the usermap. A usable maxid is mandatory; usermap
// entries missing either attribute, or with a non-numeric id, are
// skipped with a warning so one bad entry cannot sink the run.
func ParseMeta(data []byte) (int, []archive.User, error) {
	var meta wireMeta
	err := xml.Unmarshal(data, &meta)
	if err != nil {
		return 0, nil, &core.ParsingError{Message: "Failed to parse XML", Err: err}
	}

	if meta.MaxID == nil {
		return 0, nil, &core.ParsingError{Message: "Missing required field: maxid"}
	}
	maxid, err := strconv.Atoi(*meta.MaxID)
	if err != nil {
		return 0, nil, &core.ParsingError{Message: "Invalid maxid value: " + *meta.MaxID}
	}

	usermap := []archive.User{}
	for _, entry := range meta.Usermap {
		if entry.ID == nil || entry.User == nil {
			slog.Warn("skipping usermap entry with missing attributes")
			continue
		}
		userid, err := strconv.Atoi(*entry.ID)
		if err != nil {
			slog.Warn("skipping usermap entry with non-numeric id", "id", *entry.ID)
			continue
		}
		usermap = append(usermap, archive.User{
			UserID:   userid,
			Username: *entry.User,
		})
	}
	return maxid, usermap, nil
}

type wireComment struct {
	ID       *string `xml:"id,attr"`
	JItemID  *string `xml:"jitemid,attr"`
	PosterID *string `xml:"posterid,attr"`
	ParentID *string `xml:"parentid,attr"`
	State    *string `xml:"state,attr"`
	Date     *string `xml:"date"`
	Subject  *string `xml:"subject"`
	Body     *string `xml:"body"`
}

type wireCommentBody struct {
	Comments []wireComment `xml:"comment"`
}

func requireAttr(field string, value *string) (int, error) {
	if value == nil {
		return 0, &core.ParsingError{Message: "Missing required field: " + field}
	}
	n, err := strconv.Atoi(*value)
	if err != nil {
		return 0, &core.ParsingError{Message: "Invalid " + field + " value: " + *value}
	}
	return n, nil
}

func optionalAttr(value *string) (*int, error) {
	if value == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*value)
	if err != nil {
		return nil, &core.ParsingError{Message: "Invalid attribute value: " + *value}
	}
	return &n, nil
}

func optionalText(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}

// ParseComments decodes one comment_body batch. Comments carry their
// linking ids in attributes; a comment missing id, jitemid or date is
// a batch-level failure, unlike the per-entry tolerance of the
// usermap.
func ParseComments(data []byte) ([]archive.Comment, error) {
	var body wireCommentBody
	err := xml.Unmarshal(data, &body)
	if err != nil {
		return nil, &core.ParsingError{Message: "Failed to parse XML", Err: err}
	}

	parsed := []archive.Comment{}
	for _, wire := range body.Comments {
		id, err := requireAttr("id", wire.ID)
		if err != nil {
			return nil, err
		}
		jitemid, err := requireAttr("jitemid", wire.JItemID)
		if err != nil {
			return nil, err
		}
		if wire.Date == nil {
			return nil, &core.ParsingError{Message: "Missing required field: date"}
		}
		posterid, err := optionalAttr(wire.PosterID)
		if err != nil {
			return nil, err
		}
		parentid, err := optionalAttr(wire.ParentID)
		if err != nil {
			return nil, err
		}

		var state *string
		if wire.State != nil && *wire.State == "D" {
			deleted := archive.CommentStateDeleted
			state = &deleted
		}

		comment, err := archive.NewComment(archive.Comment{
			ID:       id,
			JItemID:  jitemid,
			PosterID: posterid,
			ParentID: parentid,
			Date:     *wire.Date,
			Subject:  optionalText(wire.Subject),
			Body:     optionalText(wire.Body),
			State:    state,
		})
		if err != nil {
			return nil, &core.ParsingError{Message: "invalid comment", Err: err}
		}
		parsed = append(parsed, comment)
	}
	return parsed, nil
}
