// Package archive holds the typed records an export run accumulates
// and the aggregate document that gets serialized at the end.
package archive

import (
	"encoding/xml"
	"time"
)

// Version is the tool version recorded in every archive.
const Version = "0.1.0"

// Metadata describes the export run itself. The three counts are
// always recomputed from the collections right before serialization;
// nothing else writes them.
type Metadata struct {
	ExportDate   string `yaml:"export_date" json:"export_date" xml:"export_date"`
	User         string `yaml:"lj_user" json:"lj_user" xml:"lj_user"`
	ToolVersion  string `yaml:"tool_version" json:"tool_version" xml:"tool_version"`
	PostCount    int    `yaml:"post_count" json:"post_count" xml:"post_count"`
	CommentCount int    `yaml:"comment_count" json:"comment_count" xml:"comment_count"`
	InboxCount   int    `yaml:"inbox_count" json:"inbox_count" xml:"inbox_count"`
}

// Export is the aggregate root: everything one run downloaded, plus
// metadata. It owns its collections exclusively.
type Export struct {
	XMLName  xml.Name       `yaml:"-" json:"-" xml:"lj_export"`
	Metadata Metadata       `yaml:"metadata" json:"metadata" xml:"metadata"`
	Usermap  []User         `yaml:"usermap" json:"usermap" xml:"usermap>user"`
	Posts    []Post         `yaml:"posts" json:"posts" xml:"posts>post"`
	Comments []Comment      `yaml:"comments" json:"comments" xml:"comments>comment"`
	Inbox    []InboxMessage `yaml:"inbox" json:"inbox" xml:"inbox>message"`
}

// New assembles an archive for the given account with the export date
// stamped as now.
func New(user string, now time.Time) *Export {
	return &Export{
		Metadata: Metadata{
			ExportDate:  now.UTC().Format(time.RFC3339),
			User:        user,
			ToolVersion: Version,
		},
	}
}

// UpdateCounts recomputes the metadata counts from the current
// collection sizes. Call right before serialization.
func (e *Export) UpdateCounts() {
	e.Metadata.PostCount = len(e.Posts)
	e.Metadata.CommentCount = len(e.Comments)
	e.Metadata.InboxCount = len(e.Inbox)
}
