package inbox

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"ljexport/lib/archive"
	"ljexport/lib/htmlutil"
	"ljexport/lib/scrapers/lj/core"

	"github.com/PuerkitoBio/goquery"
)

var (
	msgidRegex      = regexp.MustCompile(`msgid=(\d+)`)
	paginationRegex = regexp.MustCompile(`Page\s+(\d+)\s+of\s+(\d+)`)
	trailingFrom    = regexp.MustCompile(`\s*from\s*$`)
)

// selectionText walks the selection's nodes and returns their cleaned
// text content.
func selectionText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		b.WriteString(htmlutil.GetText(node))
	}
	return htmlutil.Clean(b.String())
}

// ParseInboxPage scrapes one inbox page into messages plus a flag for
// whether another page follows. Individual rows that cannot be
// understood are logged and skipped; pagination markup that is
// present but unreadable fails the page.
func ParseInboxPage(data []byte) ([]archive.InboxMessage, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, false, &core.ParsingError{Message: "Failed to parse HTML", Err: err}
	}

	messages := []archive.InboxMessage{}
	doc.Find("tr.InboxItem_Row").Each(func(_ int, row *goquery.Selection) {
		message, ok := extractMessage(row)
		if ok {
			messages = append(messages, message)
		}
	})

	hasNext, err := extractPagination(doc)
	if err != nil {
		return nil, false, err
	}
	return messages, hasNext, nil
}

// extractPagination reads the "Page X of Y" marker. A page without
// the marker is a single page, not an error.
func extractPagination(doc *goquery.Document) (bool, error) {
	span := doc.Find("span.page-number")
	if span.Length() == 0 {
		return false, nil
	}
	text := strings.TrimSpace(span.First().Text())
	groups := paginationRegex.FindStringSubmatch(text)
	if len(groups) < 3 {
		return false, &core.ParsingError{
			Message: fmt.Sprintf("Could not parse pagination text: %q", text),
		}
	}
	current, err := strconv.Atoi(groups[1])
	if err != nil {
		return false, &core.ParsingError{Message: "Could not parse pagination: " + text}
	}
	total, err := strconv.Atoi(groups[2])
	if err != nil {
		return false, &core.ParsingError{Message: "Could not parse pagination: " + text}
	}
	return current < total, nil
}

func extractMessage(row *goquery.Selection) (archive.InboxMessage, bool) {
	qidText, exists := row.Attr("lj_qid")
	if !exists {
		slog.Warn("inbox row missing lj_qid attribute, skipping")
		return archive.InboxMessage{}, false
	}
	qid, err := strconv.Atoi(qidText)
	if err != nil {
		slog.Warn("inbox row has non-numeric lj_qid, skipping", "lj_qid", qidText)
		return archive.InboxMessage{}, false
	}

	titleSpan := row.Find("span.InboxItem_Title").First()
	if titleSpan.Length() == 0 {
		slog.Warn("inbox row missing title span, skipping", "qid", qid)
		return archive.InboxMessage{}, false
	}

	sender := extractSender(titleSpan)
	read := titleSpan.HasClass("InboxItem_Read")

	// the ljuser markup lives inside the title span; drop it before
	// reading the title text
	titleSpan.Find("span.ljuser").Remove()
	title := selectionText(titleSpan)
	title = strings.TrimSpace(trailingFrom.ReplaceAllString(title, ""))
	if title == "" {
		title = "No subject"
	}

	bookmarked := false
	if src, ok := row.Find("img.InboxItem_Bookmark").First().Attr("src"); ok {
		bookmarked = strings.Contains(src, "flag_on.gif")
	}

	body := ""
	content := row.Find("div.InboxItem_Content").First()
	if content.Length() > 0 {
		content.Find("div.actions").Remove()
		body = selectionText(content)
		if body == "" {
			body = "No content"
		}
	}

	timestamp := "Unknown"
	if timeCell := row.Find("td.time").First(); timeCell.Length() > 0 {
		timestamp = selectionText(timeCell)
	}

	messageType := archive.MessageTypeNotification
	if sender != nil {
		if sender.Username == "livejournal" && sender.Verified {
			messageType = archive.MessageTypeOfficial
		} else {
			messageType = archive.MessageTypeUser
		}
	}

	return archive.InboxMessage{
		QID:               qid,
		MsgID:             extractMsgID(row),
		Type:              messageType,
		Sender:            sender,
		Title:             title,
		Body:              body,
		TimestampRelative: timestamp,
		Read:              read,
		Bookmarked:        bookmarked,
	}, true
}

// extractSender pulls the sender out of the ljuser markup embedded in
// the title. Nil means a system notification.
func extractSender(titleSpan *goquery.Selection) *archive.InboxSender {
	ljuser := titleSpan.Find("span.ljuser").First()
	if ljuser.Length() == 0 {
		return nil
	}
	username, exists := ljuser.Attr("data-ljuser")
	if !exists || username == "" {
		return nil
	}

	displayName := username
	if b := ljuser.Find("b").First(); b.Length() > 0 {
		displayName = strings.TrimSpace(b.Text())
	}

	profileURL := fmt.Sprintf("https://%s.livejournal.com/profile/", username)
	if href, ok := ljuser.Find("a.i-ljuser-profile").First().Attr("href"); ok {
		profileURL = href
	}

	var userpicURL *string
	if src, ok := ljuser.Find("img.i-ljuser-userhead").First().Attr("src"); ok {
		userpicURL = &src
	}

	verified := ljuser.Find("a.i-ljuser-badge--verified").Length() > 0

	return &archive.InboxSender{
		Username:    username,
		DisplayName: displayName,
		ProfileURL:  profileURL,
		UserpicURL:  userpicURL,
		Verified:    verified,
	}
}

func extractMsgID(row *goquery.Selection) *int {
	actions := row.Find("div.actions").First()
	if actions.Length() == 0 {
		return nil
	}
	var msgid *int
	actions.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, exists := link.Attr("href")
		if !exists {
			return true
		}
		groups := msgidRegex.FindStringSubmatch(href)
		if len(groups) < 2 {
			return true
		}
		n, err := strconv.Atoi(groups[1])
		if err != nil {
			return true
		}
		msgid = &n
		return false
	})
	return msgid
}
