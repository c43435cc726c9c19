package inbox

import (
	"testing"

	"ljexport/lib/archive"

	"github.com/stretchr/testify/require"
)

const sampleInboxHTML = `<html><body>
<table>
<tr class="InboxItem_Row" lj_qid="8">
  <td class="checkbox"><img class="InboxItem_Bookmark" src="https://l-stat.livejournal.net/img/flag_off.gif" /></td>
  <td class="item">
    <span class="InboxItem_Title InboxItem_Read">
      <span class="ljuser" data-ljuser="livejournal">
        <a href="https://livejournal.livejournal.com/profile/" class="i-ljuser-profile"><img class="i-ljuser-userhead" src="https://example.com/userpic.jpg" /></a>
        <a href="https://livejournal.livejournal.com/"><b>livejournal</b></a>
        <a class="i-ljuser-badge i-ljuser-badge--verified" data-badge-type="verified"></a>
      </span>
      LiveJournal User Agreement updated
    </span>
    <div class="InboxItem_Content">
      We updated the LiveJournal User Agreement.
      <div class="actions"><a href="https://www.livejournal.com/inbox/compose.bml?mode=reply&amp;msgid=95201687">Reply</a> <a href="#">Mark as Spam</a></div>
    </div>
  </td>
  <td class="time">4 months ago</td>
</tr>
<tr class="InboxItem_Row" lj_qid="9">
  <td class="checkbox"><img class="InboxItem_Bookmark" src="https://l-stat.livejournal.net/img/flag_on.gif" /></td>
  <td class="item">
    <span class="InboxItem_Title">
      Message from
      <span class="ljuser" data-ljuser="normaluser">
        <a href="https://normaluser.livejournal.com/"><b>normaluser</b></a>
      </span>
    </span>
    <div class="InboxItem_Content">
      Hey, long time no see!
      <div class="actions"><a href="https://www.livejournal.com/inbox/compose.bml?mode=reply&amp;msgid=200">Reply</a></div>
    </div>
  </td>
  <td class="time">2 days ago</td>
</tr>
<tr class="InboxItem_Row" lj_qid="10">
  <td class="item">
    <span class="InboxItem_Title">Your entry was added to popular posts</span>
    <div class="InboxItem_Content">Congratulations!</div>
  </td>
  <td class="time">1 hour ago</td>
</tr>
<tr class="InboxItem_Row">
  <td class="item"><span class="InboxItem_Title">row without a qid</span></td>
</tr>
<tr class="InboxItem_Row" lj_qid="oops">
  <td class="item"><span class="InboxItem_Title">row with a bad qid</span></td>
</tr>
</table>
<span class="page-number">Page 1 of 1</span>
</body></html>`

func TestParseInboxPage(t *testing.T) {
	messages, hasNext, err := ParseInboxPage([]byte(sampleInboxHTML))
	require.NoError(t, err)
	require.False(t, hasNext)
	// the two rows without a usable qid are skipped
	require.Len(t, messages, 3)

	official := messages[0]
	require.Equal(t, 8, official.QID)
	require.Equal(t, 95201687, *official.MsgID)
	require.Equal(t, archive.MessageTypeOfficial, official.Type)
	require.Equal(t, "LiveJournal User Agreement updated", official.Title)
	require.Contains(t, official.Body, "updated the LiveJournal User Agreement")
	require.NotContains(t, official.Body, "Reply")
	require.NotContains(t, official.Body, "Mark as Spam")
	require.Equal(t, "4 months ago", official.TimestampRelative)
	require.True(t, official.Read)
	require.False(t, official.Bookmarked)

	require.NotNil(t, official.Sender)
	require.Equal(t, "livejournal", official.Sender.Username)
	require.Equal(t, "livejournal", official.Sender.DisplayName)
	require.True(t, official.Sender.Verified)
	require.Contains(t, official.Sender.ProfileURL, "livejournal.com/profile")
	require.Equal(t, "https://example.com/userpic.jpg", *official.Sender.UserpicURL)

	user := messages[1]
	require.Equal(t, 9, user.QID)
	require.Equal(t, archive.MessageTypeUser, user.Type)
	// trailing "from" left over after dropping the sender markup is
	// stripped from the title
	require.Equal(t, "Message", user.Title)
	require.Equal(t, "normaluser", user.Sender.Username)
	require.False(t, user.Sender.Verified)
	require.False(t, user.Read)
	require.True(t, user.Bookmarked)
	require.Equal(t, 200, *user.MsgID)

	notification := messages[2]
	require.Equal(t, 10, notification.QID)
	require.Equal(t, archive.MessageTypeNotification, notification.Type)
	require.Nil(t, notification.Sender)
	require.Nil(t, notification.MsgID)
	require.Equal(t, "Your entry was added to popular posts", notification.Title)
	require.Equal(t, "Congratulations!", notification.Body)
}

func TestParseInboxPageEmpty(t *testing.T) {
	html := `<html><body><p>Your inbox is empty.</p></body></html>`
	messages, hasNext, err := ParseInboxPage([]byte(html))
	require.NoError(t, err)
	require.Empty(t, messages)
	require.False(t, hasNext)
}

func TestParseInboxPagePagination(t *testing.T) {
	testCases := []struct {
		name    string
		html    string
		hasNext bool
		fails   bool
	}{
		{
			name:    "more pages",
			html:    `<html><body><span class="page-number">Page 2 of 5</span></body></html>`,
			hasNext: true,
		},
		{
			name:    "last page",
			html:    `<html><body><span class="page-number">Page 5 of 5</span></body></html>`,
			hasNext: false,
		},
		{
			name:    "single page",
			html:    `<html><body><span class="page-number">Page 1 of 1</span></body></html>`,
			hasNext: false,
		},
		{
			name:    "no pagination markup",
			html:    `<html><body></body></html>`,
			hasNext: false,
		},
		{
			name:  "unreadable pagination",
			html:  `<html><body><span class="page-number">Invalid pagination text</span></body></html>`,
			fails: true,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			_, hasNext, err := ParseInboxPage([]byte(c.html))
			if c.fails {
				require.Error(t, err)
				require.Contains(t, err.Error(), "Could not parse pagination")
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.hasNext, hasNext)
		})
	}
}

func TestParseInboxPageTolerantOfBrokenMarkup(t *testing.T) {
	messages, hasNext, err := ParseInboxPage([]byte(`<html><body><div>Invalid`))
	require.NoError(t, err)
	require.Empty(t, messages)
	require.False(t, hasNext)
}

func TestParseInboxPageFlattensNestedMarkup(t *testing.T) {
	html := `<html><body><table>
  <tr class="InboxItem_Row" lj_qid="12">
    <td><span class="InboxItem_Title">Deeply  <i>nested
      <b>markup</b></i>   title from</span></td>
    <td><div class="InboxItem_Content"><p>Line one</p>
      <p>Line <em>two</em></p></div></td>
  </tr>
</table></body></html>`

	messages, _, err := ParseInboxPage([]byte(html))
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "Deeply nested markup title", messages[0].Title)
	require.Equal(t, "Line one Line two", messages[0].Body)
}
