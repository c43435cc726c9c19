package archive

// MessageType classifies an inbox message by its sender: none at all,
// the platform's own verified account, or a regular user.
type MessageType string

const (
	MessageTypeUser         MessageType = "user_message"
	MessageTypeOfficial     MessageType = "official_message"
	MessageTypeNotification MessageType = "system_notification"
)

// InboxSender describes who sent an inbox message. Nil on the message
// means a system notification.
type InboxSender struct {
	Username    string  `yaml:"username" json:"username" xml:"username"`
	DisplayName string  `yaml:"display_name" json:"display_name" xml:"display_name"`
	ProfileURL  string  `yaml:"profile_url" json:"profile_url" xml:"profile_url"`
	UserpicURL  *string `yaml:"userpic_url" json:"userpic_url" xml:"userpic_url"`
	Verified    bool    `yaml:"verified" json:"verified" xml:"verified"`
}

// InboxMessage is one row scraped off an inbox page. QID is only
// stable within a fetch; MsgID is the global id and is absent for
// system notifications.
type InboxMessage struct {
	QID               int          `yaml:"qid" json:"qid" xml:"qid"`
	MsgID             *int         `yaml:"msgid" json:"msgid" xml:"msgid"`
	Type              MessageType  `yaml:"type" json:"type" xml:"type"`
	Sender            *InboxSender `yaml:"sender" json:"sender" xml:"sender"`
	Title             string       `yaml:"title" json:"title" xml:"title"`
	Body              string       `yaml:"body" json:"body" xml:"body"`
	TimestampRelative string       `yaml:"timestamp_relative" json:"timestamp_relative" xml:"timestamp_relative"`
	TimestampAbsolute *string      `yaml:"timestamp_absolute" json:"timestamp_absolute" xml:"timestamp_absolute"`
	Read              bool         `yaml:"read" json:"read" xml:"read"`
	Bookmarked        bool         `yaml:"bookmarked" json:"bookmarked" xml:"bookmarked"`
}
