package models

// Notification event types pushed over the live channel.
const (
	NotificationTypeLike    = "like"
	NotificationTypeDislike = "dislike"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// NotificationEvent is the payload pushed to the affected user's live session
// under the "notification" event name. Events are built per interaction and
// never stored: they are consumed once by the dispatcher or discarded.
type NotificationEvent struct {
	Type        string      `json:"type"`
	UserID      string      `json:"userId"` // the acting user
	UserDetails UserCompact `json:"userDetails"`
	PostID      string      `json:"postId,omitempty"`
	Message     string      `json:"message"`
}
