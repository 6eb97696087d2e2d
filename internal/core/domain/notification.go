package domain

// NotificationKind is the severity shown to the user.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// EventType names what happened to a post.
type EventType string

const (
	PostCreated EventType = "post_created"
	PostUpdated EventType = "post_updated"
	PostDeleted EventType = "post_deleted"
)

// Navigation targets carried in Notification.Redirect.
const (
	RedirectDashboard = "dashboard"
	RedirectHome      = "home"
)

// RedirectPost names the detail view of a post.
func RedirectPost(id string) string {
	return "post:" + id
}

// PostEvent records a successful mutation. Post is nil for deletions.
type PostEvent struct {
	Type   EventType `json:"type"`
	PostID string    `json:"postId"`
	Post   *Post     `json:"post,omitempty"`
}

// Notification is emitted by the stores for the presentation layer.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	// Redirect is an optional navigation target, e.g. "dashboard".
	Redirect string     `json:"redirect,omitempty"`
	Event    *PostEvent `json:"event,omitempty"`
}

// Key groups notifications that must be delivered in order.
func (n Notification) Key() string {
	if n.Event != nil {
		return n.Event.PostID
	}
	return n.Title
}
