package models

// Notification is an in-app notification
type Notification struct {
	ID        ID     `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Message   string `json:"message" yaml:"message"`
	Type      string `json:"type" yaml:"type"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	Read      bool   `json:"read" yaml:"read"`
	ActionURL string `json:"action_url,omitempty" yaml:"action_url,omitempty"`
}

// NotificationsResponse is the body of GET /api/notifications
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// UnreadCount counts notifications not yet read
func UnreadCount(items []Notification) int {
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n
}
