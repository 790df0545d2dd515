package store

// Session is the in-memory view of an active chat session: the package pin
// plus the last few turns, kept hot so the chat path avoids a database
// round-trip per message.
type Session struct {
	ID             string `json:"id"` // ChatSessionID
	ProductID      string `json:"product_id"`
	PackageID      string `json:"package_id"`
	PackageVersion int    `json:"package_version"`

	// Recent turns, newest last, capped by the session service.
	History []Turn `json:"history"`

	LastQuery string `json:"last_query"`
}

// Turn is one user or assistant message in the cached history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
