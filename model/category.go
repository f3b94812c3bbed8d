package model

// Category is a named grouping of feeds on the Miniflux server. The server
// owns both fields; the client never mutates them.
type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// FeedCreationRequest is the body of a feed-creation call. CategoryID is a
// pointer so that "no category" and "category 0" are distinct states; any
// non-nil id is transmitted.
type FeedCreationRequest struct {
	FeedURL    string `json:"feed_url"`
	CategoryID *int64 `json:"category_id,omitempty"`
}

// Feed describes a feed created on the server. Only the fields the CLI
// reports are mapped; the server may return more.
type Feed struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	SiteURL  string    `json:"site_url"`
	FeedURL  string    `json:"feed_url"`
	Category *Category `json:"category,omitempty"`
}

// apiError is the error envelope Miniflux returns on non-2xx responses.
type apiError struct {
	ErrorMessage string `json:"error_message"`
}
