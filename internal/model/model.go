package model

// Submission is the payload the collector posts to the relay endpoint.
type Submission struct {
	App       string   `json:"app"`
	URLs      []string `json:"urls"`
	CreatedAt string   `json:"created_at"`
}

// Meta carries request metadata the relay attaches before forwarding.
// UserAgent and IPHint are copied verbatim from request headers and may be empty.
type Meta struct {
	CreatedAt string `json:"created_at"`
	UserAgent string `json:"user_agent"`
	IPHint    string `json:"ip_hint"`
}

// WebhookRequest is the body forwarded to the external webhook.
type WebhookRequest struct {
	App  string   `json:"app"`
	URLs []string `json:"urls"`
	Meta Meta     `json:"meta"`
}

// Envelope is the uniform response body the relay returns to its caller.
type Envelope struct {
	Message string   `json:"message"`
	Status  int      `json:"status,omitempty"`
	Details []string `json:"details,omitempty"`
	Body    any      `json:"body,omitempty"`
}
