package sse

// ConnectedPayload is sent once when a stream opens
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters"`
}
