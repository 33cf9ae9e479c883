package http

// SendMessageRequest DTO for the text and visual voicemail send endpoints.
type SendMessageRequest struct {
	DestinationAddress   string `json:"destination_address" validate:"required"`
	ServiceCenterAddress string `json:"service_center_address,omitempty"`
	Text                 string `json:"text" validate:"required,min=1"`
	SentIntentToken      string `json:"sent_intent_token,omitempty"`
	DeliveryIntentToken  string `json:"delivery_intent_token,omitempty"`
	PersistMessage       bool   `json:"persist_message"`
}

// SendMessageResponse DTO. Accepted means the request entered the admission
// pipeline; a silently denied send still reports accepted.
type SendMessageResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// FdnBlockResponse DTO for the FDN block query.
type FdnBlockResponse struct {
	SubscriptionID     int    `json:"subscription_id"`
	DestinationAddress string `json:"destination_address"`
	Blocked            bool   `json:"blocked"`
}

// WapMessageSizeResponse DTO for the WAP push size query.
type WapMessageSizeResponse struct {
	Size int64 `json:"size"`
}

// ErrorResponse DTO for surfaced failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
