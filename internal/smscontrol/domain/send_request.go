package domain

// SendRequest is an outbound short message as accepted at the public API
// boundary. The admission pipeline evaluates it and either forwards it
// unmodified to the radio dispatch layer or drops it; it is never persisted
// beyond the decision journal.
type SendRequest struct {
	ID             string `json:"id"`
	SubscriptionID int    `json:"subscription_id"`
	CallingPackage string `json:"calling_package"`
	CallingUserID  int    `json:"calling_user_id"`

	DestinationAddress   string `json:"destination_address"`
	ServiceCenterAddress string `json:"service_center_address,omitempty"`
	Text                 string `json:"text"`

	// Callback tokens are opaque to the admission core and travel with the
	// request so the dispatch layer can deliver sent/delivery results.
	SentIntentToken     string `json:"sent_intent_token,omitempty"`
	DeliveryIntentToken string `json:"delivery_intent_token,omitempty"`

	PersistMessage  bool `json:"persist_message"`
	VisualVoicemail bool `json:"visual_voicemail"`
}
