package models

// CheckoutSession points the user at the hosted payment page.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// PortalSession points the user at the hosted billing portal.
type PortalSession struct {
	URL string `json:"url"`
}

// PlanChange is returned after a checkout confirmation or beta unlock.
type PlanChange struct {
	Plan Plan `json:"plan"`
}

// Feedback is a beta feedback submission.
type Feedback struct {
	Message string `json:"message,omitempty"`
	Source  string `json:"source"`
	Rating  *int   `json:"rating,omitempty"`
}
