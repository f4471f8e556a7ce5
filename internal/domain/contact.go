package domain

import "context"

// ContactRequest represents a contact form submission.
// Validation runs in the usecase so each failure maps to its own message.
type ContactRequest struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,loose_email"`
	Company   string `json:"company,omitempty"`
	Subject   string `json:"subject" validate:"notblank"`
	Message   string `json:"message" validate:"notblank"`
}

// Client-facing messages for contact failures
const (
	MsgInvalidBody     = "Invalid request body."
	MsgRequiredFields  = "All required fields must be filled in."
	MsgInvalidEmail    = "Please provide a valid email address."
	MsgServerConfig    = "Server configuration error. Please try again later."
	MsgSendFailed      = "Failed to send message. Please try again later."
	MsgTooManyRequests = "Too many requests. Please try again later."
)

// SubjectLabels maps the contact form's category keys to display labels
var SubjectLabels = map[string]string{
	"demo":        "Request a Demo",
	"pricing":     "Pricing Enquiry",
	"enterprise":  "Enterprise Edition",
	"support":     "Technical Support",
	"partnership": "Partnership",
	"other":       "Other",
}

// SubjectLabel resolves a category key. Unknown keys are their own label.
func SubjectLabel(key string) string {
	if label, ok := SubjectLabels[key]; ok {
		return label
	}
	return key
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission and relays it by email
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
