package entities

import "time"

// Notification is an in-app message shown to a provider, created when a
// client books one of their slots. Only the recipient may mark it read.
type Notification struct {
	ID          string    `json:"id" bson:"_id"`
	RecipientID string    `json:"recipient_id" bson:"recipient_id"`
	Content     string    `json:"content" bson:"content"`
	Read        bool      `json:"read" bson:"read"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CancellationEmail carries everything the mail worker needs to render
// and deliver a cancellation notice to a provider.
type CancellationEmail struct {
	AppointmentID string    `json:"appointment_id"`
	ProviderName  string    `json:"provider_name"`
	ProviderEmail string    `json:"provider_email"`
	ClientName    string    `json:"client_name"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}
