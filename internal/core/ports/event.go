package ports

import "context"

// Outbox event types drained by the relay.
const (
	EventMotherRegistered       = "mother.registered"
	EventPasswordResetRequested = "password.reset.requested"
)

// MotherRegisteredEvent announces a completed registration so the mailer can
// send the welcome email. It is marshaled before the insert, so it carries
// the email rather than the store-assigned id.
type MotherRegisteredEvent struct {
	Email string `json:"email"`
	Name  string `json:"nome"`
}

// PasswordResetEvent carries the reset code the mailer embeds in the
// out-of-band email. The code itself lives in Redis with a matching TTL.
type PasswordResetEvent struct {
	MotherID int64  `json:"mae_id"`
	Email    string `json:"email"`
	Code     string `json:"codigo"`
}

// MailEventPublisher hands mail events to the broker.
type MailEventPublisher interface {
	PublishMailEvent(ctx context.Context, eventType string, payload []byte) error
}

// ResetCodeStore keeps password-reset codes until they expire.
type ResetCodeStore interface {
	Save(ctx context.Context, code string, motherID int64) error
	// Lookup returns domain.ErrNotFound for unknown or expired codes.
	Lookup(ctx context.Context, code string) (int64, error)
}
