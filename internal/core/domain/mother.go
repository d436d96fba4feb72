package domain

import "time"

// Category classifies the account holder. It decides which of the two
// conditional attribute groups (pregnancy vs. birth) is populated.
type Category string

const (
	CategoryPregnant         Category = "gestante"
	CategoryMotherOfPreterm  Category = "mae"
	CategoryHealthcareWorker Category = "profissional"
	CategoryOther            Category = "outro"
)

// Mother is the primary account holder. The password hash never leaves the
// server: it is json-omitted and additionally scrubbed before aggregate reads
// are returned.
type Mother struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"nome"`
	Birthday     *time.Time `json:"data_nascimento,omitempty"`
	Phone        string     `json:"whatsapp,omitempty"`
	Category     Category   `json:"categoria"`
	Origin       string     `json:"localizacao,omitempty"`
	SocialMedia  string     `json:"veiculo_midia,omitempty"`

	// Pregnancy track (Category == CategoryPregnant).
	WeeksPregnant     *int       `json:"semanas_gestante,omitempty"`
	PossibleBirthDate *time.Time `json:"data_provavel_parto,omitempty"`

	// Birth track (Category == CategoryMotherOfPreterm).
	BirthWeeks     *int       `json:"semanas_gestacao,omitempty"`
	BirthDate      *time.Time `json:"data_parto,omitempty"`
	HasPartner     bool       `json:"companheiro"`
	GestationCount *int       `json:"quantidade_gestacao,omitempty"`

	// Composed as "{city} - {state}".
	Location string `json:"cidade_estado,omitempty"`

	FirstAccess time.Time `json:"primeiro_acesso"`
	LastAccess  time.Time `json:"ultimo_acesso"`
}

// MotherUpdate carries the mutable fields of an update transaction. Nil
// pointers mean "leave unchanged".
type MotherUpdate struct {
	Email             *string
	Name              *string
	HasPartner        *bool
	Birthday          *time.Time
	Phone             *string
	PossibleBirthDate *time.Time
	City              *string
	State             *string
}

// RegistrationPayload is the single finalized output of the signup wizard:
// one mother plus her declared babies, ready for the create transaction.
// Password travels in plaintext only inside this value and is hashed before
// anything is persisted.
type RegistrationPayload struct {
	Mother   Mother
	Password string
	Babies   []Baby
}

// MotherAggregate is the full profile view: the mother row, every owned baby
// with its feeding entries attached, and the mother's own extraction history.
type MotherAggregate struct {
	Mother
	Babies   []BabyWithFeedings `json:"bebes"`
	Ordenhas []FeedingEntry     `json:"ordenhas"`
}
