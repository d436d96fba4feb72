package domain

import "time"

// Baby is a dependent record owned by exactly one mother. MotherID is set
// when the row is created and never changes afterwards.
type Baby struct {
	ID       int64  `json:"id"`
	MotherID int64  `json:"mae_id"`
	Name     string `json:"nome"`

	Birthday *time.Time `json:"data_parto,omitempty"`
	// Grams at birth.
	Weight int `json:"peso,omitempty"`
	// true = vaginal, false = cesarean.
	VaginalBirth  bool `json:"parto_normal"`
	Complications bool `json:"complicacoes"`

	// Gestational age at birth: weeks plus days, days in [0,6].
	GestationWeeks int `json:"semanas_gest,omitempty"`
	GestationDays  int `json:"dias_gest"`

	Apgar1 *int `json:"apgar1,omitempty"`
	Apgar2 *int `json:"apgar2,omitempty"`

	// Unit the baby was born in and where it is registered.
	BirthLocation        string `json:"local_nascimento,omitempty"`
	RegistrationLocation string `json:"local_cadastro,omitempty"`
}

// BabyUpdate carries mutable fields for one baby of an update transaction,
// matched by (mother id, baby id). Nil means "leave unchanged".
type BabyUpdate struct {
	ID            int64
	Name          *string
	Birthday      *time.Time
	Weight        *int
	VaginalBirth  *bool
	BirthLocation *string
}

// BabyWithFeedings is a baby enriched with its feeding history for the
// aggregate view.
type BabyWithFeedings struct {
	Baby
	Mamadas []FeedingEntry `json:"mamadas"`
}
