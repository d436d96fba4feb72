// Package signup implements the registration wizard: it accumulates a draft
// profile across sequential steps, applies conditional validation per step,
// and finalizes exactly one registration payload for the create transaction.
package signup

import "time"

// Role is the answer to the user-type question on the mother-details step.
// It selects which conditional field group is required.
type Role string

const (
	RolePregnant         Role = "gestante"
	RoleMotherOfPreterm  Role = "mae"
	RoleHealthcareWorker Role = "profissional"
	RoleOther            Role = "outro"
)

// OriginSocialMedia is the referral origin that makes the sub-origin
// selection required.
const OriginSocialMedia = "redes sociais"

// MotherDetails holds the second step of the wizard. Numeric-looking fields
// stay as raw text until Finalize, mirroring free-text form inputs.
type MotherDetails struct {
	Name     string
	Phone    string
	Birthday *time.Time

	Role        Role
	Origin      string
	SocialMedia string

	// Pregnancy track.
	WeeksPregnant     string
	PossibleBirthDate *time.Time

	// Birth track.
	BirthWeeks            string
	BirthDate             *time.Time
	City                  string
	State                 string
	HasPartner            *bool
	CurrentGestationCount string
}

// BabyDraft is one baby sub-form of the final step.
type BabyDraft struct {
	Name           string
	Birthday       *time.Time
	Weight         string
	BirthType      string
	Complications  *bool
	GestationWeeks string
	GestationDays  string
	Apgar1         string
	Apgar2         string
	BirthLocation  string
}

// Draft is the in-progress, possibly-incomplete signup payload held by the
// wizard before final submission.
type Draft struct {
	Email    string
	Password string

	Mother MotherDetails

	BabyCountText string
	Babies        []BabyDraft
}

// clearConditional drops every role-conditional field from both tracks.
// Called whenever the role changes so stale cross-branch data can never
// reach validation.
func (m *MotherDetails) clearConditional() {
	m.WeeksPregnant = ""
	m.PossibleBirthDate = nil
	m.BirthWeeks = ""
	m.BirthDate = nil
	m.City = ""
	m.State = ""
	m.HasPartner = nil
	m.CurrentGestationCount = ""
}
