package signup

import (
	"errors"
	"strconv"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

// Step identifies the wizard position.
type Step int

const (
	StepAccount Step = iota
	StepMotherDetails
	StepBabyDetails
	StepDone
)

var (
	// ErrWrongStep is returned when a submission does not match the wizard's
	// current position.
	ErrWrongStep = errors.New("signup: submission does not match current step")
	// ErrPristine blocks final submission before anything was edited.
	ErrPristine = errors.New("signup: form has not been edited")
	// ErrInFlight blocks re-entrant final submission.
	ErrInFlight = errors.New("signup: a submission is already in flight")
)

// Wizard accumulates a Draft across sequential steps. Validation runs only
// on explicit step submission, never on individual edits.
type Wizard struct {
	draft    Draft
	step     Step
	dirty    bool
	inFlight bool
}

func NewWizard() *Wizard {
	return &Wizard{step: StepAccount}
}

func (w *Wizard) Step() Step    { return w.step }
func (w *Wizard) Draft() *Draft { return &w.draft }

// EditAccount records the account step fields without validating them.
func (w *Wizard) EditAccount(email, password string) {
	w.draft.Email = email
	w.draft.Password = password
	w.dirty = true
}

// SubmitAccount validates the account step and advances.
func (w *Wizard) SubmitAccount() error {
	if w.step != StepAccount {
		return ErrWrongStep
	}
	if verr := Evaluate(AccountRules, &w.draft); verr != nil {
		return verr
	}
	w.step = StepMotherDetails
	return nil
}

// EditMotherDetails records the mother-details step. When the role changes,
// both conditional tracks are cleared first so values entered under the old
// role can never survive into the new one.
func (w *Wizard) EditMotherDetails(md MotherDetails) {
	// Picking a role for the first time is not a change.
	if w.draft.Mother.Role != "" && md.Role != w.draft.Mother.Role {
		md.clearConditional()
	}
	w.draft.Mother = md
	w.dirty = true
}

// SubmitMotherDetails validates the step and advances: MotherOfPreterm goes
// on to the baby step (seeded with a single blank sub-form), every other
// role completes the wizard.
func (w *Wizard) SubmitMotherDetails() error {
	if w.step != StepMotherDetails {
		return ErrWrongStep
	}
	if verr := Evaluate(MotherRules, &w.draft); verr != nil {
		return verr
	}
	if w.draft.Mother.Role == RoleMotherOfPreterm {
		w.draft.Babies = []BabyDraft{{}}
		w.draft.BabyCountText = "1"
		w.step = StepBabyDetails
		return nil
	}
	w.draft.Babies = nil
	w.step = StepDone
	return nil
}

// SetBabyCount resizes the baby sub-form list from free-text input.
func (w *Wizard) SetBabyCount(text string) {
	w.draft.Babies, w.draft.BabyCountText = ResizeBabies(text, w.draft.Babies)
	w.dirty = true
}

// EditBaby replaces sub-form i.
func (w *Wizard) EditBaby(i int, b BabyDraft) error {
	if i < 0 || i >= len(w.draft.Babies) {
		return errors.New("signup: baby index out of range")
	}
	w.draft.Babies[i] = b
	w.dirty = true
	return nil
}

// SubmitBabyDetails validates every sub-form. Errors are keyed as
// "bebes[i].campo" so the form can place them next to the right input.
func (w *Wizard) SubmitBabyDetails() error {
	if w.step != StepBabyDetails {
		return ErrWrongStep
	}
	if len(w.draft.Babies) == 0 {
		return domain.NewValidationError("bebes", "pelo menos um bebê deve ser cadastrado")
	}
	fields := map[string]string{}
	for i := range w.draft.Babies {
		for field, msg := range babyRules(&w.draft.Babies[i]) {
			fields["bebes["+strconv.Itoa(i)+"]."+field] = msg
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	w.step = StepDone
	return nil
}

// Finalize produces the one registration payload. It refuses to run before
// the last step was submitted, while the form is pristine, or while an
// earlier finalization is still in flight. The caller reports the outcome of
// the network call via Settle.
func (w *Wizard) Finalize() (domain.RegistrationPayload, error) {
	if w.step != StepDone {
		return domain.RegistrationPayload{}, ErrWrongStep
	}
	if !w.dirty {
		return domain.RegistrationPayload{}, ErrPristine
	}
	if w.inFlight {
		return domain.RegistrationPayload{}, ErrInFlight
	}
	w.inFlight = true
	return w.buildPayload(), nil
}

// Settle clears the in-flight guard after the registration call returned.
func (w *Wizard) Settle() {
	w.inFlight = false
}

// buildPayload coerces the validated draft into domain values. Only the
// track selected by the role is populated; the other group stays nil.
func (w *Wizard) buildPayload() domain.RegistrationPayload {
	md := w.draft.Mother
	mother := domain.Mother{
		Email:       w.draft.Email,
		Name:        md.Name,
		Phone:       md.Phone,
		Birthday:    md.Birthday,
		Category:    roleCategory(md.Role),
		Origin:      md.Origin,
		SocialMedia: md.SocialMedia,
	}

	switch md.Role {
	case RolePregnant:
		weeks := atoi(md.WeeksPregnant)
		mother.WeeksPregnant = &weeks
		mother.PossibleBirthDate = md.PossibleBirthDate
	case RoleMotherOfPreterm:
		weeks := atoi(md.BirthWeeks)
		count := atoi(md.CurrentGestationCount)
		mother.BirthWeeks = &weeks
		mother.BirthDate = md.BirthDate
		mother.GestationCount = &count
		if md.HasPartner != nil {
			mother.HasPartner = *md.HasPartner
		}
		mother.Location = md.City + " - " + md.State
	}

	babies := make([]domain.Baby, 0, len(w.draft.Babies))
	for _, b := range w.draft.Babies {
		apgar1 := atoi(b.Apgar1)
		apgar2 := atoi(b.Apgar2)
		baby := domain.Baby{
			Name:           b.Name,
			Birthday:       b.Birthday,
			Weight:         atoi(b.Weight),
			VaginalBirth:   b.BirthType == "normal",
			GestationWeeks: atoi(b.GestationWeeks),
			GestationDays:  atoi(b.GestationDays),
			Apgar1:         &apgar1,
			Apgar2:         &apgar2,
			BirthLocation:  b.BirthLocation,
		}
		if b.Complications != nil {
			baby.Complications = *b.Complications
		}
		babies = append(babies, baby)
	}

	return domain.RegistrationPayload{
		Mother:   mother,
		Password: w.draft.Password,
		Babies:   babies,
	}
}

func roleCategory(r Role) domain.Category {
	switch r {
	case RolePregnant:
		return domain.CategoryPregnant
	case RoleMotherOfPreterm:
		return domain.CategoryMotherOfPreterm
	case RoleHealthcareWorker:
		return domain.CategoryHealthcareWorker
	default:
		return domain.CategoryOther
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
