package signup

import (
	"errors"
	"testing"
	"time"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

func advanceToMotherStep(t *testing.T, w *Wizard) {
	t.Helper()
	w.EditAccount("mae@example.com", "segredo123")
	if err := w.SubmitAccount(); err != nil {
		t.Fatalf("account step failed: %v", err)
	}
}

func TestWizardStepOrder(t *testing.T) {
	w := NewWizard()

	if err := w.SubmitMotherDetails(); !errors.Is(err, ErrWrongStep) {
		t.Errorf("expected ErrWrongStep before account step, got %v", err)
	}
	if _, err := w.Finalize(); !errors.Is(err, ErrWrongStep) {
		t.Errorf("expected ErrWrongStep on premature finalize, got %v", err)
	}

	w.EditAccount("", "")
	err := w.SubmitAccount()
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error on empty account, got %v", err)
	}
	if w.Step() != StepAccount {
		t.Error("failed step submission must not advance")
	}
}

func TestWizardRoleChangeClearsConditionalFields(t *testing.T) {
	w := NewWizard()
	advanceToMotherStep(t, w)

	past := time.Now().AddDate(0, -1, 0)
	w.EditMotherDetails(validMotherDraft().Mother)
	if w.Draft().Mother.City == "" {
		t.Fatal("setup: city should be set")
	}

	// Switching to the pregnancy role drops everything entered for the
	// birth track.
	changed := w.Draft().Mother
	changed.Role = RolePregnant
	changed.BirthDate = &past
	w.EditMotherDetails(changed)

	m := w.Draft().Mother
	if m.BirthWeeks != "" || m.BirthDate != nil || m.City != "" || m.HasPartner != nil || m.CurrentGestationCount != "" {
		t.Errorf("birth-track fields survived role change: %+v", m)
	}
}

func TestWizardPregnantSkipsBabyStep(t *testing.T) {
	w := NewWizard()
	advanceToMotherStep(t, w)

	w.EditMotherDetails(validPregnantDraft().Mother)
	if err := w.SubmitMotherDetails(); err != nil {
		t.Fatalf("mother step failed: %v", err)
	}
	if w.Step() != StepDone {
		t.Fatalf("pregnant role should complete the wizard, step = %d", w.Step())
	}

	payload, err := w.Finalize()
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	// Mutual exclusivity: the birth track is entirely absent.
	m := payload.Mother
	if m.BirthWeeks != nil || m.BirthDate != nil || m.GestationCount != nil {
		t.Errorf("birth-track fields present on pregnancy payload: %+v", m)
	}
	if m.WeeksPregnant == nil || *m.WeeksPregnant != 28 {
		t.Errorf("weeksPregnant not coerced: %v", m.WeeksPregnant)
	}
	if len(payload.Babies) != 0 {
		t.Errorf("pregnant payload must not carry babies, got %d", len(payload.Babies))
	}
}

func TestWizardMotherTrackPayload(t *testing.T) {
	w := NewWizard()
	advanceToMotherStep(t, w)

	w.EditMotherDetails(validMotherDraft().Mother)
	if err := w.SubmitMotherDetails(); err != nil {
		t.Fatalf("mother step failed: %v", err)
	}
	if w.Step() != StepBabyDetails {
		t.Fatalf("mother role should enter the baby step, step = %d", w.Step())
	}
	if len(w.Draft().Babies) != 1 {
		t.Fatalf("baby step should start with one blank sub-form, got %d", len(w.Draft().Babies))
	}

	w.SetBabyCount("2")
	birthday := time.Now().AddDate(0, -1, 0)
	for i, name := range []string{"B1", "B2"} {
		if err := w.EditBaby(i, BabyDraft{
			Name:           name,
			Birthday:       &birthday,
			Weight:         "1900",
			BirthType:      "cesárea",
			Complications:  boolPtr(false),
			GestationWeeks: "32",
			GestationDays:  "3",
			Apgar1:         "7",
			Apgar2:         "9",
			BirthLocation:  "UCI",
		}); err != nil {
			t.Fatalf("edit baby %d: %v", i, err)
		}
	}
	if err := w.SubmitBabyDetails(); err != nil {
		t.Fatalf("baby step failed: %v", err)
	}

	payload, err := w.Finalize()
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	m := payload.Mother
	if m.WeeksPregnant != nil || m.PossibleBirthDate != nil {
		t.Errorf("pregnancy-track fields present on mother payload: %+v", m)
	}
	if m.Location != "João Pessoa - PB" {
		t.Errorf("location not composed: %q", m.Location)
	}
	if m.GestationCount == nil || *m.GestationCount != 1 {
		t.Errorf("gestation count not coerced: %v", m.GestationCount)
	}
	if len(payload.Babies) != 2 {
		t.Fatalf("expected 2 babies, got %d", len(payload.Babies))
	}
	b := payload.Babies[0]
	if b.Name != "B1" || b.Weight != 1900 || b.VaginalBirth {
		t.Errorf("baby not coerced: %+v", b)
	}
	if b.Apgar1 == nil || *b.Apgar1 != 7 {
		t.Errorf("apgar not coerced: %v", b.Apgar1)
	}
}

func TestWizardBabyStepValidation(t *testing.T) {
	w := NewWizard()
	advanceToMotherStep(t, w)
	w.EditMotherDetails(validMotherDraft().Mother)
	if err := w.SubmitMotherDetails(); err != nil {
		t.Fatalf("mother step failed: %v", err)
	}

	err := w.SubmitBabyDetails()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for blank sub-form, got %v", err)
	}
	if _, ok := verr.Fields["bebes[0].nome"]; !ok {
		t.Errorf("expected indexed field key, got %v", verr.Fields)
	}
}

func TestWizardFinalizeGuards(t *testing.T) {
	// Pristine wizards cannot submit even if somehow at the final step.
	w := &Wizard{step: StepDone}
	if _, err := w.Finalize(); !errors.Is(err, ErrPristine) {
		t.Errorf("expected ErrPristine, got %v", err)
	}

	w = NewWizard()
	advanceToMotherStep(t, w)
	w.EditMotherDetails(validPregnantDraft().Mother)
	if err := w.SubmitMotherDetails(); err != nil {
		t.Fatalf("mother step failed: %v", err)
	}

	if _, err := w.Finalize(); err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}
	// Re-entrancy: a second tap while the request is in flight is refused.
	if _, err := w.Finalize(); !errors.Is(err, ErrInFlight) {
		t.Errorf("expected ErrInFlight, got %v", err)
	}
	w.Settle()
	if _, err := w.Finalize(); err != nil {
		t.Errorf("finalize after settle should work, got %v", err)
	}
}
