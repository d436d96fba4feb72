package signup

import (
	"testing"
	"time"
)

func boolPtr(b bool) *bool { return &b }

func datePtr(t time.Time) *time.Time { return &t }

func validPregnantDraft() *Draft {
	future := time.Now().AddDate(0, 2, 0)
	return &Draft{
		Email:    "gestante@example.com",
		Password: "segredo123",
		Mother: MotherDetails{
			Name:          "Maria",
			Phone:         "+5583999990000",
			Birthday:      datePtr(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)),
			Role:          RolePregnant,
			Origin:        "indicação médica",
			WeeksPregnant: "28",
			PossibleBirthDate: &future,
		},
	}
}

func validMotherDraft() *Draft {
	past := time.Now().AddDate(0, -1, 0)
	return &Draft{
		Email:    "mae@example.com",
		Password: "segredo123",
		Mother: MotherDetails{
			Name:                  "Ana",
			Phone:                 "+5583999990001",
			Birthday:              datePtr(time.Date(1988, 3, 10, 0, 0, 0, 0, time.UTC)),
			Role:                  RoleMotherOfPreterm,
			Origin:                "indicação médica",
			BirthWeeks:            "30",
			BirthDate:             &past,
			City:                  "João Pessoa",
			State:                 "PB",
			HasPartner:            boolPtr(true),
			CurrentGestationCount: "1",
		},
	}
}

func TestMotherRulesConditionalRequiredness(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *Draft)
		wantField string
	}{
		{
			name:      "pregnant_missing_weeks",
			mutate:    func(d *Draft) { d.Mother.WeeksPregnant = "" },
			wantField: "semanas_gestante",
		},
		{
			name:      "pregnant_missing_possible_birth_date",
			mutate:    func(d *Draft) { d.Mother.PossibleBirthDate = nil },
			wantField: "data_provavel_parto",
		},
		{
			name: "pregnant_birth_date_in_past_rejected",
			mutate: func(d *Draft) {
				past := time.Now().AddDate(0, -1, 0)
				d.Mother.PossibleBirthDate = &past
			},
			wantField: "data_provavel_parto",
		},
		{
			name: "social_media_origin_requires_sub_origin",
			mutate: func(d *Draft) {
				d.Mother.Origin = OriginSocialMedia
				d.Mother.SocialMedia = ""
			},
			wantField: "veiculo_midia",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validPregnantDraft()
			tt.mutate(d)
			verr := Evaluate(MotherRules, d)
			if verr == nil {
				t.Fatal("expected validation error, got none")
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("expected field %q in %v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestMotherRulesBirthTrack(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(d *Draft)
		wantField string
	}{
		{
			name:      "missing_birth_weeks",
			mutate:    func(d *Draft) { d.Mother.BirthWeeks = "" },
			wantField: "semanas_gestacao",
		},
		{
			name: "birth_date_in_future_rejected",
			mutate: func(d *Draft) {
				future := time.Now().AddDate(0, 1, 0)
				d.Mother.BirthDate = &future
			},
			wantField: "data_parto",
		},
		{
			name:      "missing_city",
			mutate:    func(d *Draft) { d.Mother.City = "" },
			wantField: "cidade",
		},
		{
			name:      "missing_partner_answer",
			mutate:    func(d *Draft) { d.Mother.HasPartner = nil },
			wantField: "companheiro",
		},
		{
			name:      "gestation_count_below_one",
			mutate:    func(d *Draft) { d.Mother.CurrentGestationCount = "0" },
			wantField: "quantidade_gestacao",
		},
		{
			name:      "gestation_count_not_integer",
			mutate:    func(d *Draft) { d.Mother.CurrentGestationCount = "dois" },
			wantField: "quantidade_gestacao",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validMotherDraft()
			tt.mutate(d)
			verr := Evaluate(MotherRules, d)
			if verr == nil {
				t.Fatal("expected validation error, got none")
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("expected field %q in %v", tt.wantField, verr.Fields)
			}
		})
	}
}

// Fields of the other track must never be demanded: a valid pregnant draft
// passes with every birth-track field empty, and vice versa.
func TestMotherRulesOtherTrackNotRequired(t *testing.T) {
	if verr := Evaluate(MotherRules, validPregnantDraft()); verr != nil {
		t.Errorf("pregnant draft should pass, got %v", verr.Fields)
	}
	if verr := Evaluate(MotherRules, validMotherDraft()); verr != nil {
		t.Errorf("mother draft should pass, got %v", verr.Fields)
	}

	// Healthcare workers answer neither track.
	d := validPregnantDraft()
	d.Mother.Role = RoleHealthcareWorker
	d.Mother.clearConditional()
	if verr := Evaluate(MotherRules, d); verr != nil {
		t.Errorf("healthcare worker draft should pass, got %v", verr.Fields)
	}
}

func TestBabyRules(t *testing.T) {
	valid := BabyDraft{
		Name:           "Bia",
		Birthday:       datePtr(time.Now().AddDate(0, -1, 0)),
		Weight:         "1800",
		BirthType:      "normal",
		Complications:  boolPtr(false),
		GestationWeeks: "30",
		GestationDays:  "4",
		Apgar1:         "8",
		Apgar2:         "9",
		BirthLocation:  "UTI",
	}
	if fields := babyRules(&valid); len(fields) != 0 {
		t.Fatalf("valid baby should pass, got %v", fields)
	}

	tests := []struct {
		name      string
		mutate    func(b *BabyDraft)
		wantField string
	}{
		{"missing_name", func(b *BabyDraft) { b.Name = "" }, "nome"},
		{"weight_not_numeric", func(b *BabyDraft) { b.Weight = "dois quilos" }, "peso"},
		{"weight_zero", func(b *BabyDraft) { b.Weight = "0" }, "peso"},
		{"weeks_below_range", func(b *BabyDraft) { b.GestationWeeks = "23" }, "semanas_gest"},
		{"weeks_above_range", func(b *BabyDraft) { b.GestationWeeks = "37" }, "semanas_gest"},
		{"days_above_range", func(b *BabyDraft) { b.GestationDays = "7" }, "dias_gest"},
		{"missing_complications_answer", func(b *BabyDraft) { b.Complications = nil }, "complicacoes"},
		{"missing_apgar", func(b *BabyDraft) { b.Apgar1 = "" }, "apgar1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			fields := babyRules(&b)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("expected field %q in %v", tt.wantField, fields)
			}
		})
	}
}
