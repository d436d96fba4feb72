package signup

import (
	"regexp"
	"strconv"
	"time"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

// Rule is one declarative required-ness entry: the field is checked only
// when the predicate holds against the accumulated draft. Check returns an
// empty string when the field is acceptable.
type Rule struct {
	Field string
	When  func(d *Draft) bool
	Check func(d *Draft) string
}

const (
	msgRequired = "campo obrigatório"
	msgNumeric  = "deve ser um número positivo"
	msgInteger  = "deve ser um número inteiro"
)

var numericText = regexp.MustCompile(`^\d+$`)

func always(*Draft) bool { return true }

func isPregnant(d *Draft) bool { return d.Mother.Role == RolePregnant }
func isMother(d *Draft) bool   { return d.Mother.Role == RoleMotherOfPreterm }

func requiredText(s string) string {
	if s == "" {
		return msgRequired
	}
	return ""
}

func requiredNumber(s string) string {
	if s == "" {
		return msgRequired
	}
	if !numericText.MatchString(s) {
		return msgNumeric
	}
	return ""
}

func requiredDate(t *time.Time) string {
	if t == nil {
		return msgRequired
	}
	return ""
}

// AccountRules validate the first wizard step. No conditional logic here.
var AccountRules = []Rule{
	{Field: "email", When: always, Check: func(d *Draft) string { return requiredText(d.Email) }},
	{Field: "senha", When: always, Check: func(d *Draft) string { return requiredText(d.Password) }},
}

// MotherRules validate the mother-details step. The pregnancy-track and
// birth-track entries are guarded by the role predicate so only one group is
// ever evaluated.
var MotherRules = []Rule{
	{Field: "nome", When: always, Check: func(d *Draft) string { return requiredText(d.Mother.Name) }},
	{Field: "whatsapp", When: always, Check: func(d *Draft) string { return requiredText(d.Mother.Phone) }},
	{Field: "data_nascimento", When: always, Check: func(d *Draft) string { return requiredDate(d.Mother.Birthday) }},
	{Field: "categoria", When: always, Check: func(d *Draft) string { return requiredText(string(d.Mother.Role)) }},
	{Field: "localizacao", When: always, Check: func(d *Draft) string { return requiredText(d.Mother.Origin) }},
	{
		Field: "veiculo_midia",
		When:  func(d *Draft) bool { return d.Mother.Origin == OriginSocialMedia },
		Check: func(d *Draft) string { return requiredText(d.Mother.SocialMedia) },
	},

	// Pregnancy track.
	{
		Field: "semanas_gestante",
		When:  isPregnant,
		Check: func(d *Draft) string { return requiredNumber(d.Mother.WeeksPregnant) },
	},
	{
		Field: "data_provavel_parto",
		When:  isPregnant,
		Check: func(d *Draft) string {
			if msg := requiredDate(d.Mother.PossibleBirthDate); msg != "" {
				return msg
			}
			if d.Mother.PossibleBirthDate.Before(todayStart()) {
				return "deve ser uma data futura"
			}
			return ""
		},
	},

	// Birth track.
	{
		Field: "semanas_gestacao",
		When:  isMother,
		Check: func(d *Draft) string { return requiredNumber(d.Mother.BirthWeeks) },
	},
	{
		Field: "data_parto",
		When:  isMother,
		Check: func(d *Draft) string {
			if msg := requiredDate(d.Mother.BirthDate); msg != "" {
				return msg
			}
			if d.Mother.BirthDate.After(time.Now()) {
				return "deve ser uma data passada"
			}
			return ""
		},
	},
	{Field: "cidade", When: isMother, Check: func(d *Draft) string { return requiredText(d.Mother.City) }},
	{Field: "estado", When: isMother, Check: func(d *Draft) string { return requiredText(d.Mother.State) }},
	{
		Field: "companheiro",
		When:  isMother,
		Check: func(d *Draft) string {
			if d.Mother.HasPartner == nil {
				return msgRequired
			}
			return ""
		},
	},
	{
		Field: "quantidade_gestacao",
		When:  isMother,
		Check: func(d *Draft) string {
			if d.Mother.CurrentGestationCount == "" {
				return msgRequired
			}
			n, err := strconv.Atoi(d.Mother.CurrentGestationCount)
			if err != nil {
				return msgInteger
			}
			if n < 1 {
				return "deve ser no mínimo 1"
			}
			return ""
		},
	},
}

// Gestational weeks are offered as a fixed picker, 24 through 36.
func validGestationWeeks(s string) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= 24 && n <= 36
}

// babyRules validates one baby sub-form. Every field is independently
// required; predicates are unconditional because the step itself is only
// reached on the birth track.
func babyRules(b *BabyDraft) map[string]string {
	fields := map[string]string{}
	if msg := requiredText(b.Name); msg != "" {
		fields["nome"] = msg
	}
	if msg := requiredDate(b.Birthday); msg != "" {
		fields["data_parto"] = msg
	}
	if msg := requiredNumber(b.Weight); msg != "" {
		fields["peso"] = msg
	} else if n, _ := strconv.Atoi(b.Weight); n <= 0 {
		fields["peso"] = msgNumeric
	}
	if msg := requiredText(b.BirthType); msg != "" {
		fields["parto_normal"] = msg
	}
	if b.Complications == nil {
		fields["complicacoes"] = msgRequired
	}
	if b.GestationWeeks == "" {
		fields["semanas_gest"] = msgRequired
	} else if !validGestationWeeks(b.GestationWeeks) {
		fields["semanas_gest"] = "deve estar entre 24 e 36"
	}
	if b.GestationDays == "" {
		fields["dias_gest"] = msgRequired
	} else if n, err := strconv.Atoi(b.GestationDays); err != nil || n < 0 || n > 6 {
		fields["dias_gest"] = "deve estar entre 0 e 6"
	}
	if msg := requiredNumber(b.Apgar1); msg != "" {
		fields["apgar1"] = msg
	}
	if msg := requiredNumber(b.Apgar2); msg != "" {
		fields["apgar2"] = msg
	}
	if msg := requiredText(b.BirthLocation); msg != "" {
		fields["local_nascimento"] = msg
	}
	return fields
}

// Evaluate runs a rule set against the draft and collects per-field
// messages. A nil return means the step passed.
func Evaluate(rules []Rule, d *Draft) *domain.ValidationError {
	fields := map[string]string{}
	for _, r := range rules {
		if !r.When(d) {
			continue
		}
		if msg := r.Check(d); msg != "" {
			fields[r.Field] = msg
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

func todayStart() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
