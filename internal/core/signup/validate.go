package signup

import (
	"strconv"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

// ValidateRegistration re-checks a finalized payload on the server side. The
// wizard guarantees these properties for its own output, but the API cannot
// trust arbitrary callers, so a payload that fails here is rejected before
// any transaction is opened.
func ValidateRegistration(p domain.RegistrationPayload) error {
	fields := map[string]string{}

	if p.Mother.Email == "" {
		fields["email"] = msgRequired
	}
	if p.Password == "" {
		fields["senha"] = msgRequired
	}
	if p.Mother.Name == "" {
		fields["nome"] = msgRequired
	}
	if p.Mother.Category == "" {
		fields["categoria"] = msgRequired
	}

	switch p.Mother.Category {
	case domain.CategoryPregnant:
		if p.Mother.WeeksPregnant == nil || *p.Mother.WeeksPregnant < 0 {
			fields["semanas_gestante"] = msgRequired
		}
		if p.Mother.PossibleBirthDate == nil {
			fields["data_provavel_parto"] = msgRequired
		}
		// Mutual exclusivity: the birth track must be absent.
		if p.Mother.BirthWeeks != nil || p.Mother.BirthDate != nil || p.Mother.GestationCount != nil {
			fields["categoria"] = "campos de parto não se aplicam a gestantes"
		}
		if len(p.Babies) > 0 {
			fields["bebes"] = "gestantes não cadastram bebês"
		}
	case domain.CategoryMotherOfPreterm:
		if p.Mother.BirthWeeks == nil {
			fields["semanas_gestacao"] = msgRequired
		}
		if p.Mother.BirthDate == nil {
			fields["data_parto"] = msgRequired
		}
		if p.Mother.GestationCount == nil || *p.Mother.GestationCount < 1 {
			fields["quantidade_gestacao"] = msgRequired
		}
		if p.Mother.WeeksPregnant != nil || p.Mother.PossibleBirthDate != nil {
			fields["categoria"] = "campos de gestação não se aplicam a mães"
		}
	}

	for i, b := range p.Babies {
		prefix := "bebes[" + strconv.Itoa(i) + "]."
		if b.Name == "" {
			fields[prefix+"nome"] = msgRequired
		}
		if b.Weight < 0 {
			fields[prefix+"peso"] = msgNumeric
		}
		if b.GestationDays < 0 || b.GestationDays > 6 {
			fields[prefix+"dias_gest"] = "deve estar entre 0 e 6"
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
