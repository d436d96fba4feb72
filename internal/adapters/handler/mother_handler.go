package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/adapters/middleware"
	"github.com/milkwise/mother-care-service/internal/adapters/respond"
	"github.com/milkwise/mother-care-service/internal/core/domain"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

// MotherHandler serves the registration create/update transactions and the
// aggregate profile read.
type MotherHandler struct {
	registration ports.RegistrationService
	log          zerolog.Logger
}

func NewMotherHandler(registration ports.RegistrationService, log zerolog.Logger) *MotherHandler {
	return &MotherHandler{registration: registration, log: log}
}

type createMotherRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
	Name     string `json:"nome"`
	Phone    string `json:"whatsapp"`
	// categoria is the stored value; userType is what the mobile wizard
	// sends. Either works.
	Category string `json:"categoria"`
	UserType string `json:"userType"`

	Origin      string `json:"localizacao"`
	SocialMedia string `json:"veiculo_midia"`

	Birthday          *time.Time `json:"data_nascimento"`
	WeeksPregnant     *int       `json:"semanas_gestante"`
	PossibleBirthDate *time.Time `json:"data_provavel_parto"`
	BirthWeeks        *int       `json:"semanas_gestacao"`
	BirthDate         *time.Time `json:"data_parto"`
	HasPartner        bool       `json:"companheiro"`
	GestationCount    *int       `json:"quantidade_gestacao"`
	City              string     `json:"cidade"`
	State             string     `json:"estado"`

	Babies   []createBabyRequest `json:"bebes"`
	BabiesEn []createBabyRequest `json:"babies"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Create handles POST /maes: the all-or-nothing signup transaction.
func (h *MotherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMotherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	babies := req.Babies
	if len(babies) == 0 {
		babies = req.BabiesEn
	}

	payload := domain.RegistrationPayload{
		Mother: domain.Mother{
			Email:             req.Email,
			Name:              req.Name,
			Phone:             req.Phone,
			Category:          normalizeCategory(req.Category, req.UserType),
			Origin:            req.Origin,
			SocialMedia:       req.SocialMedia,
			Birthday:          req.Birthday,
			WeeksPregnant:     req.WeeksPregnant,
			PossibleBirthDate: req.PossibleBirthDate,
			BirthWeeks:        req.BirthWeeks,
			BirthDate:         req.BirthDate,
			HasPartner:        req.HasPartner,
			GestationCount:    req.GestationCount,
		},
		Password: req.Password,
		Babies:   make([]domain.Baby, 0, len(babies)),
	}
	if req.City != "" || req.State != "" {
		payload.Mother.Location = req.City + " - " + req.State
	}
	for _, b := range babies {
		payload.Babies = append(payload.Babies, b.toDomain())
	}

	token, err := h.registration.Register(r.Context(), payload)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

type updateMotherRequest struct {
	Email             *string    `json:"email"`
	Name              *string    `json:"nome"`
	HasPartner        *bool      `json:"companheiro"`
	Birthday          *time.Time `json:"data_nascimento"`
	Phone             *string    `json:"whatsapp"`
	PossibleBirthDate *time.Time `json:"data_provavel_parto"`
	City              *string    `json:"cidade"`
	State             *string    `json:"estado"`

	Babies []updateBabyRequest `json:"bebes"`
}

type updateBabyRequest struct {
	ID            int64      `json:"id"`
	Name          *string    `json:"nome"`
	Birthday      *time.Time `json:"data_parto"`
	Weight        *int       `json:"peso"`
	VaginalBirth  *bool      `json:"parto_normal"`
	BirthLocation *string    `json:"local_nascimento"`
}

// Update handles PUT /maes: the partial update transaction followed by the
// reloaded aggregate. The target mother is always the authenticated one.
func (h *MotherHandler) Update(w http.ResponseWriter, r *http.Request) {
	motherID, ok := middleware.MotherID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	var req updateMotherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	update := domain.MotherUpdate{
		Email:             req.Email,
		Name:              req.Name,
		HasPartner:        req.HasPartner,
		Birthday:          req.Birthday,
		Phone:             req.Phone,
		PossibleBirthDate: req.PossibleBirthDate,
		City:              req.City,
		State:             req.State,
	}
	babies := make([]domain.BabyUpdate, 0, len(req.Babies))
	for _, b := range req.Babies {
		babies = append(babies, domain.BabyUpdate{
			ID:            b.ID,
			Name:          b.Name,
			Birthday:      b.Birthday,
			Weight:        b.Weight,
			VaginalBirth:  b.VaginalBirth,
			BirthLocation: b.BirthLocation,
		})
	}

	agg, err := h.registration.Update(r.Context(), motherID, update, babies)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, agg)
}

// Get handles GET /maes/{id}. A mother may only read her own aggregate; a
// foreign id is rejected, not silently redirected.
func (h *MotherHandler) Get(w http.ResponseWriter, r *http.Request) {
	motherID, ok := middleware.MotherID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	requested, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}
	if requested != motherID {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	agg, err := h.registration.Aggregate(r.Context(), motherID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, agg)
}

// normalizeCategory folds the wizard's user-type labels onto stored
// categories.
func normalizeCategory(category, userType string) domain.Category {
	if category != "" {
		return domain.Category(category)
	}
	switch userType {
	case "Gestante", "Pregnant":
		return domain.CategoryPregnant
	case "Mae", "Mãe", "Mother":
		return domain.CategoryMotherOfPreterm
	case "Profissional", "HealthcareWorker":
		return domain.CategoryHealthcareWorker
	case "":
		return ""
	default:
		return domain.CategoryOther
	}
}
