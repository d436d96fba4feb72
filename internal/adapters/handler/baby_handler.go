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

// BabyHandler serves baby creation/listing and the per-baby feeding log.
type BabyHandler struct {
	babies   ports.BabyService
	feedings ports.FeedingService
	log      zerolog.Logger
}

func NewBabyHandler(babies ports.BabyService, feedings ports.FeedingService, log zerolog.Logger) *BabyHandler {
	return &BabyHandler{babies: babies, feedings: feedings, log: log}
}

type createBabyRequest struct {
	Name           string     `json:"nome"`
	Birthday       *time.Time `json:"data_parto"`
	Weight         int        `json:"peso"`
	VaginalBirth   bool       `json:"parto_normal"`
	Complications  bool       `json:"complicacoes"`
	GestationWeeks int        `json:"semanas_gest"`
	GestationDays  int        `json:"dias_gest"`
	Apgar1         *int       `json:"apgar1"`
	Apgar2         *int       `json:"apgar2"`
	BirthLocation  string     `json:"local_nascimento"`
}

func (b createBabyRequest) toDomain() domain.Baby {
	return domain.Baby{
		Name:           b.Name,
		Birthday:       b.Birthday,
		Weight:         b.Weight,
		VaginalBirth:   b.VaginalBirth,
		Complications:  b.Complications,
		GestationWeeks: b.GestationWeeks,
		GestationDays:  b.GestationDays,
		Apgar1:         b.Apgar1,
		Apgar2:         b.Apgar2,
		BirthLocation:  b.BirthLocation,
		// The unit the baby is registered at defaults to its birth unit.
		RegistrationLocation: b.BirthLocation,
	}
}

type createBabyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// Create handles POST /bebes.
func (h *BabyHandler) Create(w http.ResponseWriter, r *http.Request) {
	motherID, ok := middleware.MotherID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	var req createBabyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	baby, err := h.babies.Create(r.Context(), motherID, req.toDomain())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, createBabyResponse{ID: baby.ID, Name: baby.Name})
}

// List handles GET /bebes.
func (h *BabyHandler) List(w http.ResponseWriter, r *http.Request) {
	motherID, ok := middleware.MotherID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	babies, err := h.babies.List(r.Context(), motherID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, babies)
}

type createFeedingRequest struct {
	Date         *time.Time `json:"data_hora"`
	MilkQuantity float64    `json:"qtd_leite"`
	Breast       string     `json:"mama"`
	Duration     int        `json:"duracao"`
}

// AddFeeding handles POST /bebes/{bebe_id}/ordenhas.
func (h *BabyHandler) AddFeeding(w http.ResponseWriter, r *http.Request) {
	motherID, ok := middleware.MotherID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	babyID, err := strconv.ParseInt(chi.URLParam(r, "bebe_id"), 10, 64)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var req createFeedingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	entry := domain.FeedingEntry{
		MilkQuantity: req.MilkQuantity,
		Breast:       req.Breast,
		Duration:     req.Duration,
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	created, err := h.feedings.Add(r.Context(), motherID, babyID, entry)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

// ListFeedings handles GET /bebes/{bebe_id}/ordenhas.
func (h *BabyHandler) ListFeedings(w http.ResponseWriter, r *http.Request) {
	motherID, ok := middleware.MotherID(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "não autorizado")
		return
	}

	babyID, err := strconv.ParseInt(chi.URLParam(r, "bebe_id"), 10, 64)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	view, err := h.feedings.ListForBaby(r.Context(), motherID, babyID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, view)
}
