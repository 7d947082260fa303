package handler

import (
	"net/http"

	"github.com/severedgames/mysteryparty/internal/api/middleware"
	"github.com/severedgames/mysteryparty/internal/api/response"
	"github.com/severedgames/mysteryparty/internal/services/persona"
)

// PersonaHandler handles persona and clue endpoints
type PersonaHandler struct {
	personaService *persona.Service
}

// NewPersonaHandler creates a new persona handler
func NewPersonaHandler(personaService *persona.Service) *PersonaHandler {
	return &PersonaHandler{
		personaService: personaService,
	}
}

// List handles GET /api/personas
func (h *PersonaHandler) List(w http.ResponseWriter, r *http.Request) {
	personas, err := h.personaService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := response.PersonaList{Personas: make([]response.Persona, len(personas))}
	for i, p := range personas {
		out.Personas[i] = response.PersonaFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}

// MyClues handles GET /api/clues
func (h *PersonaHandler) MyClues(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	clues, err := h.personaService.CluesFor(r.Context(), user.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Clues{Clues: clues})
}

// MurderClues handles GET /api/clues/murder
func (h *PersonaHandler) MurderClues(w http.ResponseWriter, r *http.Request) {
	clues, err := h.personaService.MurderClues(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MurderCluesFromModel(clues))
}
