package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/skytracker/skytracker/internal/api/models"
	"github.com/skytracker/skytracker/internal/api/response"
)

// maxCredentialBody bounds the POST /v1/credential body.
const maxCredentialBody = 4 << 10

// CredentialService validates, stores and forgets the API key.
type CredentialService interface {
	Unlocked() bool
	Confirm(ctx context.Context, token string, persist bool) error
	Forget(ctx context.Context) error
}

// CredentialHandler serves the credential gate.
type CredentialHandler struct {
	service CredentialService
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(service CredentialService) *CredentialHandler {
	return &CredentialHandler{service: service}
}

// State handles GET /v1/credential.
func (h *CredentialHandler) State(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.CredentialState{Unlocked: h.service.Unlocked()})
}

// Submit handles POST /v1/credential. The key is validated against the
// vendor; the previous session is kept when it is rejected.
func (h *CredentialHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input models.CredentialRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCredentialBody)).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if err := h.service.Confirm(r.Context(), input.APIKey, input.Save); err != nil {
		fail(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Bool("saved", input.Save).Msg("api key accepted")
	response.JSON(w, r, http.StatusOK, models.CredentialState{Unlocked: true})
}

// Forget handles DELETE /v1/credential.
func (h *CredentialHandler) Forget(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Forget(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w, r)
}
