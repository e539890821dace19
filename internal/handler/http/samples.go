package http

import (
	"encoding/json"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/utils"
	"github.com/lanaseq/lanaseq/models"
)

func (h *Handler) getSample(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	sample, err := h.storages.SampleRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("sample lookup ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, sample, models.Read) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	_, _ = utils.WriteJSON(w, sample, http.StatusOK)
}

func (h *Handler) createSample(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var sample models.Sample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}
	sample.ID = 0

	authentication := h.currentAuthentication(r)
	if authentication == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	if sample.OwnerID == 0 {
		sample.OwnerID = authentication.UserID
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, sample, models.Write) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	created, err := h.storages.SampleRepository.Create(ctx, sample)
	if err != nil {
		log.Err(err).Str("name", sample.Name).Msg("sample creation ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateSample(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	var request models.Sample
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	existing, err := h.storages.SampleRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("sample lookup ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, existing, models.Write) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	existing.Name = request.Name
	existing.ProtocolID = request.ProtocolID

	saved, err := h.storages.SampleRepository.Save(ctx, existing)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("saving sample ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, saved, http.StatusOK)
}
