package http

import (
	"encoding/json"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/utils"
	"github.com/lanaseq/lanaseq/models"
)

func (h *Handler) getProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	protocol, err := h.storages.ProtocolRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("protocol lookup ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, protocol, models.Read) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	_, _ = utils.WriteJSON(w, protocol, http.StatusOK)
}

func (h *Handler) createProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var protocol models.Protocol
	if err := json.NewDecoder(r.Body).Decode(&protocol); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}
	protocol.ID = 0

	authentication := h.currentAuthentication(r)
	if authentication == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	if protocol.OwnerID == 0 {
		protocol.OwnerID = authentication.UserID
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, protocol, models.Write) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	created, err := h.storages.ProtocolRepository.Create(ctx, protocol)
	if err != nil {
		log.Err(err).Str("name", protocol.Name).Msg("protocol creation ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	var request models.Protocol
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	existing, err := h.storages.ProtocolRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("protocol lookup ended with error")
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

	saved, err := h.storages.ProtocolRepository.Save(ctx, existing)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("saving protocol ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, saved, http.StatusOK)
}
