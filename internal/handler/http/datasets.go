package http

import (
	"encoding/json"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/utils"
	"github.com/lanaseq/lanaseq/models"
)

// listDatasets returns the datasets owned by the current principal, newest
// first.
func (h *Handler) listDatasets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	authentication := h.currentAuthentication(r)
	if authentication == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	datasets, err := h.storages.DatasetRepository.ListByOwner(ctx, authentication.UserID)
	if err != nil {
		log.Err(err).Int64("owner_id", authentication.UserID).Msg("listing datasets ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, datasets, http.StatusOK)
}

func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	dataset, err := h.storages.DatasetRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("dataset lookup ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, dataset, models.Read) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	_, _ = utils.WriteJSON(w, dataset, http.StatusOK)
}

func (h *Handler) createDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var dataset models.Dataset
	if err := json.NewDecoder(r.Body).Decode(&dataset); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}
	dataset.ID = 0

	authentication := h.currentAuthentication(r)
	if authentication == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	if dataset.OwnerID == 0 {
		dataset.OwnerID = authentication.UserID
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, dataset, models.Write) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	created, err := h.storages.DatasetRepository.Create(ctx, dataset)
	if err != nil {
		log.Err(err).Str("name", dataset.Name).Msg("dataset creation ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateDataset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	var request models.Dataset
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	existing, err := h.storages.DatasetRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("dataset lookup ended with error")
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
	existing.Editable = request.Editable

	saved, err := h.storages.DatasetRepository.Save(ctx, existing)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("saving dataset ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, saved, http.StatusOK)
}
