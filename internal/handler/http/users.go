package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/utils"
	"github.com/lanaseq/lanaseq/models"
)

// idFromRequest parses the {id} route parameter.
func idFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// userRequest is the JSON body of user creation and update requests. The
// password is write-only: it is hashed before storage and never echoed back.
type userRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Active   bool   `json:"active"`
	Manager  bool   `json:"manager"`
	Admin    bool   `json:"admin"`
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	user, err := h.storages.UserRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user lookup ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, user, models.Read) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request userRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}
	if request.Email == "" || request.Password == "" {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	user := models.User{
		Email:   request.Email,
		Name:    request.Name,
		Active:  request.Active,
		Manager: request.Manager,
		Admin:   request.Admin,
	}

	// The route policy already requires a manager; the evaluator adds the
	// admin-grant rule on top.
	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, user, models.Write) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Err(err).Msg("hashing password failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	user.HashedPassword = hash

	created, err := h.storages.UserRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	var request userRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	existing, err := h.storages.UserRepository.FindByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user lookup ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	updated := existing
	updated.Email = request.Email
	updated.Name = request.Name
	updated.Active = request.Active
	updated.Manager = request.Manager
	updated.Admin = request.Admin

	// Both the stored and the submitted state must pass: the first refuses
	// touching accounts above the caller, the second refuses raising an
	// account above the caller.
	session, _ := h.session(r)
	if !h.services.Authorization.HasPermission(ctx, session, existing, models.Write) ||
		!h.services.Authorization.HasPermission(ctx, session, updated, models.Write) {
		writeError(w, errCodeAccessDenied, http.StatusForbidden)
		return
	}

	if request.Password != "" {
		hash, err := utils.HashPassword(request.Password)
		if err != nil {
			log.Err(err).Msg("hashing password failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		updated.HashedPassword = hash
	}

	saved, err := h.storages.UserRepository.Save(ctx, updated)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("saving user ended with error")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	_, _ = utils.WriteJSON(w, saved, http.StatusOK)
}

// currentAuthentication returns the authentication of the request's session.
func (h *Handler) currentAuthentication(r *http.Request) *security.Authentication {
	session, ok := h.session(r)
	if !ok {
		return nil
	}
	return session.Authentication()
}
