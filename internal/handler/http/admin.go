package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/service"
	"github.com/ykarimov/authgate/internal/store"
	"github.com/ykarimov/authgate/internal/utils"
	"github.com/ykarimov/authgate/models"
)

func (h *Handler) getAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.services.UserService.ListUsers(ctx)
	if err != nil {
		h.writeFailure(w, r, err, "listing users")
		return
	}

	sanitized := make([]models.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitize())
	}

	utils.WriteJSON(w, models.UsersResponse{Success: true, Users: sanitized}, http.StatusOK)
}

func (h *Handler) getUserByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromURL(w, r)
	if !ok {
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Int64("id", userID).Msg("no user was found")
			utils.WriteError(w, "User not found", http.StatusNotFound)
			return
		default:
			h.writeFailure(w, r, err, "user lookup")
			return
		}
	}

	utils.WriteJSON(w, models.UserResponse{Success: true, User: user.Sanitize()}, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromURL(w, r)
	if !ok {
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Int64("id", userID).Msg("no user was found")
			utils.WriteError(w, "User not found", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrAdminProtected):
			log.Err(err).Int64("id", userID).Msg("refused to delete admin account")
			utils.WriteError(w, "Admins cannot be deleted", http.StatusForbidden)
			return
		default:
			h.writeFailure(w, r, err, "user deletion")
			return
		}
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "User deleted successfully"}, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromURL(w, r)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.UpdateUser(ctx, userID, models.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Int64("id", userID).Msg("no user was found")
			utils.WriteError(w, "User not found", http.StatusNotFound)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Int64("id", userID).Msg("email already exists")
			utils.WriteError(w, "Email already in use", http.StatusConflict)
			return
		default:
			h.writeFailure(w, r, err, "user update")
			return
		}
	}

	utils.WriteJSON(w, models.UserResponse{
		Success: true,
		Message: "User updated successfully",
		User:    updated.Sanitize(),
	}, http.StatusOK)
}

// userIDFromURL parses the {id} URL parameter. A non-numeric id cannot match
// any record, so it reports 404 like a missing user. On failure the error
// response has already been written and ok is false.
func (h *Handler) userIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("id", idParam).Msg("malformed user id in URL")
		utils.WriteError(w, "User not found", http.StatusNotFound)
		return 0, false
	}

	return userID, true
}
