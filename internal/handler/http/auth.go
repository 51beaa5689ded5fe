package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/service"
	"github.com/ykarimov/authgate/internal/store"
	"github.com/ykarimov/authgate/internal/utils"
	"github.com/ykarimov/authgate/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	_, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			utils.WriteError(w, "User already exists", http.StatusConflict)
			return
		default:
			h.writeFailure(w, r, err, "user registration")
			return
		}
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "User registered successfully"}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		// An unknown email and a wrong password are indistinguishable
		// to the caller.
		case errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("no user was found/wrong password")
			utils.WriteError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		default:
			h.writeFailure(w, r, err, "user login")
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Str("email", foundUser.Email).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token.SignedString)
	utils.WriteJSON(w, models.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token.SignedString,
		User:    foundUser.Sanitize(),
	}, http.StatusOK)
}

// logout clears the session cookie. The token itself remains
// cryptographically valid until expiry; there is no server-side revocation.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.Response{Success: true, Message: "Logout successful"}, http.StatusOK)
}

// checkUser returns the authenticated principal attached by the guard.
func (h *Handler) checkUser(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no principal in request context")
		utils.WriteError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.UserResponse{Success: true, User: user.Sanitize()}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, req.Email, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			utils.WriteError(w, "User not found", http.StatusNotFound)
			return
		default:
			h.writeFailure(w, r, err, "password reset")
			return
		}
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "Password reset successful"}, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no principal in request context")
		utils.WriteError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.UpdateProfile(ctx, user.UserID, models.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			utils.WriteError(w, "Email already in use", http.StatusConflict)
			return
		default:
			h.writeFailure(w, r, err, "profile update")
			return
		}
	}

	utils.WriteJSON(w, models.UserResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    updated.Sanitize(),
	}, http.StatusOK)
}

// setSessionCookie delivers the session token as an HTTP-only cookie whose
// MaxAge matches the token lifetime.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authCfg.TokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.authCfg.CookieSecure,
	})
}

// clearSessionCookie expires the session cookie on the client.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.authCfg.CookieSecure,
	})
}
