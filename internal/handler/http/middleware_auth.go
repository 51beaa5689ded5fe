// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, authorization, logging, and tracing
// concerns are all handled at this layer before requests are forwarded
// to the service layer.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/store"
	"github.com/ykarimov/authgate/internal/utils"
	"github.com/ykarimov/authgate/models"
)

// resolveUser runs the shared token-to-principal resolution that all three
// guard middlewares are built on, keeping the failure ordering identical
// everywhere:
//
//  1. session cookie absent                  → 401 Unauthorized
//  2. token signature/expiry invalid         → 401 Unauthorized
//  3. token subject no longer exists in the
//     store (deleted since issuance)         → 404 Not Found
//
// The token is re-verified and the user re-fetched on every invocation, so
// role changes and deletions take effect immediately. On failure the error
// response has already been written and ok is false.
func (h *Handler) resolveUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	cookie, err := r.Cookie(h.authCfg.CookieName)
	if err != nil || cookie.Value == "" {
		log.Err(ErrNoTokenCookie).Send()
		utils.WriteError(w, "Unauthorized: no token provided", http.StatusUnauthorized)
		return models.User{}, false
	}

	token, err := h.services.AuthService.ParseToken(ctx, cookie.Value)
	if err != nil {
		log.Err(err).Msg("token verification failed")
		utils.WriteError(w, "Unauthorized: invalid or expired token", http.StatusUnauthorized)
		return models.User{}, false
	}

	user, err := h.services.AuthService.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Int64("id", token.UserID).Msg("token subject no longer exists")
			utils.WriteError(w, "User not found", http.StatusNotFound)
			return models.User{}, false
		}

		log.Err(err).Int64("id", token.UserID).Msg("error resolving token subject")
		utils.WriteError(w, "Internal server error", http.StatusInternalServerError)
		return models.User{}, false
	}

	return user, true
}

// authenticate is the authenticated-user guard. On success it stores the
// resolved principal in the request context under [utils.UserCtxKey] before
// delegating to the next handler.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.resolveUser(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin is the admin-only guard: the authenticated-user resolution
// followed by a role check. A valid non-admin identity is rejected with
// 403 Forbidden after the ordering above, so a missing or invalid token
// still reports 401 and a deleted user still reports 404.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.resolveUser(w, r)
		if !ok {
			return
		}

		if !user.IsAdmin() {
			logger.FromRequest(r).Error().
				Int64("id", user.UserID).
				Str("role", user.Role.String()).
				Msg("admin-only route refused")
			utils.WriteError(w, "Unauthorized: user is not an admin", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole returns a guard that admits only users holding exactly the
// given role. The rejection message names the expected role.
func (h *Handler) requireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := h.resolveUser(w, r)
			if !ok {
				return
			}

			if user.Role != role {
				logger.FromRequest(r).Error().
					Int64("id", user.UserID).
					Str("role", user.Role.String()).
					Str("expected_role", role.String()).
					Msg("role-gated route refused")
				utils.WriteError(w, fmt.Sprintf("Unauthorized: user is not a %s", role), http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), utils.UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
