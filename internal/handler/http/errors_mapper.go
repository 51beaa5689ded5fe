package http

import (
	"errors"
	"net/http"

	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/service"
	"github.com/ykarimov/authgate/internal/store"
	"github.com/ykarimov/authgate/internal/utils"
)

// errorStatusMap translates the sentinel errors of the lower layers into
// HTTP status codes at the transport boundary.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidEmail:            http.StatusBadRequest,
	service.ErrPasswordTooShort:        http.StatusBadRequest,
	service.ErrInvalidRole:             http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAdminProtected:          http.StatusForbidden,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

// errorMessageMap supplies the user-visible message for well-known failures.
// Anything absent here is reported with a generic message so that internal
// detail never crosses the boundary.
var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided:     "Invalid data provided",
	service.ErrInvalidEmail:            "Invalid email format",
	service.ErrPasswordTooShort:        "Password is too short",
	service.ErrInvalidRole:             "Invalid role",
	service.ErrWrongPassword:           "Invalid credentials",
	service.ErrTokenIsExpiredOrInvalid: "Unauthorized: invalid or expired token",
	service.ErrAdminProtected:          "Admins cannot be deleted",

	store.ErrEmailAlreadyExists: "User already exists",
	store.ErrNoUserWasFound:     "User not found",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return "Internal server error"
}

// writeFailure logs the failure with its operation name and writes the
// mapped envelope. Handlers that need a non-default mapping (e.g. login
// collapsing "not found" into 401) handle those cases before calling this.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error, operation string) {
	logger.FromRequest(r).Err(err).Str("operation", operation).Msg("request failed")
	utils.WriteError(w, messageFromError(err), statusFromError(err))
}
