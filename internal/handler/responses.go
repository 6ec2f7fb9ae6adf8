package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ShortfallResponse is returned when an ascension lacks inspiration
type ShortfallResponse struct {
	Error     string `json:"error"`
	Level     int    `json:"level"`
	Required  int    `json:"required"`
	Current   int    `json:"current"`
	Shortfall int    `json:"shortfall"`
}

// LoginLimitResponse is returned when the daily login limit is reached
type LoginLimitResponse struct {
	Error   string    `json:"error"`
	Limit   int       `json:"limit"`
	ResetAt time.Time `json:"reset_at"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeResponseFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteResponseFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped response.
// Shortfall and login-limit errors carry extra fields in the body. Cancelled
// requests are logged at debug and get no body.
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	log := logger.FromContext(r.Context())
	if errors.Is(err, context.Canceled) || r.Context().Err() != nil {
		log.Debug(LogMsgRequestCancelled, "action", action, "error", err)
		if r.Context().Err() == nil {
			w.WriteHeader(StatusClientClosedRequest)
		}
		return
	}
	status, msg := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(action, "error", err)
	} else {
		log.Debug(action, "error", err, "status", status)
	}

	var shortfall *domain.ShortfallError
	if errors.As(err, &shortfall) {
		respondJSON(w, status, ShortfallResponse{
			Error:     msg,
			Level:     shortfall.Level,
			Required:  shortfall.Required,
			Current:   shortfall.Current,
			Shortfall: shortfall.Shortfall,
		})
		return
	}

	var limit *domain.LoginLimitError
	if errors.As(err, &limit) {
		resetAt := time.Unix(limit.ResetAt, 0).UTC()
		w.Header().Set(HeaderRetryAfter, retryAfterSeconds(resetAt))
		respondJSON(w, status, LoginLimitResponse{Error: msg, Limit: limit.Limit, ResetAt: resetAt})
		return
	}

	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// that can be shown to the player without leaking internals.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	// Lookups
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInviteNotFound):
		return http.StatusNotFound, ErrMsgInviteNotFoundError
	case errors.Is(err, domain.ErrArtifactNotFound):
		return http.StatusNotFound, ErrMsgArtifactNotFoundError

	// Validation
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidNickname),
		errors.Is(err, domain.ErrPasswordTooShort):
		return http.StatusBadRequest, userMessage(err)
	case errors.Is(err, domain.ErrInsufficientCoins):
		return http.StatusUnprocessableEntity, ErrMsgInsufficientCoinsError
	case errors.Is(err, domain.ErrInsufficientYC):
		return http.StatusUnprocessableEntity, ErrMsgInsufficientYCError
	case errors.Is(err, domain.ErrInsufficientInspiration):
		return http.StatusUnprocessableEntity, ErrMsgInsufficientInspirationError
	case errors.Is(err, domain.ErrQuestLocked):
		return http.StatusForbidden, ErrMsgQuestLockedError
	case errors.Is(err, domain.ErrItemInactive):
		return http.StatusUnprocessableEntity, ErrMsgItemInactiveError
	case errors.Is(err, domain.ErrVerificationRequired):
		return http.StatusUnprocessableEntity, ErrMsgVerificationRequiredError
	case errors.Is(err, domain.ErrVerificationNotAllowed):
		return http.StatusUnprocessableEntity, ErrMsgVerificationNotAllowedError
	case errors.Is(err, domain.ErrExamRequired):
		return http.StatusUnprocessableEntity, ErrMsgExamRequiredError
	case errors.Is(err, domain.ErrQuestAlreadyCompleted):
		return http.StatusConflict, ErrMsgQuestAlreadyCompletedError
	case errors.Is(err, domain.ErrMaxLevel):
		return http.StatusConflict, ErrMsgMaxLevelError
	case errors.Is(err, domain.ErrAscensionConflict):
		return http.StatusConflict, ErrMsgAscensionConflictError
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusConflict, ErrMsgOutOfStockError
	case errors.Is(err, domain.ErrNicknameTaken):
		return http.StatusConflict, ErrMsgNicknameTakenError
	case errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict, ErrMsgDuplicateKeyError

	// Verification lifecycle
	case errors.Is(err, domain.ErrVerificationExpired):
		return http.StatusGone, ErrMsgVerificationExpiredError
	case errors.Is(err, domain.ErrVerificationCancelled):
		return http.StatusGone, ErrMsgVerificationCancelledError
	case errors.Is(err, domain.ErrArtifactAlreadyResolved):
		return http.StatusConflict, ErrMsgArtifactResolvedError
	case errors.Is(err, domain.ErrArtifactConsumed):
		return http.StatusConflict, ErrMsgArtifactConsumedError
	case errors.Is(err, domain.ErrArtifactNotVerified):
		return http.StatusConflict, ErrMsgArtifactNotVerifiedError
	case errors.Is(err, domain.ErrArtifactMismatch):
		return http.StatusConflict, ErrMsgArtifactMismatchError

	// Auth
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgInvalidCredentialsError
	case errors.Is(err, domain.ErrInviteTokenMismatch):
		return http.StatusForbidden, ErrMsgInviteTokenMismatchError
	case errors.Is(err, domain.ErrInviteNotLinked):
		return http.StatusForbidden, ErrMsgInviteNotLinkedError
	case errors.Is(err, domain.ErrInviteExpired):
		return http.StatusGone, ErrMsgInviteExpiredError

	// Limits
	case errors.Is(err, domain.ErrLoginLimitExceeded):
		return http.StatusTooManyRequests, ErrMsgLoginLimitError

	// Backend
	case errors.Is(err, domain.ErrDatabaseError),
		errors.Is(err, domain.ErrConnectionTimeout):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// userMessage returns the wrapped detail for validation errors, which is safe to show
func userMessage(err error) string {
	msg := err.Error()
	if msg == "" || len(msg) > maxUserMessageLength {
		return ErrMsgInvalidRequestSummary
	}
	return msg
}

func retryAfterSeconds(resetAt time.Time) string {
	secs := int(time.Until(resetAt).Seconds())
	if secs < 0 {
		secs = 0
	}
	return strconv.Itoa(secs)
}
