package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrAlreadySettled),
		errors.Is(err, apperrors.ErrOverpayment),
		errors.Is(err, apperrors.ErrAmountLocked),
		errors.Is(err, apperrors.ErrHasDependents),
		errors.Is(err, apperrors.ErrBatchFailed):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondWithError writes err as a JSON error body. Client errors are logged at
// warn level with their message; server errors are logged in full and hidden
// behind failureMsg.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failureMsg})
		return
	}

	logger.Warn(failureMsg, slog.String("error", err.Error()), slog.Int("status", status))
	body := gin.H{"error": err.Error()}
	var overpay *apperrors.OverpaymentError
	if errors.As(err, &overpay) {
		body["remaining"] = overpay.Remaining
	}
	c.JSON(status, body)
}

// requireUserID reads the authenticated user or writes a 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
