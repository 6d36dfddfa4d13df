package transport

import (
	"net/http"

	"localmarket/internal/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userIDFromContext pulls the authenticated user ID out of the request
// context, rejecting the request if it is missing or malformed.
func userIDFromContext(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		logger.Error("Invalid user ID format", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return uuid.Nil, false
	}

	return userID, true
}

// sellerIDFromContext pulls the seller ID placed by the RequireSeller
// middleware out of the request context.
func sellerIDFromContext(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	sellerIDStr, ok := middleware.GetSellerID(r.Context())
	if !ok {
		logger.Error("Seller ID not found in context")
		middleware.RespondWithError(w, http.StatusForbidden, "seller registration required")
		return uuid.Nil, false
	}

	sellerID, err := uuid.Parse(sellerIDStr)
	if err != nil {
		logger.Error("Invalid seller ID format", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid seller ID")
		return uuid.Nil, false
	}

	return sellerID, true
}
