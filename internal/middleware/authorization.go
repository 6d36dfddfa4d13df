package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SellerLookup resolves the seller profile owned by a user, if one exists.
// The service layer satisfies this with SellerService.GetByUserID.
type SellerLookup func(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)

// RequireSeller guards seller-only routes. It resolves the authenticated
// user's seller profile and places its ID into the request context; users
// without a profile get 403.
func RequireSeller(lookup SellerLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr, ok := GetUserID(r.Context())
			if !ok {
				logger.Warn("User ID not found in context")
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				logger.Warn("Invalid user ID in context", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			sellerID, err := lookup(r.Context(), userID)
			if err != nil {
				logger.Warn("User without seller profile hit seller-only route",
					zap.String("user_id", userIDStr),
				)
				RespondWithError(w, http.StatusForbidden, "seller registration required")
				return
			}

			ctx := context.WithValue(r.Context(), SellerIDKey, sellerID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
