package service

import "localmarket/internal/domain"

// MissingBadges derives the badges a product has earned but does not yet
// carry. It is the single source of badge rules:
//
//   - "top-rated" is earned by any 5-star review and never revoked here.
//   - "recently-added" and "quick-response" are assigned elsewhere
//     (product creation and manual curation) and never derived from reviews.
//
// The function is pure so the rules can be tested without a store.
func MissingBadges(current []domain.BadgeType, reviews []*domain.Review) []domain.BadgeType {
	has := make(map[domain.BadgeType]bool, len(current))
	for _, b := range current {
		has[b] = true
	}

	missing := []domain.BadgeType{}

	if !has[domain.BadgeTopRated] {
		for _, review := range reviews {
			if review.Rating == 5 {
				missing = append(missing, domain.BadgeTopRated)
				break
			}
		}
	}

	return missing
}
