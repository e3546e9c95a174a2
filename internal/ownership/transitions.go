package ownership

import "github.com/sadmanhossain/urbanland-backend/pkg/enums"

// allowedTransitions is the closed verification workflow. Verified and
// Rejected are terminal; a Disputed record can only be resolved by a final
// decision.
var allowedTransitions = map[enums.VerificationStatus][]enums.VerificationStatus{
	enums.VerificationStatusPending: {
		enums.VerificationStatusVerified,
		enums.VerificationStatusRejected,
		enums.VerificationStatusUnderReview,
	},
	enums.VerificationStatusUnderReview: {
		enums.VerificationStatusVerified,
		enums.VerificationStatusRejected,
		enums.VerificationStatusDisputed,
	},
	enums.VerificationStatusDisputed: {
		enums.VerificationStatusVerified,
		enums.VerificationStatusRejected,
	},
	enums.VerificationStatusVerified: {},
	enums.VerificationStatusRejected: {},
}

// CanTransition reports whether the verification workflow permits from → to.
func CanTransition(from, to enums.VerificationStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
