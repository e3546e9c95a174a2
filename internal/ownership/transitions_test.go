package ownership

import (
	"testing"

	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    enums.VerificationStatus
		to      enums.VerificationStatus
		allowed bool
	}{
		{enums.VerificationStatusPending, enums.VerificationStatusVerified, true},
		{enums.VerificationStatusPending, enums.VerificationStatusRejected, true},
		{enums.VerificationStatusPending, enums.VerificationStatusUnderReview, true},
		{enums.VerificationStatusPending, enums.VerificationStatusDisputed, false},
		{enums.VerificationStatusUnderReview, enums.VerificationStatusDisputed, true},
		{enums.VerificationStatusUnderReview, enums.VerificationStatusPending, false},
		{enums.VerificationStatusDisputed, enums.VerificationStatusVerified, true},
		{enums.VerificationStatusDisputed, enums.VerificationStatusUnderReview, false},
		{enums.VerificationStatusVerified, enums.VerificationStatusRejected, false},
		{enums.VerificationStatusRejected, enums.VerificationStatusPending, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
