package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type usersCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role enums.Role) (int64, error)
}

type ownersCounter interface {
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.OwnerProfile, error)
}

type parcelsCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enums.ParcelStatus) (int64, error)
	SumMarketValue(ctx context.Context) (decimal.Decimal, error)
}

const recentActivityLimit = 5

// UserDistributionDTO breaks total accounts down by role.
type UserDistributionDTO struct {
	Owners   int64 `json:"owners"`
	Officers int64 `json:"officers"`
	Admins   int64 `json:"admins"`
}

// RecentActivityDTO is a newly registered owner profile shown on the dashboard.
type RecentActivityDTO struct {
	OwnerProfileID uuid.UUID `json:"owner_profile_id"`
	FullName       string    `json:"full_name"`
	Username       string    `json:"username,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// StatsDTO is the dashboard payload.
type StatsDTO struct {
	TotalUsers            int64               `json:"totalUsers"`
	UserDistribution      UserDistributionDTO `json:"userDistribution"`
	TotalOwners           int64               `json:"totalOwners"`
	TotalRegisteredOwners int64               `json:"totalRegisteredOwners"`
	TotalLands            int64               `json:"totalLands"`
	ActiveLands           int64               `json:"activeLands"`
	InactiveLands         int64               `json:"inactiveLands"`
	PendingLands          int64               `json:"pendingLands"`
	LandValue             decimal.Decimal     `json:"landValue"`
	RecentActivities      []RecentActivityDTO `json:"recentActivities"`
}

// Service aggregates registry-wide statistics.
type Service interface {
	Stats(ctx context.Context, actor types.Actor) (*StatsDTO, error)
}

type service struct {
	users   usersCounter
	owners  ownersCounter
	parcels parcelsCounter
}

// NewService builds a dashboard service over the counting repositories.
func NewService(users usersCounter, owners ownersCounter, parcels parcelsCounter) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("users counter required")
	}
	if owners == nil {
		return nil, fmt.Errorf("owners counter required")
	}
	if parcels == nil {
		return nil, fmt.Errorf("parcels counter required")
	}
	return &service{users: users, owners: owners, parcels: parcels}, nil
}

// Stats returns registry aggregates for staff. Other roles get a zeroed
// payload rather than an error so the dashboard renders empty.
func (s *service) Stats(ctx context.Context, actor types.Actor) (*StatsDTO, error) {
	if !actor.CanReadAll() {
		return &StatsDTO{
			LandValue:        decimal.Zero,
			RecentActivities: []RecentActivityDTO{},
		}, nil
	}

	stats := &StatsDTO{RecentActivities: []RecentActivityDTO{}}

	var err error
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.UserDistribution.Owners, err = s.users.CountByRole(ctx, enums.RoleOwner); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.UserDistribution.Officers, err = s.users.CountByRole(ctx, enums.RoleOfficer); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.UserDistribution.Admins, err = s.users.CountByRole(ctx, enums.RoleAdmin); err != nil {
		return nil, s.aggregateError(err)
	}
	stats.TotalOwners = stats.UserDistribution.Owners
	if stats.TotalRegisteredOwners, err = s.owners.Count(ctx); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.TotalLands, err = s.parcels.Count(ctx); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.ActiveLands, err = s.parcels.CountByStatus(ctx, enums.ParcelStatusActive); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.InactiveLands, err = s.parcels.CountByStatus(ctx, enums.ParcelStatusInactive); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.PendingLands, err = s.parcels.CountByStatus(ctx, enums.ParcelStatusPending); err != nil {
		return nil, s.aggregateError(err)
	}
	if stats.LandValue, err = s.parcels.SumMarketValue(ctx); err != nil {
		return nil, s.aggregateError(err)
	}

	recent, err := s.owners.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, s.aggregateError(err)
	}
	for i := range recent {
		profile := &recent[i]
		activity := RecentActivityDTO{
			OwnerProfileID: profile.ID,
			FullName:       profile.FirstName + " " + profile.LastName,
			RegisteredAt:   profile.CreatedAt,
		}
		if profile.User != nil {
			activity.Username = profile.User.Username
		}
		stats.RecentActivities = append(stats.RecentActivities, activity)
	}
	return stats, nil
}

func (s *service) aggregateError(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate dashboard stats")
}
