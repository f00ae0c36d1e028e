package service

import (
	"alcyxob/training-calendar/internal/domain"
	"alcyxob/training-calendar/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDayNotFound   = errors.New("day not found")
	ErrDayNotOwned   = errors.New("day does not belong to this user")
	ErrUnknownPeriod = errors.New("period does not exist for this user")
)

// DayPatch carries the mutable non-structural fields of a day. Nil fields
// are left untouched.
type DayPatch struct {
	Weather       *string
	FeelingStatus *string
	Notes         *string
	PeriodID      *primitive.ObjectID
}

// DayService updates the free-form surface of day rows and exposes the
// owner's period tags. Structural fields (date, zone, week linkage) never
// change through this path.
type DayService interface {
	UpdateDetails(ctx context.Context, ownerID, dayID primitive.ObjectID, patch DayPatch) (*domain.Day, error)
	ListPeriods(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Period, error)
}

// dayService implements DayService.
type dayService struct {
	dayRepo    repository.DayRepository
	periodRepo repository.PeriodRepository
}

// NewDayService creates a new instance of dayService.
func NewDayService(dayRepo repository.DayRepository, periodRepo repository.PeriodRepository) DayService {
	return &dayService{
		dayRepo:    dayRepo,
		periodRepo: periodRepo,
	}
}

// UpdateDetails applies a patch to a day the owner holds.
func (s *dayService) UpdateDetails(ctx context.Context, ownerID, dayID primitive.ObjectID, patch DayPatch) (*domain.Day, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	if day.OwnerID != ownerID {
		return nil, ErrDayNotOwned
	}

	if patch.Weather != nil {
		day.Weather = *patch.Weather
	}
	if patch.FeelingStatus != nil {
		day.FeelingStatus = *patch.FeelingStatus
	}
	if patch.Notes != nil {
		day.Notes = *patch.Notes
	}
	if patch.PeriodID != nil {
		// The tag must be one of the owner's own periods.
		periods, err := s.periodRepo.GetByOwnerID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		found := false
		for _, p := range periods {
			if p.ID == *patch.PeriodID {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrUnknownPeriod
		}
		day.PeriodID = *patch.PeriodID
	}

	if err := s.dayRepo.UpdateDetails(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// ListPeriods returns the owner's period tags, oldest first.
func (s *dayService) ListPeriods(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Period, error) {
	return s.periodRepo.GetByOwnerID(ctx, ownerID)
}
