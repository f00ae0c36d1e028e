package service

import (
	"context"
	"testing"

	"alcyxob/training-calendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func setupDayEnv(t *testing.T) (*calendarEnv, DayService, primitive.ObjectID, domain.Day) {
	t.Helper()
	env := newCalendarEnv(t, wednesday)
	owner := primitive.NewObjectID()

	tree, err := env.svc.Get(context.Background(), owner, domain.KindTemplateWeeks, domain.ZoneA, false, false)
	require.NoError(t, err)
	day := tree.Plan.Weeks[0].Days[0]

	svc := NewDayService(&memDayRepo{env.store}, &memPeriodRepo{env.store})
	return env, svc, owner, day
}

func TestUpdateDayDetails(t *testing.T) {
	_, svc, owner, day := setupDayEnv(t)

	updated, err := svc.UpdateDetails(context.Background(), owner, day.ID, DayPatch{
		Weather: strPtr("sunny"),
		Notes:   strPtr("felt strong"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sunny", updated.Weather)
	assert.Equal(t, "felt strong", updated.Notes)
	// Unpatched fields keep their stored values.
	assert.Equal(t, domain.DefaultFeelingStatus, updated.FeelingStatus)
	assert.Equal(t, day.Date, updated.Date)
	assert.Equal(t, day.Zone, updated.Zone)
}

func TestUpdateDayDetailsRejectsForeignDay(t *testing.T) {
	_, svc, _, day := setupDayEnv(t)

	_, err := svc.UpdateDetails(context.Background(), primitive.NewObjectID(), day.ID, DayPatch{
		Notes: strPtr("not mine"),
	})
	assert.ErrorIs(t, err, ErrDayNotOwned)
}

func TestUpdateDayDetailsUnknownDay(t *testing.T) {
	_, svc, owner, _ := setupDayEnv(t)

	_, err := svc.UpdateDetails(context.Background(), owner, primitive.NewObjectID(), DayPatch{})
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestUpdateDayDetailsPeriodMustBelongToOwner(t *testing.T) {
	env, svc, owner, day := setupDayEnv(t)

	stranger := primitive.NewObjectID()
	strangerPeriod, err := (&memPeriodRepo{env.store}).Create(context.Background(), &domain.Period{
		OwnerID: stranger,
		Name:    "Build",
		Color:   "#ff0000",
	})
	require.NoError(t, err)

	_, err = svc.UpdateDetails(context.Background(), owner, day.ID, DayPatch{PeriodID: &strangerPeriod})
	assert.ErrorIs(t, err, ErrUnknownPeriod)

	ownPeriod, err := (&memPeriodRepo{env.store}).Create(context.Background(), &domain.Period{
		OwnerID: owner,
		Name:    "Peak",
		Color:   "#00ff00",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateDetails(context.Background(), owner, day.ID, DayPatch{PeriodID: &ownPeriod})
	require.NoError(t, err)
	assert.Equal(t, ownPeriod, updated.PeriodID)
}

func TestListPeriods(t *testing.T) {
	env, svc, owner, _ := setupDayEnv(t)

	// Materialization already created the owner's default period.
	periods, err := svc.ListPeriods(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, domain.DefaultPeriodName, periods[0].Name)
	assert.True(t, periods[0].IsDefault)

	_, err = (&memPeriodRepo{env.store}).Create(context.Background(), &domain.Period{
		OwnerID: owner,
		Name:    "Race",
		Color:   "#0000ff",
	})
	require.NoError(t, err)

	periods, err = svc.ListPeriods(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, periods, 2)
}
