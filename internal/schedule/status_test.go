package schedule

import (
	"testing"
	"time"

	"train_dispatch/internal/models"

	"github.com/stretchr/testify/assert"
)

func scheduledSlot() models.Schedule {
	return models.Schedule{
		TrainID:            7,
		ScheduledDeparture: at(8, 0),
		ScheduledArrival:   at(9, 0),
		RunningDays:        monFri,
		EffectiveStartDate: onDate(2024, 1, 1),
		Status:             models.StatusScheduled,
	}
}

func TestTransitionToRunningSetsActualDeparture(t *testing.T) {
	sched := scheduledSlot()
	now := at(8, 5)

	err := ApplyTransition(&sched, TransitionRequest{Status: models.StatusRunning}, now)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusRunning, sched.Status)
	if assert.NotNil(t, sched.ActualDeparture) {
		assert.Equal(t, now, *sched.ActualDeparture)
	}
}

func TestTransitionToRunningRejectsEarlyDeparture(t *testing.T) {
	sched := scheduledSlot()
	early := at(7, 59)

	err := ApplyTransition(&sched, TransitionRequest{Status: models.StatusRunning, ActualDeparture: &early}, at(8, 0))

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	// Отклонённый переход не должен менять расписание.
	assert.Equal(t, models.StatusScheduled, sched.Status)
	assert.Nil(t, sched.ActualDeparture)
}

func TestCancelledIsTerminal(t *testing.T) {
	sched := scheduledSlot()

	err := ApplyTransition(&sched, TransitionRequest{Status: models.StatusCancelled}, at(8, 0))
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, sched.Status)
	assert.True(t, sched.IsCancelled)

	err = ApplyTransition(&sched, TransitionRequest{Status: models.StatusRunning}, at(8, 5))
	var transitionErr *IllegalTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.StatusCancelled, sched.Status)
	assert.True(t, sched.IsCancelled)
	assert.Nil(t, sched.ActualDeparture)
}

func TestCompletedRequiresArrivalAfterDeparture(t *testing.T) {
	sched := scheduledSlot()
	departure := at(8, 5)
	sched.Status = models.StatusRunning
	sched.ActualDeparture = &departure

	// Прибытие, равное отправлению, отклоняется.
	err := ApplyTransition(&sched, TransitionRequest{Status: models.StatusCompleted, ActualArrival: &departure}, at(9, 0))
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.StatusRunning, sched.Status)
	assert.Nil(t, sched.ActualArrival)

	arrival := at(9, 10)
	err = ApplyTransition(&sched, TransitionRequest{Status: models.StatusCompleted, ActualArrival: &arrival}, at(9, 0))
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, sched.Status)
	if assert.NotNil(t, sched.ActualArrival) {
		assert.Equal(t, arrival, *sched.ActualArrival)
	}
}

func TestDelayedRoundTripKeepsActualDeparture(t *testing.T) {
	sched := scheduledSlot()
	departure := at(8, 5)
	sched.Status = models.StatusRunning
	sched.ActualDeparture = &departure

	err := ApplyTransition(&sched, TransitionRequest{Status: models.StatusDelayed}, at(8, 30))
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelayed, sched.Status)

	// Возврат в running не перетирает уже известное фактическое отправление.
	err = ApplyTransition(&sched, TransitionRequest{Status: models.StatusRunning}, at(8, 40))
	assert.NoError(t, err)
	if assert.NotNil(t, sched.ActualDeparture) {
		assert.Equal(t, departure, *sched.ActualDeparture)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	sched := scheduledSlot()
	departure := at(8, 5)
	arrival := at(9, 10)
	sched.Status = models.StatusCompleted
	sched.ActualDeparture = &departure
	sched.ActualArrival = &arrival

	for _, next := range []string{models.StatusScheduled, models.StatusRunning, models.StatusDelayed, models.StatusCancelled} {
		err := ApplyTransition(&sched, TransitionRequest{Status: next}, at(10, 0))
		var transitionErr *IllegalTransitionError
		assert.ErrorAs(t, err, &transitionErr, "переход из completed в %s должен быть отклонён", next)
	}
	assert.Equal(t, models.StatusCompleted, sched.Status)
}

func TestUnknownStatusRejected(t *testing.T) {
	sched := scheduledSlot()

	err := ApplyTransition(&sched, TransitionRequest{Status: "departed"}, at(8, 0))

	var transitionErr *IllegalTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.StatusScheduled, sched.Status)
}

func TestDepartureOverdue(t *testing.T) {
	sched := scheduledSlot()

	// Понедельник, через 15 минут после планового отправления.
	monday := time.Date(2024, 1, 8, 8, 15, 0, 0, time.UTC)
	assert.True(t, DepartureOverdue(sched, monday, 10*time.Minute))

	// Запас ещё не истёк.
	assert.False(t, DepartureOverdue(sched, time.Date(2024, 1, 8, 8, 5, 0, 0, time.UTC), 10*time.Minute))

	// Суббота — поезд не курсирует.
	saturday := time.Date(2024, 1, 6, 8, 15, 0, 0, time.UTC)
	assert.False(t, DepartureOverdue(sched, saturday, 10*time.Minute))
}
