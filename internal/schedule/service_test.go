package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validInput() ScheduleInput {
	return ScheduleInput{
		TrainID:             7,
		DepartureLocationID: 1,
		ArrivalLocationID:   2,
		ScheduledDeparture:  at(8, 0),
		ScheduledArrival:    at(9, 0),
		RunningDays:         monFri,
		EffectiveStartDate:  onDate(2024, 1, 1),
	}
}

func TestValidateInputAcceptsDailyWindow(t *testing.T) {
	assert.NoError(t, validateInput(validInput()))
}

func TestValidateInputRejectsArrivalBeforeDeparture(t *testing.T) {
	input := validInput()
	input.ScheduledArrival = input.ScheduledDeparture

	var validationErr *ValidationError
	assert.ErrorAs(t, validateInput(input), &validationErr)
}

func TestValidateInputRejectsMidnightCrossing(t *testing.T) {
	// 23:00 -> 00:30 следующих суток: прибытие позже отправления как момент
	// времени, но дневной интервал пересекает полночь и сравнивать его с
	// другими дневными интервалами нельзя.
	input := validInput()
	input.ScheduledDeparture = time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	input.ScheduledArrival = time.Date(2024, 1, 2, 0, 30, 0, 0, time.UTC)

	var validationErr *ValidationError
	assert.ErrorAs(t, validateInput(input), &validationErr)

	// Поздний вечерний рейс в пределах одних суток проходит.
	input.ScheduledArrival = time.Date(2024, 1, 1, 23, 45, 0, 0, time.UTC)
	assert.NoError(t, validateInput(input))
}

func TestValidateInputRejectsEndDateBeforeStart(t *testing.T) {
	input := validInput()
	end := onDate(2023, 12, 1)
	input.EffectiveEndDate = &end

	var validationErr *ValidationError
	assert.ErrorAs(t, validateInput(input), &validationErr)
}
