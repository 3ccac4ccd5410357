package schedule

import (
	"time"

	"train_dispatch/internal/models"
)

// departureTolerance — допустимое опережение фактического отправления
// относительно планового. Пока продукт не требует допуска — ноль.
const departureTolerance = 0 * time.Minute

// allowedTransitions описывает граф статусов; completed и cancelled — терминальные.
var allowedTransitions = map[string][]string{
	models.StatusScheduled: {models.StatusRunning, models.StatusDelayed, models.StatusCancelled},
	models.StatusRunning:   {models.StatusDelayed, models.StatusCompleted, models.StatusCancelled},
	models.StatusDelayed:   {models.StatusRunning, models.StatusCompleted, models.StatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionRequest — запрос смены статуса с опциональными фактическими временами.
type TransitionRequest struct {
	Status          string
	ActualDeparture *time.Time
	ActualArrival   *time.Time
}

// ApplyTransition проверяет и применяет переход статуса.
// При любой ошибке расписание остаётся неизменным.
func ApplyTransition(sched *models.Schedule, req TransitionRequest, now time.Time) error {
	if !transitionAllowed(sched.Status, req.Status) {
		return &IllegalTransitionError{From: sched.Status, To: req.Status}
	}

	switch req.Status {
	case models.StatusRunning:
		departure := sched.ActualDeparture
		if req.ActualDeparture != nil {
			departure = req.ActualDeparture
		} else if departure == nil {
			departure = &now
		}
		if departure.Before(sched.ScheduledDeparture.Add(-departureTolerance)) {
			return &ValidationError{Message: "фактическое отправление раньше планового"}
		}
		sched.Status = models.StatusRunning
		sched.ActualDeparture = departure

	case models.StatusCompleted:
		arrival := req.ActualArrival
		if arrival == nil {
			arrival = &now
		}
		if sched.ActualDeparture != nil && !arrival.After(*sched.ActualDeparture) {
			return &ValidationError{Message: "фактическое прибытие должно быть строго позже фактического отправления"}
		}
		sched.Status = models.StatusCompleted
		sched.ActualArrival = arrival

	case models.StatusDelayed:
		sched.Status = models.StatusDelayed

	case models.StatusCancelled:
		sched.Status = models.StatusCancelled
		sched.IsCancelled = true
	}
	return nil
}

// DepartureOverdue сообщает, что по расписанию сегодня уже должно было
// состояться отправление, но статус всё ещё scheduled.
func DepartureOverdue(sched models.Schedule, now time.Time, grace time.Duration) bool {
	if sched.Status != models.StatusScheduled {
		return false
	}
	if !sched.RunningDays.On(now) {
		return false
	}
	return secondOfDay(now) > secondOfDay(sched.ScheduledDeparture)+int(grace/time.Second)
}
