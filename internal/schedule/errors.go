package schedule

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается, когда расписание, поезд или станция не найдены.
var ErrNotFound = errors.New("запись не найдена")

// ValidationError — нарушение инвариантов входных данных.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError — кандидат пересекается с существующими расписаниями поезда.
// Список пересечений возвращается клиенту для разрешения вручную.
type ConflictError struct {
	Conflicts []ConflictingSchedule
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("обнаружено пересечений расписаний: %d", len(e.Conflicts))
}

// IllegalTransitionError — запрошенный переход статуса недопустим из текущего состояния.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("переход статуса %s -> %s недопустим", e.From, e.To)
}
