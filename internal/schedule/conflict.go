package schedule

import (
	"time"

	"train_dispatch/internal/models"

	"gorm.io/gorm"
)

// ConflictingSchedule — сокращённое представление пересекающегося расписания для ответа клиенту.
type ConflictingSchedule struct {
	ID                 uint      `json:"id"`
	ScheduledDeparture time.Time `json:"scheduled_departure"`
	ScheduledArrival   time.Time `json:"scheduled_arrival"`
}

// Candidate — проверяемое расписание: новое или редактируемое.
// Поля считаются уже прошедшими валидацию (прибытие позже отправления
// в пределах одних суток, дата окончания позже даты начала).
type Candidate struct {
	TrainID            uint
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	RunningDays        models.RunningDays
	EffectiveStartDate time.Time
	EffectiveEndDate   *time.Time
}

// secondOfDay приводит момент к секунде суток: для пересечения важен только дневной интервал.
func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// timesOverlap проверяет пересечение дневных интервалов в полуоткрытой семантике:
// стыкующиеся расписания (прибытие одного равно отправлению другого) не пересекаются.
// Интервалы не пересекают полночь, это гарантирует валидация входа.
func timesOverlap(aDep, aArr, bDep, bArr time.Time) bool {
	return secondOfDay(aDep) < secondOfDay(bArr) && secondOfDay(bDep) < secondOfDay(aArr)
}

// dateRangesOverlap проверяет пересечение календарных окон действия.
// Отсутствующая дата окончания означает бессрочное расписание.
func dateRangesOverlap(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	if aEnd != nil && aEnd.Before(bStart) {
		return false
	}
	if bEnd != nil && bEnd.Before(aStart) {
		return false
	}
	return true
}

// Overlaps — полный предикат конфликта: одновременно должны пересечься
// календарные окна, дни курсирования и дневные интервалы.
func Overlaps(candidate Candidate, other models.Schedule) bool {
	if !dateRangesOverlap(candidate.EffectiveStartDate, candidate.EffectiveEndDate,
		other.EffectiveStartDate, other.EffectiveEndDate) {
		return false
	}
	if !candidate.RunningDays.Intersects(other.RunningDays) {
		return false
	}
	return timesOverlap(candidate.ScheduledDeparture, candidate.ScheduledArrival,
		other.ScheduledDeparture, other.ScheduledArrival)
}

// DetectConflicts возвращает расписания поезда, пересекающиеся с кандидатом,
// в порядке возрастания id. Выполняется внутри транзакции вызывающего,
// выборка идёт по индексу train_id. excludeID исключает редактируемое
// расписание из проверки (0 — ничего не исключать).
func DetectConflicts(tx *gorm.DB, candidate Candidate, excludeID uint) ([]ConflictingSchedule, error) {
	query := tx.Where("train_id = ? AND is_cancelled = ?", candidate.TrainID, false)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var others []models.Schedule
	if err := query.Order("id ASC").Find(&others).Error; err != nil {
		return nil, err
	}

	conflicts := make([]ConflictingSchedule, 0)
	for _, other := range others {
		if Overlaps(candidate, other) {
			conflicts = append(conflicts, ConflictingSchedule{
				ID:                 other.ID,
				ScheduledDeparture: other.ScheduledDeparture,
				ScheduledArrival:   other.ScheduledArrival,
			})
		}
	}
	return conflicts, nil
}
