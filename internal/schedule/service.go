package schedule

import (
	"errors"
	"time"

	"train_dispatch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier получает события об успешно зафиксированных изменениях расписаний.
// Вызывается строго после коммита транзакции.
type Notifier interface {
	NotifyScheduleEvent(trainID uint, eventType string, data map[string]interface{})
}

// Service выполняет операции над расписаниями под транзакционной защитой.
// Проверка конфликтов и запись выполняются в одной транзакции с блокировкой
// строки поезда, поэтому два конкурирующих кандидата на один поезд не могут
// одновременно увидеть "нет конфликтов" и оба закоммититься.
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// ScheduleInput — поля создания или полного редактирования расписания.
type ScheduleInput struct {
	TrainID             uint
	DepartureLocationID uint
	ArrivalLocationID   uint
	ScheduledDeparture  time.Time
	ScheduledArrival    time.Time
	RunningDays         models.RunningDays
	EffectiveStartDate  time.Time
	EffectiveEndDate    *time.Time
}

func validateInput(input ScheduleInput) error {
	if !input.ScheduledArrival.After(input.ScheduledDeparture) {
		return &ValidationError{Message: "время прибытия должно быть позже времени отправления"}
	}
	// Проверка конфликтов сравнивает дневные интервалы, поэтому окно
	// рейса не может пересекать полночь.
	if secondOfDay(input.ScheduledArrival) <= secondOfDay(input.ScheduledDeparture) {
		return &ValidationError{Message: "дневной интервал не может пересекать полночь: прибытие должно быть позже отправления в пределах одних суток"}
	}
	if input.EffectiveEndDate != nil && !input.EffectiveEndDate.After(input.EffectiveStartDate) {
		return &ValidationError{Message: "дата окончания действия должна быть позже даты начала"}
	}
	return nil
}

func candidateOf(input ScheduleInput) Candidate {
	return Candidate{
		TrainID:            input.TrainID,
		ScheduledDeparture: input.ScheduledDeparture,
		ScheduledArrival:   input.ScheduledArrival,
		RunningDays:        input.RunningDays,
		EffectiveStartDate: input.EffectiveStartDate,
		EffectiveEndDate:   input.EffectiveEndDate,
	}
}

// lockTrain берёт блокировку FOR UPDATE на строку поезда:
// все писатели одного поезда сериализуются, разные поезда не конкурируют.
func lockTrain(tx *gorm.DB, trainID uint) error {
	var train models.Train
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&train, trainID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func checkLocations(tx *gorm.DB, ids ...uint) error {
	for _, id := range ids {
		var loc models.Location
		if err := tx.First(&loc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

// Create проверяет кандидата на конфликты и сохраняет расписание.
func (s *Service) Create(input ScheduleInput) (*models.Schedule, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var created models.Schedule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockTrain(tx, input.TrainID); err != nil {
			return err
		}
		if err := checkLocations(tx, input.DepartureLocationID, input.ArrivalLocationID); err != nil {
			return err
		}

		conflicts, err := DetectConflicts(tx, candidateOf(input), 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		created = models.Schedule{
			TrainID:             input.TrainID,
			DepartureLocationID: input.DepartureLocationID,
			ArrivalLocationID:   input.ArrivalLocationID,
			ScheduledDeparture:  input.ScheduledDeparture,
			ScheduledArrival:    input.ScheduledArrival,
			Status:              models.StatusScheduled,
			RunningDays:         input.RunningDays,
			EffectiveStartDate:  input.EffectiveStartDate,
			EffectiveEndDate:    input.EffectiveEndDate,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyScheduleEvent(created.TrainID, "schedule_created", map[string]interface{}{
			"schedule_id": created.ID,
			"status":      created.Status,
		})
	}
	return &created, nil
}

// timingChanged определяет, нужно ли повторять проверку конфликтов при редактировании.
func timingChanged(current models.Schedule, input ScheduleInput) bool {
	if current.TrainID != input.TrainID {
		return true
	}
	if !current.ScheduledDeparture.Equal(input.ScheduledDeparture) ||
		!current.ScheduledArrival.Equal(input.ScheduledArrival) {
		return true
	}
	if current.RunningDays != input.RunningDays {
		return true
	}
	if !current.EffectiveStartDate.Equal(input.EffectiveStartDate) {
		return true
	}
	switch {
	case current.EffectiveEndDate == nil && input.EffectiveEndDate == nil:
		return false
	case current.EffectiveEndDate == nil || input.EffectiveEndDate == nil:
		return true
	default:
		return !current.EffectiveEndDate.Equal(*input.EffectiveEndDate)
	}
}

// Update полностью редактирует расписание; при изменении времени, дней
// курсирования или периода действия проверка конфликтов выполняется заново
// с исключением самого расписания.
func (s *Service) Update(id uint, input ScheduleInput) (*models.Schedule, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated models.Schedule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockTrain(tx, input.TrainID); err != nil {
			return err
		}
		if err := checkLocations(tx, input.DepartureLocationID, input.ArrivalLocationID); err != nil {
			return err
		}

		var sched models.Schedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sched, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if timingChanged(sched, input) {
			conflicts, err := DetectConflicts(tx, candidateOf(input), sched.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &ConflictError{Conflicts: conflicts}
			}
		}

		sched.TrainID = input.TrainID
		sched.DepartureLocationID = input.DepartureLocationID
		sched.ArrivalLocationID = input.ArrivalLocationID
		sched.ScheduledDeparture = input.ScheduledDeparture
		sched.ScheduledArrival = input.ScheduledArrival
		sched.RunningDays = input.RunningDays
		sched.EffectiveStartDate = input.EffectiveStartDate
		sched.EffectiveEndDate = input.EffectiveEndDate

		if err := tx.Save(&sched).Error; err != nil {
			return err
		}
		updated = sched
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyScheduleEvent(updated.TrainID, "schedule_updated", map[string]interface{}{
			"schedule_id": updated.ID,
			"status":      updated.Status,
		})
	}
	return &updated, nil
}

// UpdateStatus применяет переход статуса через машину состояний.
func (s *Service) UpdateStatus(id uint, req TransitionRequest) (*models.Schedule, error) {
	var updated models.Schedule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sched models.Schedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sched, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := ApplyTransition(&sched, req, time.Now()); err != nil {
			return err
		}

		if err := tx.Save(&sched).Error; err != nil {
			return err
		}
		updated = sched
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		data := map[string]interface{}{
			"schedule_id": updated.ID,
			"status":      updated.Status,
		}
		if updated.ActualDeparture != nil {
			data["actual_departure"] = updated.ActualDeparture
		}
		if updated.ActualArrival != nil {
			data["actual_arrival"] = updated.ActualArrival
		}
		s.notifier.NotifyScheduleEvent(updated.TrainID, "status_changed", data)
	}
	return &updated, nil
}

// Get возвращает расписание по id.
func (s *Service) Get(id uint) (*models.Schedule, error) {
	var sched models.Schedule
	if err := s.db.First(&sched, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sched, nil
}

// ListByTrain возвращает все расписания поезда в порядке возрастания id.
func (s *Service) ListByTrain(trainID uint) ([]models.Schedule, error) {
	var scheds []models.Schedule
	if err := s.db.Where("train_id = ?", trainID).Order("id ASC").Find(&scheds).Error; err != nil {
		return nil, err
	}
	return scheds, nil
}

// Delete — административное физическое удаление расписания.
func (s *Service) Delete(id uint) error {
	var deleted models.Schedule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Unscoped().Delete(&deleted).Error
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyScheduleEvent(deleted.TrainID, "schedule_deleted", map[string]interface{}{
			"schedule_id": deleted.ID,
		})
	}
	return nil
}
