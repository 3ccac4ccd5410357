package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы расписания. completed и cancelled — терминальные.
const (
	StatusScheduled = "scheduled"
	StatusRunning   = "running"
	StatusDelayed   = "delayed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Schedule struct {
	gorm.Model
	TrainID             uint        `gorm:"index;not null" json:"train_id"` // Поезд, для которого действует расписание
	Train               Train       `gorm:"foreignKey:TrainID" json:"-"`
	DepartureLocationID uint        `gorm:"not null" json:"departure_location_id"` // Станция отправления
	ArrivalLocationID   uint        `gorm:"not null" json:"arrival_location_id"`   // Станция прибытия
	ScheduledDeparture  time.Time   `gorm:"not null" json:"scheduled_departure"`   // Плановое отправление (задаёт дневной интервал)
	ScheduledArrival    time.Time   `gorm:"not null" json:"scheduled_arrival"`     // Плановое прибытие
	ActualDeparture     *time.Time  `json:"actual_departure,omitempty"`            // Фактическое отправление, заполняется переходом статуса
	ActualArrival       *time.Time  `json:"actual_arrival,omitempty"`              // Фактическое прибытие
	Status              string      `gorm:"not null;default:scheduled" json:"status"`
	IsCancelled         bool        `gorm:"index;not null;default:false" json:"is_cancelled"` // Денормализованный флаг отмены для выборок
	RunningDays         RunningDays `gorm:"not null" json:"running_days"`                     // Дни курсирования, Пн..Вс
	EffectiveStartDate  time.Time   `gorm:"not null" json:"effective_start_date"`             // Начало периода действия
	EffectiveEndDate    *time.Time  `json:"effective_end_date,omitempty"`                     // Окончание периода действия (nil — бессрочно)
}
