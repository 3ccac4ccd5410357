package tasks

import (
	"log"
	"time"

	"train_dispatch/internal/models"
	"train_dispatch/internal/schedule"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// overdueGrace — запас после планового отправления, по истечении которого
// ещё не отправившийся рейс считается задержанным.
const overdueGrace = 10 * time.Minute

// cancelledRetention — сколько хранить отменённые расписания до физического удаления.
const cancelledRetention = 30 * 24 * time.Hour

// MarkOverdueDepartures переводит в delayed рейсы, которые сегодня курсируют,
// но не отправились вовремя. Переход идёт через машину состояний, поэтому
// подписчики получают обычное событие status_changed.
func MarkOverdueDepartures(db *gorm.DB, svc *schedule.Service) {
	now := time.Now()

	var scheds []models.Schedule
	err := db.
		Where("status = ? AND is_cancelled = ?", models.StatusScheduled, false).
		Where("effective_start_date <= ?", now).
		Where("effective_end_date IS NULL OR effective_end_date >= ?", now).
		Find(&scheds).Error
	if err != nil {
		log.Println("Ошибка при поиске просроченных рейсов:", err)
		return
	}

	for _, sched := range scheds {
		if !schedule.DepartureOverdue(sched, now, overdueGrace) {
			continue
		}
		if _, err := svc.UpdateStatus(sched.ID, schedule.TransitionRequest{Status: models.StatusDelayed}); err != nil {
			log.Printf("Ошибка перевода рейса %d в delayed: %v\n", sched.ID, err)
		} else {
			log.Printf("Рейс %d переведён в delayed: отправление просрочено.\n", sched.ID)
		}
	}
}

// PurgeCancelledSchedules физически удаляет расписания, отменённые более месяца назад.
func PurgeCancelledSchedules(db *gorm.DB) {
	threshold := time.Now().Add(-cancelledRetention)
	result := db.Unscoped().
		Where("is_cancelled = ? AND updated_at < ?", true, threshold).
		Delete(&models.Schedule{})
	if result.Error != nil {
		log.Println("Ошибка при удалении отменённых расписаний:", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Удалено отменённых расписаний: %d\n", result.RowsAffected)
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler(db *gorm.DB, svc *schedule.Service) *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Проверка просроченных отправлений каждые 5 минут.
	_, err := c.AddFunc("0 */5 * * * *", func() { MarkOverdueDepartures(db, svc) })
	if err != nil {
		log.Println("Ошибка запуска cron-задачи MarkOverdueDepartures:", err)
	}

	// Очистка давно отменённых расписаний каждый день в 03:00.
	_, err = c.AddFunc("0 0 3 * * *", func() { PurgeCancelledSchedules(db) })
	if err != nil {
		log.Println("Ошибка запуска cron-задачи PurgeCancelledSchedules:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
