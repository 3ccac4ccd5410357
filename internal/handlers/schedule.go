package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"train_dispatch/internal/models"
	"train_dispatch/internal/response"
	"train_dispatch/internal/schedule"
	"train_dispatch/internal/storage"

	"github.com/gin-gonic/gin"
)

var scheduleCtx = context.Background()

// ScheduleHandler держит сервис расписаний, полученный при старте приложения.
type ScheduleHandler struct {
	Service *schedule.Service
}

func NewScheduleHandler(svc *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// ScheduleRequest — тело запроса создания и полного редактирования расписания.
type ScheduleRequest struct {
	TrainID             uint   `json:"train_id" binding:"required"`
	DepartureLocationID uint   `json:"departure_location_id" binding:"required"`
	ArrivalLocationID   uint   `json:"arrival_location_id" binding:"required"`
	ScheduledDeparture  string `json:"scheduled_departure" binding:"required"`  // ISO-8601
	ScheduledArrival    string `json:"scheduled_arrival" binding:"required"`    // ISO-8601
	RunningDays         []bool `json:"running_days" binding:"required"`         // ровно 7 флагов, Пн..Вс
	EffectiveStartDate  string `json:"effective_start_date" binding:"required"` // YYYY-MM-DD
	EffectiveEndDate    string `json:"effective_end_date"`                      // YYYY-MM-DD, пусто — бессрочно
}

// StatusUpdateRequest — тело запроса смены статуса.
type StatusUpdateRequest struct {
	Status          string     `json:"status" binding:"required"`
	ActualDeparture *time.Time `json:"actual_departure"`
	ActualArrival   *time.Time `json:"actual_arrival"`
}

// parseScheduleInput валидирует форматы полей и собирает вход сервиса.
func parseScheduleInput(req ScheduleRequest) (schedule.ScheduleInput, error) {
	var input schedule.ScheduleInput

	departure, err := time.Parse(time.RFC3339, req.ScheduledDeparture)
	if err != nil {
		return input, &schedule.ValidationError{Message: "scheduled_departure: ожидается время в формате ISO-8601"}
	}
	arrival, err := time.Parse(time.RFC3339, req.ScheduledArrival)
	if err != nil {
		return input, &schedule.ValidationError{Message: "scheduled_arrival: ожидается время в формате ISO-8601"}
	}
	if len(req.RunningDays) != 7 {
		return input, &schedule.ValidationError{Message: "running_days: ожидается ровно 7 флагов (Пн..Вс)"}
	}
	startDate, err := time.Parse("2006-01-02", req.EffectiveStartDate)
	if err != nil {
		return input, &schedule.ValidationError{Message: "effective_start_date: ожидается дата в формате YYYY-MM-DD"}
	}
	var endDate *time.Time
	if req.EffectiveEndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EffectiveEndDate)
		if err != nil {
			return input, &schedule.ValidationError{Message: "effective_end_date: ожидается дата в формате YYYY-MM-DD"}
		}
		endDate = &parsed
	}

	input = schedule.ScheduleInput{
		TrainID:             req.TrainID,
		DepartureLocationID: req.DepartureLocationID,
		ArrivalLocationID:   req.ArrivalLocationID,
		ScheduledDeparture:  departure,
		ScheduledArrival:    arrival,
		EffectiveStartDate:  startDate,
		EffectiveEndDate:    endDate,
	}
	copy(input.RunningDays[:], req.RunningDays)
	return input, nil
}

// writeScheduleError переводит ошибки сервиса в HTTP-ответы с кодами.
func writeScheduleError(c *gin.Context, err error) {
	var conflictErr *schedule.ConflictError
	var transitionErr *schedule.IllegalTransitionError
	var validationErr *schedule.ValidationError

	switch {
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, response.ConflictResponse{
			Code:      "SCHEDULE_CONFLICT",
			Message:   "Расписание пересекается с существующими расписаниями поезда",
			Conflicts: conflictErr.Conflicts,
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "ILLEGAL_TRANSITION",
			Message: "Недопустимый переход статуса",
			Details: transitionErr.Error(),
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: validationErr.Message,
		})
	case errors.Is(err, schedule.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Запись не найдена",
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка базы данных",
			Details: err.Error(),
		})
	}
}

func trainSchedulesCacheKey(trainID uint) string {
	return fmt.Sprintf("train_schedules_%d", trainID)
}

// invalidateScheduleCache сбрасывает кэш списка расписаний поезда после записи.
func invalidateScheduleCache(trainID uint) {
	if storage.RedisClient == nil {
		return
	}
	storage.RedisClient.Del(scheduleCtx, trainSchedulesCacheKey(trainID))
}

// CreateScheduleHandler создает расписание после проверки на конфликты
// @Summary		Создание расписания
// @Description	Проверяет кандидата на пересечения с расписаниями поезда и сохраняет его
// @Tags			schedules
// @Accept			json
// @Produce		json
// @Param			schedule	body		ScheduleRequest	true	"Данные расписания"
// @Security		BearerAuth
// @Success		201	{object}	models.Schedule	"Созданное расписание"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Поезд или станция не найдены (NOT_FOUND)"
// @Failure		409	{object}	response.ConflictResponse	"Пересечение расписаний (SCHEDULE_CONFLICT)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/schedules [post]
func (h *ScheduleHandler) CreateScheduleHandler(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	input, err := parseScheduleInput(req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	created, err := h.Service.Create(input)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	invalidateScheduleCache(created.TrainID)
	c.JSON(http.StatusCreated, created)
}

// GetScheduleHandler возвращает расписание по id
// @Summary		Получение расписания
// @Tags			schedules
// @Produce		json
// @Param			id	path		string	true	"ID расписания"
// @Success		200	{object}	models.Schedule
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_SCHEDULE_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (NOT_FOUND)"
// @Router			/api/schedules/{id} [get]
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SCHEDULE_ID",
			Message: "Неверный идентификатор расписания",
		})
		return
	}

	sched, err := h.Service.Get(uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// UpdateScheduleHandler полностью редактирует расписание
// @Summary		Редактирование расписания
// @Description	При изменении времени, дней курсирования или периода действия проверка конфликтов выполняется заново
// @Tags			schedules
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID расписания"
// @Param			schedule	body		ScheduleRequest	true	"Новые данные расписания"
// @Security		BearerAuth
// @Success		200	{object}	models.Schedule	"Обновленное расписание"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (NOT_FOUND)"
// @Failure		409	{object}	response.ConflictResponse	"Пересечение расписаний (SCHEDULE_CONFLICT)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/schedules/{id} [put]
func (h *ScheduleHandler) UpdateScheduleHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SCHEDULE_ID",
			Message: "Неверный идентификатор расписания",
		})
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	input, err := parseScheduleInput(req)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	prev, err := h.Service.Get(uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	updated, err := h.Service.Update(uint(id), input)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	// При переносе расписания на другой поезд кэш прежнего поезда тоже устаревает.
	if prev.TrainID != updated.TrainID {
		invalidateScheduleCache(prev.TrainID)
	}
	invalidateScheduleCache(updated.TrainID)
	c.JSON(http.StatusOK, updated)
}

// UpdateScheduleStatusHandler применяет переход статуса
// @Summary		Смена статуса расписания
// @Description	Переход проверяется машиной состояний; фактические времена выводятся из запроса или текущего момента
// @Tags			schedules
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID расписания"
// @Param			status	body		StatusUpdateRequest	true	"Запрошенный статус и фактические времена"
// @Security		BearerAuth
// @Success		200	{object}	models.Schedule	"Расписание после перехода"
// @Failure		400	{object}	response.ErrorResponse	"Недопустимый переход (ILLEGAL_TRANSITION) или ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/schedules/{id}/status [patch]
func (h *ScheduleHandler) UpdateScheduleStatusHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SCHEDULE_ID",
			Message: "Неверный идентификатор расписания",
		})
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	updated, err := h.Service.UpdateStatus(uint(id), schedule.TransitionRequest{
		Status:          req.Status,
		ActualDeparture: req.ActualDeparture,
		ActualArrival:   req.ActualArrival,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	invalidateScheduleCache(updated.TrainID)
	c.JSON(http.StatusOK, updated)
}

// DeleteScheduleHandler — административное удаление расписания
// @Summary		Удаление расписания
// @Tags			schedules
// @Produce		json
// @Param			id	path		string	true	"ID расписания"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Расписание удалено"
// @Failure		404	{object}	response.ErrorResponse	"Расписание не найдено (NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/schedules/{id} [delete]
func (h *ScheduleHandler) DeleteScheduleHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SCHEDULE_ID",
			Message: "Неверный идентификатор расписания",
		})
		return
	}

	sched, err := h.Service.Get(uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	if err := h.Service.Delete(uint(id)); err != nil {
		writeScheduleError(c, err)
		return
	}

	invalidateScheduleCache(sched.TrainID)
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Расписание удалено"})
}

// GetTrainSchedulesHandler возвращает расписания поезда
// @Summary		Расписания поезда
// @Description	Возвращает все расписания поезда, кэширует результат в Redis
// @Tags			trains
// @Produce		json
// @Param			id	path		string	true	"ID поезда"
// @Success		200	{array}		models.Schedule
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_TRAIN_ID)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/trains/{id}/schedules [get]
func (h *ScheduleHandler) GetTrainSchedulesHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TRAIN_ID",
			Message: "Неверный идентификатор поезда",
		})
		return
	}

	cacheKey := trainSchedulesCacheKey(uint(id))
	if storage.RedisClient != nil {
		cached, err := storage.RedisClient.Get(scheduleCtx, cacheKey).Result()
		if err == nil && cached != "" {
			var scheds []models.Schedule
			if err := json.Unmarshal([]byte(cached), &scheds); err == nil {
				c.JSON(http.StatusOK, scheds)
				return
			}
		}
	}

	scheds, err := h.Service.ListByTrain(uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	if storage.RedisClient != nil {
		if payload, err := json.Marshal(scheds); err == nil {
			storage.RedisClient.Set(scheduleCtx, cacheKey, string(payload), time.Hour)
		}
	}

	c.JSON(http.StatusOK, scheds)
}
