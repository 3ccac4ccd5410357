package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"train_dispatch/internal/handlers"
	"train_dispatch/internal/models"
	"train_dispatch/internal/schedule"
	"train_dispatch/internal/storage"
	"train_dispatch/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) *httptest.Server {
	if os.Getenv("TEST_DB_HOST") == "" {
		_ = godotenv.Load("../.env")
	}
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST не задан — интеграционный тест пропущен")
	}

	storage.ConnectTestingDatabase()

	// Сначала миграция: на свежей базе таблиц ещё нет и очищать нечего.
	if err := storage.DB.AutoMigrate(&models.User{}, &models.Train{}, &models.Location{}, &models.Schedule{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}
	storage.DB.Exec("TRUNCATE TABLE users, trains, locations, schedules RESTART IDENTITY CASCADE;")

	storage.InitRedis()
	// Кэш от предыдущих прогонов не должен переживать TRUNCATE.
	storage.RedisClient.FlushDB(context.Background())

	go ws.HubInstance.Run()

	scheduleService := schedule.NewService(storage.DB, ws.HubInstance)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	r := gin.Default()

	trains := r.Group("/api/trains")
	{
		trains.GET("/:id/schedules", scheduleHandler.GetTrainSchedulesHandler)
		trains.GET("/:id/ws", ws.TrainWebSocketHandler)
	}

	schedules := r.Group("/api/schedules")
	{
		schedules.GET("/:id", scheduleHandler.GetScheduleHandler)
		schedules.POST("", scheduleHandler.CreateScheduleHandler)
		schedules.PUT("/:id", scheduleHandler.UpdateScheduleHandler)
		schedules.PATCH("/:id/status", scheduleHandler.UpdateScheduleStatusHandler)
		schedules.DELETE("/:id", scheduleHandler.DeleteScheduleHandler)
	}

	return httptest.NewServer(r)
}

func postJSON(t *testing.T, url string, payload map[string]interface{}) *http.Response {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return res
}

func doJSON(t *testing.T, method, url string, payload map[string]interface{}) *http.Response {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func schedulePayload(trainID uint, dep, arr string, days []bool, start, end string) map[string]interface{} {
	payload := map[string]interface{}{
		"train_id":              trainID,
		"departure_location_id": 1,
		"arrival_location_id":   2,
		"scheduled_departure":   dep,
		"scheduled_arrival":     arr,
		"running_days":          days,
		"effective_start_date":  start,
	}
	if end != "" {
		payload["effective_end_date"] = end
	}
	return payload
}

func TestScheduleConflictFlow(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	monFri := []bool{true, true, true, true, true, false, false}
	monWedFri := []bool{true, false, true, false, true, false, false}
	satSun := []bool{false, false, false, false, false, true, true}

	// Справочные данные: поезд и две станции.
	train := models.Train{TrainNumber: "042А", Type: "скорый"}
	require.NoError(t, storage.DB.Create(&train).Error)
	require.NoError(t, storage.DB.Create(&models.Location{Name: "Москва", Code: "MOW"}).Error)
	require.NoError(t, storage.DB.Create(&models.Location{Name: "Тверь", Code: "TVR"}).Error)

	createURL := ts.URL + "/api/schedules"

	// 1. Базовое расписание: Пн-Пт 08:00-09:00, с 2024-01-01 бессрочно.
	resA := postJSON(t, createURL, schedulePayload(train.ID,
		"2024-01-01T08:00:00Z", "2024-01-01T09:00:00Z", monFri, "2024-01-01", ""))
	defer resA.Body.Close()
	require.Equal(t, http.StatusCreated, resA.StatusCode, "Базовое расписание не создано")

	var schedA models.Schedule
	require.NoError(t, json.NewDecoder(resA.Body).Decode(&schedA))
	assert.Equal(t, models.StatusScheduled, schedA.Status)

	// 2. Пересекающийся кандидат: Пн/Ср/Пт 08:30-09:30 — конфликт 409 со списком пересечений.
	resB := postJSON(t, createURL, schedulePayload(train.ID,
		"2024-02-01T08:30:00Z", "2024-02-01T09:30:00Z", monWedFri, "2024-02-01", "2024-03-01"))
	defer resB.Body.Close()
	assert.Equal(t, http.StatusConflict, resB.StatusCode, "Пересекающийся кандидат должен быть отклонён")

	var conflictRes struct {
		Code      string `json:"code"`
		Conflicts []struct {
			ID uint `json:"id"`
		} `json:"conflicts"`
	}
	require.NoError(t, json.NewDecoder(resB.Body).Decode(&conflictRes))
	assert.Equal(t, "SCHEDULE_CONFLICT", conflictRes.Code)
	require.Len(t, conflictRes.Conflicts, 1)
	assert.Equal(t, schedA.ID, conflictRes.Conflicts[0].ID)

	// 2а. Идемпотентность: повторная проверка того же кандидата даёт тот же результат.
	resB2 := postJSON(t, createURL, schedulePayload(train.ID,
		"2024-02-01T08:30:00Z", "2024-02-01T09:30:00Z", monWedFri, "2024-02-01", "2024-03-01"))
	defer resB2.Body.Close()
	assert.Equal(t, http.StatusConflict, resB2.StatusCode)

	// 3. Сб/Вс в то же время — общих дней нет, конфликта нет.
	resC := postJSON(t, createURL, schedulePayload(train.ID,
		"2024-01-01T08:00:00Z", "2024-01-01T09:00:00Z", satSun, "2024-01-01", ""))
	defer resC.Body.Close()
	require.Equal(t, http.StatusCreated, resC.StatusCode, "Расписание без общих дней должно пройти")

	var schedC models.Schedule
	require.NoError(t, json.NewDecoder(resC.Body).Decode(&schedC))

	// 4. Стык впритык 09:00-10:00 — полуоткрытая семантика, конфликта нет.
	resD := postJSON(t, createURL, schedulePayload(train.ID,
		"2024-01-01T09:00:00Z", "2024-01-01T10:00:00Z", monFri, "2024-01-01", ""))
	defer resD.Body.Close()
	assert.Equal(t, http.StatusCreated, resD.StatusCode, "Стыкующееся расписание должно пройти")

	var schedD models.Schedule
	require.NoError(t, json.NewDecoder(resD.Body).Decode(&schedD))

	// 5. Редактирование без смены времени: расписание не конфликтует само с собой.
	resEdit := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/schedules/%d", ts.URL, schedA.ID),
		schedulePayload(train.ID, "2024-01-01T08:00:00Z", "2024-01-01T09:00:00Z", monFri, "2024-01-01", ""))
	defer resEdit.Body.Close()
	assert.Equal(t, http.StatusOK, resEdit.StatusCode, "Редактирование не должно находить самоконфликт")

	// 6. Подписываемся на события поезда по WebSocket.
	wsURL := fmt.Sprintf("ws%s/api/trains/%d/ws", ts.URL[4:], train.ID)
	wsConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "Ошибка подключения к WS")
	defer wsConn.Close()
	// Ждём регистрации клиента в хабе.
	time.Sleep(100 * time.Millisecond)

	// 7. Переход базового расписания в running: событие уходит подписчикам после коммита.
	resRun := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/schedules/%d/status", ts.URL, schedA.ID),
		map[string]interface{}{"status": "running"})
	defer resRun.Body.Close()
	require.Equal(t, http.StatusOK, resRun.StatusCode)

	var running models.Schedule
	require.NoError(t, json.NewDecoder(resRun.Body).Decode(&running))
	assert.Equal(t, models.StatusRunning, running.Status)
	assert.NotNil(t, running.ActualDeparture)

	_, wsMessage, err := wsConn.ReadMessage()
	require.NoError(t, err, "Ошибка чтения WS сообщения")
	var wsMsg map[string]interface{}
	require.NoError(t, json.Unmarshal(wsMessage, &wsMsg))
	assert.Equal(t, "status_changed", wsMsg["event_type"])

	// 8. Отмена стыкующегося расписания, затем попытка запустить отменённое.
	resCancel := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/schedules/%d/status", ts.URL, schedD.ID),
		map[string]interface{}{"status": "cancelled"})
	defer resCancel.Body.Close()
	require.Equal(t, http.StatusOK, resCancel.StatusCode)

	var cancelled models.Schedule
	require.NoError(t, json.NewDecoder(resCancel.Body).Decode(&cancelled))
	assert.True(t, cancelled.IsCancelled)

	resIllegal := doJSON(t, http.MethodPatch, fmt.Sprintf("%s/api/schedules/%d/status", ts.URL, schedD.ID),
		map[string]interface{}{"status": "running"})
	defer resIllegal.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resIllegal.StatusCode)

	var illegalRes map[string]interface{}
	require.NoError(t, json.NewDecoder(resIllegal.Body).Decode(&illegalRes))
	assert.Equal(t, "ILLEGAL_TRANSITION", illegalRes["code"])

	// Статус отменённого расписания не изменился.
	resGet, err := http.Get(fmt.Sprintf("%s/api/schedules/%d", ts.URL, schedD.ID))
	require.NoError(t, err)
	defer resGet.Body.Close()
	var after models.Schedule
	require.NoError(t, json.NewDecoder(resGet.Body).Decode(&after))
	assert.Equal(t, models.StatusCancelled, after.Status)

	// 9. Отменённое расписание больше не участвует в проверке конфликтов.
	resE := postJSON(t, createURL, schedulePayload(train.ID,
		"2024-01-01T09:15:00Z", "2024-01-01T09:45:00Z", monFri, "2024-01-01", ""))
	defer resE.Body.Close()
	assert.Equal(t, http.StatusCreated, resE.StatusCode, "Отменённое расписание не должно блокировать слот")

	// 10. Перенос расписания на другой поезд: список прежнего поезда
	// (в том числе закэшированный) больше не содержит перенесённое.
	train2 := models.Train{TrainNumber: "777Б", Type: "пассажирский"}
	require.NoError(t, storage.DB.Create(&train2).Error)

	listURL := fmt.Sprintf("%s/api/trains/%d/schedules", ts.URL, train.ID)
	resWarm, err := http.Get(listURL)
	require.NoError(t, err)
	resWarm.Body.Close()

	resMove := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/schedules/%d", ts.URL, schedC.ID),
		schedulePayload(train2.ID, "2024-01-01T08:00:00Z", "2024-01-01T09:00:00Z", satSun, "2024-01-01", ""))
	defer resMove.Body.Close()
	require.Equal(t, http.StatusOK, resMove.StatusCode, "Перенос на свободный поезд должен пройти")

	resList, err := http.Get(listURL)
	require.NoError(t, err)
	defer resList.Body.Close()
	var remaining []models.Schedule
	require.NoError(t, json.NewDecoder(resList.Body).Decode(&remaining))
	for _, s := range remaining {
		assert.NotEqual(t, schedC.ID, s.ID, "перенесённое расписание не должно остаться в списке прежнего поезда")
		assert.Equal(t, train.ID, s.TrainID)
	}
}
