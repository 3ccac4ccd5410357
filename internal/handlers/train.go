package handlers

import (
	"net/http"
	"strconv"

	"train_dispatch/internal/models"
	"train_dispatch/internal/response"
	"train_dispatch/internal/storage"

	"github.com/gin-gonic/gin"
)

type TrainRequest struct {
	TrainNumber string `json:"train_number" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

// CreateTrainHandler создает поезд
// @Summary		Создание поезда
// @Tags			trains
// @Accept			json
// @Produce		json
// @Param			train	body		TrainRequest	true	"Данные поезда"
// @Security		BearerAuth
// @Success		201	{object}	models.Train	"Созданный поезд"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR) или номер занят (TRAIN_EXISTS)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/trains [post]
func CreateTrainHandler(c *gin.Context) {
	var req TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	var existing models.Train
	if err := storage.DB.Where("train_number = ?", req.TrainNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "TRAIN_EXISTS",
			Message: "Поезд с таким номером уже существует",
		})
		return
	}

	train := models.Train{
		TrainNumber: req.TrainNumber,
		Type:        req.Type,
	}
	if err := storage.DB.Create(&train).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании поезда",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, train)
}

// GetTrainsHandler возвращает список поездов
// @Summary		Список поездов
// @Tags			trains
// @Produce		json
// @Success		200	{array}		models.Train
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/trains [get]
func GetTrainsHandler(c *gin.Context) {
	var trains []models.Train
	if err := storage.DB.Order("id ASC").Find(&trains).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки поездов",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, trains)
}

// GetTrainHandler возвращает поезд по id
// @Summary		Получение поезда
// @Tags			trains
// @Produce		json
// @Param			id	path		string	true	"ID поезда"
// @Success		200	{object}	models.Train
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_TRAIN_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Поезд не найден (NOT_FOUND)"
// @Router			/api/trains/{id} [get]
func GetTrainHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TRAIN_ID",
			Message: "Неверный идентификатор поезда",
		})
		return
	}

	var train models.Train
	if err := storage.DB.First(&train, id).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Поезд не найден",
		})
		return
	}
	c.JSON(http.StatusOK, train)
}
