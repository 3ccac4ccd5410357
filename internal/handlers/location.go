package handlers

import (
	"net/http"
	"strconv"

	"train_dispatch/internal/models"
	"train_dispatch/internal/response"
	"train_dispatch/internal/storage"

	"github.com/gin-gonic/gin"
)

type LocationRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateLocationHandler создает станцию
// @Summary		Создание станции
// @Tags			locations
// @Accept			json
// @Produce		json
// @Param			location	body		LocationRequest	true	"Данные станции"
// @Security		BearerAuth
// @Success		201	{object}	models.Location	"Созданная станция"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR) или код занят (LOCATION_EXISTS)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/locations [post]
func CreateLocationHandler(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	var existing models.Location
	if err := storage.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "LOCATION_EXISTS",
			Message: "Станция с таким кодом уже существует",
		})
		return
	}

	location := models.Location{
		Name: req.Name,
		Code: req.Code,
	}
	if err := storage.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании станции",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, location)
}

// GetLocationsHandler возвращает список станций
// @Summary		Список станций
// @Tags			locations
// @Produce		json
// @Success		200	{array}		models.Location
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/locations [get]
func GetLocationsHandler(c *gin.Context) {
	var locations []models.Location
	if err := storage.DB.Order("id ASC").Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки станций",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocationHandler возвращает станцию по id
// @Summary		Получение станции
// @Tags			locations
// @Produce		json
// @Param			id	path		string	true	"ID станции"
// @Success		200	{object}	models.Location
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_LOCATION_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Станция не найдена (NOT_FOUND)"
// @Router			/api/locations/{id} [get]
func GetLocationHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_LOCATION_ID",
			Message: "Неверный идентификатор станции",
		})
		return
	}

	var location models.Location
	if err := storage.DB.First(&location, id).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Станция не найдена",
		})
		return
	}
	c.JSON(http.StatusOK, location)
}
