package main

import (
	"fmt"
	"log"
	"os"

	_ "train_dispatch/docs"
	"train_dispatch/internal/auth"
	"train_dispatch/internal/handlers"
	"train_dispatch/internal/models"
	"train_dispatch/internal/schedule"
	"train_dispatch/internal/storage"
	"train_dispatch/internal/tasks"
	"train_dispatch/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Диспетчеризация поездов по слотам расписания
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Train{}, &models.Location{}, &models.Schedule{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	go ws.HubInstance.Run()

	scheduleService := schedule.NewService(storage.DB, ws.HubInstance)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	tasks.InitScheduler(storage.DB, scheduleService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/refresh", handlers.RefreshToken)
	}

	trains := r.Group("/api/trains")
	{
		trains.GET("", handlers.GetTrainsHandler)
		trains.GET("/:id", handlers.GetTrainHandler)
		trains.GET("/:id/schedules", scheduleHandler.GetTrainSchedulesHandler)
		trains.GET("/:id/ws", ws.TrainWebSocketHandler)
		trains.POST("", auth.AuthMiddleware(), handlers.CreateTrainHandler)
	}

	locations := r.Group("/api/locations")
	{
		locations.GET("", handlers.GetLocationsHandler)
		locations.GET("/:id", handlers.GetLocationHandler)
		locations.POST("", auth.AuthMiddleware(), handlers.CreateLocationHandler)
	}

	schedules := r.Group("/api/schedules")
	{
		schedules.GET("/ws", ws.ScheduleFeedHandler)
		schedules.GET("/:id", scheduleHandler.GetScheduleHandler)
		schedules.POST("", auth.AuthMiddleware(), scheduleHandler.CreateScheduleHandler)
		schedules.PUT("/:id", auth.AuthMiddleware(), scheduleHandler.UpdateScheduleHandler)
		schedules.PATCH("/:id/status", auth.AuthMiddleware(), scheduleHandler.UpdateScheduleStatusHandler)
		schedules.DELETE("/:id", auth.AuthMiddleware(), scheduleHandler.DeleteScheduleHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
