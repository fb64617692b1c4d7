package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"telemed/config"
	"telemed/internal/service"
	"telemed/internal/transport/websocket"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	hub      *websocket.Hub
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, hub *websocket.Hub) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		hub:      hub,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.errorMiddleware())
	router.Use(h.corsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	api.Use(h.authMiddleware())
	{
		consultations := api.Group("/consultations")
		{
			consultations.POST("/", h.doctorMiddleware(), h.createConsultation)
			consultations.GET("/", h.listConsultations)
			consultations.GET("/:id", h.getConsultationByID)
			consultations.GET("/:id/availability", h.getConsultationAvailability)
			consultations.PUT("/:id", h.updateConsultation)
			consultations.DELETE("/:id", h.adminMiddleware(), h.deleteConsultation)

			consultations.POST("/:id/start", h.doctorMiddleware(), h.startConsultation)
			consultations.POST("/:id/end", h.doctorMiddleware(), h.endConsultation)
			consultations.POST("/:id/cancel", h.doctorMiddleware(), h.cancelConsultation)
			consultations.POST("/:id/no-show", h.doctorMiddleware(), h.markConsultationNoShow)
			consultations.POST("/:id/reschedule", h.doctorMiddleware(), h.rescheduleConsultation)

			consultations.POST("/:id/waiting-room", h.joinWaitingRoom)
			consultations.POST("/:id/waiting-room/notify", h.notifyDoctor)
			consultations.GET("/:id/waiting-room", h.getWaitingRoom)
			consultations.PUT("/:id/waiting-room/wait", h.doctorMiddleware(), h.updateEstimatedWait)
			consultations.PUT("/:id/waiting-room/position", h.doctorMiddleware(), h.updateQueuePosition)

			consultations.POST("/:id/participants", h.joinConsultation)
			consultations.DELETE("/:id/participants", h.leaveConsultation)
			consultations.GET("/:id/participants", h.getParticipants)

			consultations.POST("/:id/messages", h.sendMessage)
			consultations.GET("/:id/messages", h.getMessageHistory)
			consultations.POST("/:id/attachments", h.attachFile)

			consultations.POST("/:id/issues", h.reportIssue)
			consultations.GET("/:id/issues", h.listIssues)
		}

		issues := api.Group("/issues")
		{
			issues.POST("/:id/resolve", h.resolveIssue)
		}

		waitingRooms := api.Group("/waiting-rooms")
		{
			waitingRooms.GET("/", h.doctorMiddleware(), h.listWaitingRooms)
		}

		providers := api.Group("/providers")
		providers.Use(h.adminMiddleware())
		{
			providers.GET("/", h.listProviders)
			providers.GET("/:provider", h.getProvider)
			providers.PUT("/:provider", h.updateProvider)
			providers.PUT("/:provider/credentials", h.updateProviderCredentials)
			providers.POST("/select", h.selectProvider)
		}

		ws := api.Group("/ws")
		{
			ws.GET("/consultations/:id", h.subscribeConsultation)
		}
	}
}
