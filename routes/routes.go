package routes

import (
	"net/http"
	"time"

	"hotel-backoffice/controllers"
	"hotel-backoffice/middleware"
	"hotel-backoffice/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers bundles what the router needs.
type Handlers struct {
	Auth         *controllers.AuthController
	Rooms        *controllers.RoomController
	Clients      *controllers.ClientController
	Tariffs      *controllers.TariffController
	Services     *controllers.ServiceController
	Reservations *controllers.ReservationController
	Consumptions *controllers.ConsumptionController
	Invoices     *controllers.InvoiceController
	Reviews      *controllers.ReviewController
	Dashboard    *controllers.DashboardController
	Roles        *controllers.RoleController
	Admin        *controllers.AdminController

	Tokens      middleware.TokenParser
	Permissions middleware.PermissionChecker
}

func SetupRouter(h Handlers, origins []string, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	can := func(perm string) gin.HandlerFunc {
		return middleware.RequirePermission(h.Permissions, log, perm)
	}

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("", middleware.JWTAuth(h.Tokens))
	{
		secured.GET("/me", h.Auth.Me)

		rooms := secured.Group("/rooms")
		{
			rooms.GET("", can(services.PermCatalogView), h.Rooms.GetRooms)
			// before /:id
			rooms.GET("/available", can(services.PermCatalogView), h.Rooms.GetAvailableRooms)
			rooms.GET("/:id", can(services.PermCatalogView), h.Rooms.GetRoom)
			rooms.POST("", can(services.PermCatalogManage), h.Rooms.CreateRoom)
			rooms.PUT("/:id", can(services.PermCatalogManage), h.Rooms.UpdateRoom)
			rooms.DELETE("/:id", can(services.PermCatalogManage), h.Rooms.DeleteRoom)
			rooms.POST("/:id/cleaned", can(services.PermRoomClean), h.Rooms.MarkCleaned)
		}

		clients := secured.Group("/clients")
		{
			clients.GET("", can(services.PermClientView), h.Clients.GetClients)
			clients.GET("/:id", can(services.PermClientView), h.Clients.GetClient)
			clients.POST("", can(services.PermClientManage), h.Clients.CreateClient)
			clients.PUT("/:id", can(services.PermClientManage), h.Clients.UpdateClient)
			clients.DELETE("/:id", can(services.PermClientDelete), h.Clients.DeleteClient)
		}

		tariffs := secured.Group("/tariffs")
		{
			tariffs.GET("", can(services.PermCatalogView), h.Tariffs.GetTariffs)
			tariffs.GET("/applicable", can(services.PermCatalogView), h.Tariffs.GetApplicable)
			tariffs.GET("/:id", can(services.PermCatalogView), h.Tariffs.GetTariff)
			tariffs.POST("", can(services.PermCatalogManage), h.Tariffs.CreateTariff)
			tariffs.PUT("/:id", can(services.PermCatalogManage), h.Tariffs.UpdateTariff)
			tariffs.DELETE("/:id", can(services.PermCatalogManage), h.Tariffs.DeleteTariff)
		}

		extras := secured.Group("/services")
		{
			extras.GET("", can(services.PermCatalogView), h.Services.GetServices)
			extras.GET("/:id", can(services.PermCatalogView), h.Services.GetService)
			extras.POST("", can(services.PermCatalogManage), h.Services.CreateService)
			extras.PUT("/:id", can(services.PermCatalogManage), h.Services.UpdateService)
			extras.DELETE("/:id", can(services.PermCatalogManage), h.Services.DeleteService)
		}

		reservations := secured.Group("/reservations")
		{
			reservations.GET("", can(services.PermReservationView), h.Reservations.GetReservations)
			reservations.GET("/:id", can(services.PermReservationView), h.Reservations.GetReservation)
			reservations.POST("", can(services.PermReservationCreate), h.Reservations.CreateReservation)
			reservations.POST("/:id/cancel", can(services.PermReservationCancel), h.Reservations.CancelReservation)
			reservations.POST("/:id/services", can(services.PermReservationService), h.Reservations.AttachService)
		}

		consumptions := secured.Group("/consumptions")
		{
			consumptions.GET("", can(services.PermConsumptionView), h.Consumptions.GetConsumptions)
			consumptions.POST("", can(services.PermConsumptionCreate), h.Consumptions.RecordConsumption)
		}

		invoices := secured.Group("/invoices")
		{
			invoices.GET("", can(services.PermInvoiceView), h.Invoices.GetInvoices)
			invoices.GET("/:id", can(services.PermInvoiceView), h.Invoices.GetInvoice)
			invoices.POST("", can(services.PermInvoiceGenerate), h.Invoices.GenerateInvoice)
			invoices.PUT("/:id", can(services.PermInvoiceUpdate), h.Invoices.UpdateInvoice)
		}

		reviews := secured.Group("/reviews")
		{
			reviews.GET("", can(services.PermReviewView), h.Reviews.GetReviews)
			reviews.POST("", can(services.PermReviewSubmit), h.Reviews.SubmitReview)
			reviews.POST("/:id/approve", can(services.PermReviewModerate), h.Reviews.ApproveReview)
			reviews.DELETE("/:id", can(services.PermReviewModerate), h.Reviews.DeleteReview)
		}

		secured.GET("/dashboard", can(services.PermDashboardView), h.Dashboard.GetStats)

		roles := secured.Group("/roles", can(services.PermRolesManage))
		{
			roles.GET("", h.Roles.GetRoles)
			roles.PUT("/:id/permissions", h.Roles.UpdateRolePermissions)
		}

		users := secured.Group("/users", can(services.PermRolesManage))
		{
			users.GET("", h.Auth.ListUsers)
			users.POST("", h.Auth.CreateUser)
			users.DELETE("/:id", h.Auth.DeleteUser)
		}

		secured.POST("/reconcile", can(services.PermReconcileRun), h.Admin.Reconcile)
		secured.GET("/audit-logs", can(services.PermRolesManage), h.Admin.GetAuditLogs)
	}

	return r
}
