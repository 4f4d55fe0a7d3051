package ginserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybook/internal/infra/config"
	"staybook/internal/infra/obs"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	ListMine(c *gin.Context)
}

type HostBookingHTTP interface {
	List(c *gin.Context)
	Accept(c *gin.Context)
	Reject(c *gin.Context)
}

type PropertyHTTP interface {
	Catalog(c *gin.Context)
	Get(c *gin.Context)
}

type HostPropertyHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Toggle(c *gin.Context)
}

type MeHTTP interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	ListNotifications(c *gin.Context)
	MarkAllNotificationsRead(c *gin.Context)
}

type NotificationHTTP interface {
	Send(c *gin.Context)
	MarkRead(c *gin.Context)
}

type Handlers struct {
	Booking        BookingHTTP
	HostBooking    HostBookingHTTP
	Property       PropertyHTTP
	HostProperty   HostPropertyHTTP
	Me             MeHTTP
	Notification   NotificationHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if cfg.RequestTimeout > 0 {
		router.Use(requestTimeout(cfg.RequestTimeout))
	}
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Property != nil {
		api.GET("/properties", h.Property.Catalog)
		api.GET("/properties/:id", h.Property.Get)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
	}
	if h.Notification != nil {
		api.POST("/notifications", h.Notification.Send)
		api.POST("/notifications/:id/read", h.Notification.MarkRead)
	}
	if h.HostProperty != nil {
		hostProperties := api.Group("/host/properties")
		hostProperties.GET("", h.HostProperty.List)
		hostProperties.POST("", h.HostProperty.Create)
		hostProperties.POST("/:id/toggle", h.HostProperty.Toggle)
	}
	if h.HostBooking != nil {
		hostBookings := api.Group("/host/bookings")
		hostBookings.GET("", h.HostBooking.List)
		hostBookings.POST("/:id/accept", h.HostBooking.Accept)
		hostBookings.POST("/:id/reject", h.HostBooking.Reject)
	}
	if h.Me != nil {
		me := api.Group("/me")
		me.GET("/profile", h.Me.GetProfile)
		me.PUT("/profile", h.Me.UpdateProfile)
		if h.Booking != nil {
			me.GET("/bookings", h.Booking.ListMine)
		}
		me.GET("/notifications", h.Me.ListNotifications)
		me.POST("/notifications/read-all", h.Me.MarkAllNotificationsRead)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

// requestTimeout bounds every store call made on behalf of the request.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}

var (
	_ BookingHTTP      = BookingHandler{}
	_ HostBookingHTTP  = HostBookingHandler{}
	_ PropertyHTTP     = PropertyHandler{}
	_ HostPropertyHTTP = HostPropertyHandler{}
	_ MeHTTP           = MeHandler{}
	_ NotificationHTTP = NotificationHandler{}
)
