package server

import (
	"flowershop-api/internal/apperror"
	"flowershop-api/internal/handler"
	appmw "flowershop-api/internal/middleware"
	"flowershop-api/internal/repository"
	"flowershop-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	echo                *echo.Echo
	auth                echo.MiddlewareFunc
	userHandler         *handler.UserHandler
	orderHandler        *handler.OrderHandler
	subscriptionHandler *handler.SubscriptionHandler
}

func NewServer(
	logger zerolog.Logger,
	jwtSecret string,
	userRepo repository.UserRepository,
	userService service.UserService,
	orderService service.OrderService,
	subscriptionService service.SubscriptionService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogMethod: true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:                e,
		auth:                appmw.Auth(jwtSecret, userRepo),
		userHandler:         handler.NewUserHandler(userService),
		orderHandler:        handler.NewOrderHandler(orderService),
		subscriptionHandler: handler.NewSubscriptionHandler(subscriptionService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	admin := appmw.AdminOnly()

	// -------- users --------
	users := api.Group("/users")
	users.POST("/register", s.userHandler.Register)
	users.POST("/login", s.userHandler.Login)
	users.GET("/profile", s.userHandler.GetProfile, s.auth)
	users.PUT("/profile", s.userHandler.UpdateProfile, s.auth)
	users.DELETE("/profile", s.userHandler.DeleteProfile, s.auth)
	users.GET("", s.userHandler.ListUsers, s.auth, admin)
	users.PUT("/:id/role", s.userHandler.SetRole, s.auth, admin)

	// -------- orders --------
	orders := api.Group("/orders", s.auth)
	orders.POST("", s.orderHandler.Create)
	orders.GET("/mine", s.orderHandler.ListMine)
	orders.GET("", s.orderHandler.ListAll, admin)
	orders.GET("/:id", s.orderHandler.GetByID)
	orders.PATCH("/:id/status", s.orderHandler.UpdateStatus, admin)

	// -------- subscriptions --------
	subs := api.Group("/subscriptions", s.auth)
	subs.POST("", s.subscriptionHandler.Create)
	subs.GET("/mine", s.subscriptionHandler.ListMine)
	subs.GET("", s.subscriptionHandler.ListAll, admin)
	subs.PUT("/:id", s.subscriptionHandler.Update)
	subs.DELETE("/:id", s.subscriptionHandler.Cancel)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
