package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Suhanikhatrii/user-data-requisition/internal/config"
	"github.com/Suhanikhatrii/user-data-requisition/internal/database"
	"github.com/Suhanikhatrii/user-data-requisition/internal/document"
	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
	"github.com/Suhanikhatrii/user-data-requisition/internal/identity"
	"github.com/Suhanikhatrii/user-data-requisition/internal/metrics"
	"github.com/Suhanikhatrii/user-data-requisition/internal/requisition"
)

// AppState holds all application services
type AppState struct {
	DB           *bun.DB
	Logger       *zap.Logger
	Users        identity.UserService
	Requisitions requisition.Service
	Renderer     *document.Renderer
	Metrics      *metrics.Metrics
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	// Initialize application state
	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	ctx := context.Background()
	if err := database.CreateTables(ctx, as.DB); err != nil {
		logger.Fatal("Failed to create tables", zap.Error(err))
	}

	// Seed the default administrator account
	bootstrap := config.Bootstrap()
	created, err := identity.EnsureDefaultAdmin(ctx, as.Users,
		bootstrap.AdminExternalID, bootstrap.AdminPassword, bootstrap.AdminName)
	if err != nil {
		logger.Error("Failed to seed default admin", zap.Error(err))
		// Continue anyway - an operator can create the account manually
	} else if created {
		logger.Info("Default admin user created", zap.String("external_id", bootstrap.AdminExternalID))
	}

	// Create HTTP server
	router := setupRouter(as)

	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	// Start server
	logger.Info("Starting requisition server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) (*AppState, error) {
	pgConfig := config.Postgres()

	logger.Info("Database configuration",
		zap.String("host", pgConfig.Host),
		zap.Int("port", pgConfig.Port),
		zap.String("database", pgConfig.Database),
		zap.String("user", pgConfig.User))

	db, err := database.New(pgConfig.DSN(), pgConfig.MaxOpenConnections)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userStore := identity.NewPostgresUserStore(db)
	userService := identity.NewUserService(userStore)

	requisitionStore := requisition.NewPostgresStore(db)
	requisitionService := requisition.NewEngine(requisitionStore)

	return &AppState{
		DB:           db,
		Logger:       logger,
		Users:        userService,
		Requisitions: requisitionService,
		Renderer:     document.NewRenderer(),
		Metrics:      metrics.New(),
	}, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupRouter(as *AppState) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(corsMiddleware())

	// Add logging middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Root and operability endpoints
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Requisition API"})
	})

	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := as.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/login", login(as))
		api.POST("/register", registerUser(as))

		users := api.Group("/users")
		{
			users.GET("", listUsers(as))
			users.PUT("/:userId/password", changePassword(as))
		}

		requisitions := api.Group("/requisitions")
		{
			requisitions.POST("", createRequisition(as))
			requisitions.GET("", listRequisitions(as))
			requisitions.PUT("/:requisitionId", decideRequisition(as))
			requisitions.GET("/:requisitionId/pdf", exportRequisitionPDF(as))
		}
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	origins := config.Http().AllowedOrigins

	for _, origin := range origins {
		if origin == "*" {
			return cors.Default()
		}
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Shutdown server
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		// Close database
		if err := as.DB.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}

// respondError maps the error taxonomy to transport status codes. Storage and
// unexpected errors are logged in full but surfaced opaquely.
func respondError(c *gin.Context, as *AppState, operation string, err error) {
	switch {
	case domain.IsValidation(err):
		var vErr *domain.ValidationError
		errors.As(err, &vErr)
		c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Message})
	case domain.IsAuth(err):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case domain.IsNotFound(err):
		var nfErr *domain.NotFoundError
		errors.As(err, &nfErr)
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("%s not found", capitalize(nfErr.Resource))})
	case domain.IsConflict(err):
		var cErr *domain.ConflictError
		errors.As(err, &cErr)
		c.JSON(http.StatusConflict, gin.H{"message": cErr.Message})
	default:
		as.Logger.Error("Operation failed", zap.String("operation", operation), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// Identity handlers

func login(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req identity.AuthenticateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		summary, err := as.Users.Authenticate(c.Request.Context(), &req)
		if err != nil {
			if domain.IsAuth(err) {
				as.Metrics.AuthFailures.Inc()
			}
			respondError(c, as, "login", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Login successful",
			"uid":        summary.ID,
			"externalId": summary.ExternalID,
			"name":       summary.Name,
			"email":      summary.Email,
			"role":       summary.Role,
		})
	}
}

func registerUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req identity.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		id, err := as.Users.CreateUser(c.Request.Context(), &req)
		if err != nil {
			respondError(c, as, "register user", err)
			return
		}

		as.Logger.Info("User registered",
			zap.String("user_id", id.String()),
			zap.String("external_id", req.ExternalID),
			zap.String("role", string(req.Role)))

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"userId":  id,
		})
	}
}

func listUsers(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := as.Users.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, as, "list users", err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func changePassword(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		var req identity.ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if err := as.Users.ChangePassword(c.Request.Context(), userID, &req); err != nil {
			respondError(c, as, "change password", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

// Requisition handlers

func createRequisition(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requisition.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		created, err := as.Requisitions.Submit(c.Request.Context(), &req)
		if err != nil {
			respondError(c, as, "submit requisition", err)
			return
		}

		as.Metrics.RequisitionsSubmitted.Inc()
		as.Logger.Info("Requisition created",
			zap.String("requisition_id", created.ID.String()),
			zap.String("basin", created.Basin),
			zap.String("requested_by", created.RequestedByUserID))

		c.JSON(http.StatusCreated, gin.H{
			"message": "Requisition created successfully",
			"id":      created.ID,
		})
	}
}

func listRequisitions(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := requisition.Filter{
			Status:            c.Query("status"),
			RequestedByUserID: c.Query("userId"),
			Basin:             c.Query("basin"),
			UserGroup:         c.Query("userGroup"),
		}

		requisitions, err := as.Requisitions.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, as, "list requisitions", err)
			return
		}

		c.JSON(http.StatusOK, requisitions)
	}
}

func decideRequisition(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		requisitionID, err := uuid.Parse(c.Param("requisitionId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Requisition not found"})
			return
		}

		var body struct {
			Status              string `json:"status"`
			DecidedByUserID     string `json:"decidedByUserId"`
			DecidedByExternalID string `json:"decidedByExternalId"`
			DecidedByName       string `json:"decidedByName"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		decider := requisition.Decider{
			UserID:     body.DecidedByUserID,
			ExternalID: body.DecidedByExternalID,
			Name:       body.DecidedByName,
		}

		err = as.Requisitions.Decide(c.Request.Context(), requisitionID, requisition.Status(body.Status), decider)
		if err != nil {
			respondError(c, as, "decide requisition", err)
			return
		}

		as.Metrics.RequisitionsDecided.WithLabelValues(body.Status).Inc()
		as.Logger.Info("Requisition decided",
			zap.String("requisition_id", requisitionID.String()),
			zap.String("status", body.Status),
			zap.String("decided_by", body.DecidedByUserID))

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Requisition %s status updated to %s", requisitionID, body.Status),
		})
	}
}

func exportRequisitionPDF(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		requisitionID, err := uuid.Parse(c.Param("requisitionId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Requisition not found"})
			return
		}

		record, err := as.Requisitions.Get(c.Request.Context(), requisitionID)
		if err != nil {
			respondError(c, as, "export requisition", err)
			return
		}

		data, err := as.Renderer.Render(document.Project(record))
		if err != nil {
			respondError(c, as, "render requisition document", err)
			return
		}

		as.Metrics.DocumentsRendered.Inc()

		filename := fmt.Sprintf("requisition_%s.pdf", requisitionID)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
