package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/xlance-app/xlance-backend/internal/config"
	"github.com/xlance-app/xlance-backend/internal/handler"
	appmw "github.com/xlance-app/xlance-backend/internal/middleware"
	"github.com/xlance-app/xlance-backend/internal/realtime"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"github.com/xlance-app/xlance-backend/internal/service"
	"github.com/xlance-app/xlance-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e     *echo.Echo
	repos []interface{ SetDB(*gorm.DB) }
	sha   string
	build string
}

func New(db *gorm.DB, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	broker := realtime.NewBroker()

	gigRepo := repository.NewGigRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	convRepo := repository.NewConversationRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	earningsRepo := repository.NewEarningsRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	notifSvc := service.NewNotificationService(notifRepo, broker)
	gigSvc := service.NewGigService(gigRepo)
	profileSvc := service.NewProfileService(profileRepo)
	convSvc := service.NewConversationService(convRepo, profileRepo, notifSvc, broker)
	orderSvc := service.NewOrderService(orderRepo, gigRepo, convRepo, earningsRepo, notifSvc, broker)
	earningsSvc := service.NewEarningsService(earningsRepo)
	reportSvc := service.NewReportService(orderRepo, profileRepo)

	gigHandler := handler.NewGigHandler(gigSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	convHandler := handler.NewConversationHandler(convSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	earningsHandler := handler.NewEarningsHandler(earningsSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	wsHandler := realtime.NewWSHandler(broker)

	authMw, err := appmw.NewAuthMiddleware(context.Background(), cfg.FirebaseProjectID)
	if err != nil {
		e.Logger.Fatalf("failed to init firebase auth: %v", err)
	}
	userHandler := handler.NewUserHandler(authMw.Client())

	var uploadHandler *handler.UploadHandler
	if cfg.StorageBucket != "" {
		uploader, err := storage.NewUploader(context.Background(), cfg.StorageBucket)
		if err != nil {
			log.Printf("storage uploader disabled: %v", err)
		} else {
			uploadHandler = handler.NewUploadHandler(uploader, gigSvc)
		}
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	api.GET("/gigs", gigHandler.List)
	api.GET("/gigs/:id", gigHandler.Get)
	api.GET("/categories", categoryHandler.List)
	api.GET("/users/:uid/public", userHandler.GetPublic)
	api.POST("/auth/precheck", userHandler.Precheck)

	api.POST("/gigs", gigHandler.Create, authMw.RequireAuth)
	api.PUT("/gigs/:id", gigHandler.Update, authMw.RequireAuth)
	api.DELETE("/gigs/:id", gigHandler.Delete, authMw.RequireAuth)
	api.GET("/me/gigs", gigHandler.ListMine, authMw.RequireAuth)
	if uploadHandler != nil {
		api.POST("/gigs/:id/image", uploadHandler.UploadGigImage, authMw.RequireAuth)
	}

	api.GET("/me/profile", profileHandler.Me, authMw.RequireAuth)
	api.PUT("/me/profile", profileHandler.Update, authMw.RequireAuth)
	api.POST("/me/onboarding", profileHandler.CompleteOnboarding, authMw.RequireAuth)

	api.POST("/orders", orderHandler.Create, authMw.RequireAuth)
	api.GET("/orders/:id", orderHandler.Get, authMw.RequireAuth)
	api.POST("/orders/:id/deliver", orderHandler.Deliver, authMw.RequireAuth)
	api.POST("/orders/:id/complete", orderHandler.Complete, authMw.RequireAuth)
	api.POST("/orders/:id/cancel", orderHandler.Cancel, authMw.RequireAuth)
	api.GET("/me/orders", orderHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/sales", orderHandler.ListSales, authMw.RequireAuth)

	api.POST("/conversations", convHandler.Start, authMw.RequireAuth)
	api.GET("/conversations", convHandler.List, authMw.RequireAuth)
	api.GET("/conversations/:id", convHandler.Get, authMw.RequireAuth)
	api.GET("/conversations/:id/messages", convHandler.ListMessages, authMw.RequireAuth)
	api.POST("/conversations/:id/messages", convHandler.SendMessage, authMw.RequireAuth)
	api.POST("/conversations/:id/read", convHandler.MarkRead, authMw.RequireAuth)

	api.GET("/notifications", notifHandler.List, authMw.RequireAuth)
	api.GET("/notifications/unread-count", notifHandler.UnreadCount, authMw.RequireAuth)
	api.POST("/notifications/read-all", notifHandler.MarkAllRead, authMw.RequireAuth)

	api.GET("/me/earnings", earningsHandler.Get, authMw.RequireAuth)
	api.POST("/me/earnings/withdraw", earningsHandler.Withdraw, authMw.RequireAuth)

	api.GET("/reports/summary", reportHandler.Summary, authMw.RequireAuth)
	api.GET("/reports/monthly", reportHandler.Monthly, authMw.RequireAuth)
	api.GET("/reports/categories", reportHandler.Categories, authMw.RequireAuth)
	api.GET("/reports/transactions", reportHandler.Transactions, authMw.RequireAuth)
	api.GET("/reports/partners", reportHandler.TopPartners, authMw.RequireAuth)
	api.GET("/reports/metrics", reportHandler.Metrics, authMw.RequireAuth)
	api.GET("/reports/overview", reportHandler.Overview, authMw.RequireAuth)

	api.GET("/ws", wsHandler.Serve, authMw.RequireAuth)

	return &Server{
		e: e,
		repos: []interface{ SetDB(*gorm.DB) }{
			gigRepo, profileRepo, orderRepo, convRepo, notifRepo, earningsRepo, categoryRepo,
		},
		sha:   sha,
		build: buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the database into every repo once the async connect in main
// finishes.
func (s *Server) SetDB(db *gorm.DB) {
	for _, r := range s.repos {
		r.SetDB(db)
	}
}
