package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"factionhub/admin"
	"factionhub/analytics"
	"factionhub/auth"
	"factionhub/cache"
	"factionhub/common"
	"factionhub/database"
	"factionhub/site"
	"factionhub/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db := common.ConnectDb()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	analyticsModule := analytics.NewAnalyticsModule(common.ConnectAnalyticsDb())
	authService := auth.NewService(db)
	store := storage.FromEnv()

	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set")
	}

	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})

	router.Use(sessions.Sessions("factionhub-session", cookieStore))

	router.SetFuncMap(map[string]interface{}{
		"now": func() time.Time {
			return time.Now()
		},
	})

	router.LoadHTMLGlob("*/views/*.html")

	router.Static("/public", "./public")
	if mediaDir := os.Getenv("media_dir"); mediaDir != "" {
		router.Static("/media", mediaDir)
	}

	// Public faction pages are cached on disk until the next admin edit.
	router.Use(cache.CacheMiddleware(24*time.Hour, analyticsModule.TrackVisit))

	adminModule := admin.NewAdminModule(db, authService, store, analyticsModule)
	adminModule.RegisterRoutes(router)

	siteModule := site.NewSiteModule(db)
	siteModule.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
