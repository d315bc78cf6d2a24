package main

import (
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"blog-api/globals"
	"blog-api/handlers"
	"blog-api/initializers"
	"blog-api/middleware"
	"blog-api/pkg/appenv"
	"blog-api/pkg/tokens"
	"blog-api/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if len(sessionSecret) < 32 {
		log.Fatal("SESSION_SECRET must be set and at least 32 characters")
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	usersRepo := repository.NewUsersRepository(db)
	postsRepo := repository.NewPostsRepository(db)

	if err := initializers.EnsureAdminUser(usersRepo); err != nil {
		log.Fatal("Failed to ensure admin user:", err)
	}

	if gin.Mode() == gin.ReleaseMode || appenv.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	sessionStore := cookie.NewStore([]byte(sessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   appenv.IsProduction(),
	})
	r.Use(sessions.Sessions(globals.SessionName, sessionStore))

	// Bearer tokens live in process memory: a restart invalidates them
	// all. TOKEN_TTL_HOURS=0 keeps tokens valid until logout.
	ttl := time.Duration(envInt("TOKEN_TTL_HOURS", 0)) * time.Hour
	tokenStore := tokens.NewMemoryStore(ttl)

	authHandler := handlers.NewAuthHandler(usersRepo, tokenStore)
	postsHandler := handlers.NewPostsHandler(postsRepo, authHandler)

	api := r.Group("/api")
	api.GET("/health", handlers.HealthCheck)

	authGroup := api.Group("/auth", middleware.RateLimitAuth())
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me)

	api.POST("/posts", postsHandler.CreatePost)
	api.GET("/posts", postsHandler.GetPosts)
	api.GET("/posts/:id", postsHandler.GetPost)

	if initializers.UploadsEnabled() {
		if err := initializers.InitMinio(); err != nil {
			log.Fatal("Failed to initialize uploads storage:", err)
		}
		uploadsRepo := repository.NewUploadsRepository(db)
		uploadsHandler := handlers.NewUploadsHandler(uploadsRepo, authHandler)
		api.POST("/uploads", uploadsHandler.UploadFile)
		api.GET("/uploads/:id", uploadsHandler.GetFile)
	}

	// Everything the API does not claim belongs to the single-page app.
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "frontend/build"
	}
	r.NoRoute(handlers.SPAFallback(staticDir))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	log.Println("Listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server error:", err)
	}
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
