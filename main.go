package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/SergioCaMi/Gallery/controllers"
	"github.com/SergioCaMi/Gallery/database"
	"github.com/SergioCaMi/Gallery/security"
	"github.com/SergioCaMi/Gallery/services"
	"github.com/SergioCaMi/Gallery/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	demoMode := os.Getenv("USE_DEMO_AUTH") == "true"

	security.InitSessionStore([]byte(envOr("SESSION_SECRET", "your-secret-key")))
	if !demoMode {
		clientID := os.Getenv("GOOGLE_CLIENT_ID")
		clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
		if clientID == "" || clientSecret == "" {
			slog.Error("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required outside demo mode")
			os.Exit(1)
		}
		security.RegisterGoogleProvider(clientID, clientSecret,
			envOr("GOOGLE_CALLBACK_URL", "http://localhost:5000/google/callback"))
	}

	st, err := selectStore(demoMode)
	if err != nil {
		slog.Error("Failed to init the image store", "error", err)
		os.Exit(1)
	}

	ic := controllers.NewImageController(st, services.NewFetcher())
	ac := controllers.NewAuthController(demoMode)

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/public", "./public")

	r.GET("/", ic.Home)
	r.GET("/image/:id/view", ic.ViewImage)
	r.GET("/image/:id/download", ic.DownloadImage)

	auth := r.Group("/", security.RequireAuth())
	auth.GET("/new-image", ic.NewImageForm)
	auth.POST("/new-image", ic.CreateImage)
	auth.GET("/image/:id/edit", ic.EditImageForm)
	auth.POST("/edit-image", ic.UpdateImage)
	auth.POST("/image/:id/delete", ic.DeleteImage)

	r.GET("/auth/google", ac.Login)
	r.GET("/google/callback", ac.Callback)
	r.GET("/logout", ac.Logout)

	r.NoRoute(ic.NotFound)

	port := envOr("PORT", "5000")
	slog.Info("Starting the server", "port", port, "demo_mode", demoMode)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Server run error", "error", err)
		os.Exit(1)
	}
}

// selectStore picks the persistence backend once at startup; nothing
// downstream ever branches on the mode again.
func selectStore(demoMode bool) (store.ImageStore, error) {
	if demoMode {
		return store.NewSnapshotStore(envOr("DEMO_DATA_FILE", "data/demo-images.json"))
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, envOr("MONGO_URI", "mongodb://localhost:27017"), "gallery")
	if err != nil {
		return nil, err
	}
	return store.NewMongoStore(ctx, db)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
