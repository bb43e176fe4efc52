package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"vols_gis/backend/auth"
	"vols_gis/backend/config"
	"vols_gis/backend/models"
	"vols_gis/backend/store"
)

const Version = "v1.0.0"

type app struct {
	db  *gorm.DB
	cfg *config.Config
}

func (a *app) secret() []byte {
	return []byte(a.cfg.JWTSecret)
}

// generateRandomPassword builds the one-time admin password printed at first
// start.
func generateRandomPassword(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("failed to generate random password")
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// seedAdmin creates the initial admin account when the users table is empty.
func seedAdmin(db *gorm.DB) {
	count, err := store.CountUsers(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count users")
	}
	if count > 0 {
		return
	}
	password := generateRandomPassword(12)
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}
	admin := models.User{
		Username:     "admin",
		Email:        "admin@vols-gis.local",
		PasswordHash: hash,
		Role:         "admin",
		IsActive:     true,
	}
	if err := store.CreateUser(db, &admin); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}
	log.Warn().
		Str("username", "admin").
		Str("password", password).
		Msg("first start: admin account created, log in and change the password")
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

// newRouter builds the immutable routing table: route -> gates -> handler.
func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger())
	// last-resort safety net: a panic still answers with the JSON envelope
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("panic in handler")
		c.AbortWithStatusJSON(500, gin.H{"error": kindInternal, "message": "internal server error"})
	}))

	corsConfig := cors.DefaultConfig()
	if a.cfg.CORSOrigins == "*" || a.cfg.CORSOrigins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(a.cfg.CORSOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.OptionsResponseStatusCode = 200
	r.Use(cors.New(corsConfig))

	requireAuth := auth.RequireAuth(a.secret())
	requireAdmin := auth.RequireRole(a.secret(), "admin")

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok", "version": Version})
		})

		api.POST("/auth/login", a.login)
		api.GET("/auth/me", requireAuth, a.me)

		nodes := api.Group("/nodes")
		{
			nodes.GET("", a.listNodes)
			nodes.POST("", a.createNode)
			nodes.GET("/nearby", a.nearbyNodes)
			nodes.GET("/:id", a.getNode)
			nodes.PUT("/:id", a.updateNode)
			nodes.DELETE("/:id", a.deleteNode)
		}

		vols := api.Group("/vols")
		{
			vols.GET("", a.listVols)
			vols.POST("", a.createVols)
			vols.GET("/:id", a.getVols)
			vols.PUT("/:id", a.updateVols)
			vols.DELETE("/:id", a.deleteVols)
			vols.GET("/:id/path", a.volsPath)
		}

		fibers := api.Group("/fibers")
		{
			fibers.GET("", a.listFibers)
			fibers.POST("", a.createFiber)
			fibers.GET("/by-vols/:vols_id", a.fibersByVols)
			fibers.GET("/:id", a.getFiber)
			fibers.PUT("/:id", a.updateFiber)
			fibers.DELETE("/:id", a.deleteFiber)
		}

		links := api.Group("/links")
		{
			links.GET("", a.listLinks)
			links.POST("", a.createLink)
			links.GET("/search", a.searchLinks)
			links.GET("/:id", a.getLink)
			links.PUT("/:id", a.updateLink)
			links.DELETE("/:id", a.deleteLink)
		}

		users := api.Group("/users")
		{
			users.GET("", requireAuth, a.listUsers)
			users.POST("", requireAdmin, a.createUser)
			users.GET("/:id", requireAuth, a.getUser)
			users.PUT("/:id", requireAuth, a.updateUser)
			users.DELETE("/:id", requireAdmin, a.deleteUser)
		}

		webmaps := api.Group("/webmaps")
		{
			webmaps.GET("", a.listWebMaps)
			webmaps.POST("", a.createWebMap)
			webmaps.GET("/:id", a.getWebMap)
			webmaps.PUT("/:id", a.updateWebMap)
			webmaps.DELETE("/:id", a.deleteWebMap)
		}

		export := api.Group("/export", requireAuth)
		{
			export.GET("/nodes.geojson", a.exportNodesGeoJSON)
			export.GET("/vols.geojson", a.exportVolsGeoJSON)
			export.GET("/nodes.csv", a.exportNodesCSV)
			export.GET("/fibers.csv", a.exportFibersCSV)
			export.GET("/all.json", a.exportAllJSON)
		}

		stats := api.Group("/stats", requireAuth)
		{
			stats.GET("/dashboard", a.statsDashboard)
			stats.GET("/summary", a.statsSummary)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, 404, kindNotFound, "no such route")
	})

	return r
}

// parseID reads the numeric id path parameter.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		fail(c, 400, kindValidation, "invalid "+param+" parameter")
		return 0, false
	}
	return uint(id), true
}

// parseQueryID reads a numeric id query parameter.
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		fail(c, 400, kindValidation, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

func main() {
	port := flag.String("p", "", "listen port (overrides VOLS_PORT)")
	showVersion := flag.Bool("v", false, "print version")
	resetPassword := flag.String("reset-password", "", "reset a user password (format: username:newpassword)")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *showVersion {
		fmt.Printf("vols-gis version: %s\n", Version)
		return
	}

	cfg := config.Get()
	db, err := store.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}
	if err := store.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	seedAdmin(db)

	if *resetPassword != "" {
		parts := strings.SplitN(*resetPassword, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			fmt.Println("error: use -reset-password username:newpassword")
			return
		}
		username, newPass := parts[0], parts[1]
		if len(newPass) < 6 {
			fmt.Println("error: password must be at least 6 characters")
			return
		}
		user, err := store.GetUserByUsername(db, username)
		if err != nil {
			fmt.Printf("error: user %q not found\n", username)
			return
		}
		hash, err := auth.HashPassword(newPass)
		if err != nil {
			fmt.Println("error: failed to hash password")
			return
		}
		if _, err := store.UpdateUser(db, user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
			fmt.Println("error: failed to update password")
			return
		}
		fmt.Printf("password for %q has been reset\n", username)
		return
	}

	if !cfg.JWTSecretFromEnv {
		log.Warn().Msg("JWT secret is auto-generated, tokens will not survive a restart; set VOLS_JWT_SECRET")
	}

	listenPort := cfg.Port
	if *port != "" {
		listenPort = *port
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(&app{db: db, cfg: cfg})

	log.Info().Str("port", listenPort).Str("version", Version).Msg("vols-gis backend starting")
	if err := r.Run(":" + listenPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
