package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/auth"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/config"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/routes"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/storage"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	iterations, err := strconv.Atoi(cfg.PBKDF2Iterations)
	if err != nil || iterations <= 0 {
		iterations = auth.DefaultIterations
	}

	students := storage.NewStudentStore(filepath.Join(cfg.DataDir, "students.json"))
	credentials := auth.NewCredentialStore(filepath.Join(cfg.DataDir, "admin.json"), cfg.AdminUsername, cfg.AdminPassword, iterations)
	tokens := auth.NewTokenStore(filepath.Join(cfg.DataDir, "tokens.json"))

	if err := credentials.EnsureInitialized(); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}
	if err := tokens.EnsureInitialized(); err != nil {
		log.Fatalf("token store init failed: %v", err)
	}

	r := gin.Default()
	routes.Register(r, cfg, students, credentials, tokens)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
