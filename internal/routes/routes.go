package routes

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/auth"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/config"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/controllers"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/middleware"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/storage"
)

func Register(r *gin.Engine, cfg *config.Config, students *storage.StudentStore, credentials *auth.CredentialStore, tokens *auth.TokenStore) {
	ttl := auth.DefaultTokenTTL
	if secs, err := strconv.Atoi(cfg.TokenTTLSeconds); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}

	authCtrl := &controllers.AuthController{Credentials: credentials, Tokens: tokens, TokenTTL: ttl}
	studentCtrl := &controllers.StudentController{Store: students}
	subjectCtrl := &controllers.SubjectController{Store: students}

	// Public
	r.POST("/api/v1/auth/login", authCtrl.Login)

	// Protected
	api := r.Group("/api/v1", middleware.AuthMiddleware(tokens))
	{
		api.POST("/auth/logout", authCtrl.Logout)
		api.POST("/auth/change-password", authCtrl.ChangePassword)

		api.GET("/students", studentCtrl.ListStudents)
		api.POST("/students", studentCtrl.CreateStudent)
		api.GET("/students/:id", studentCtrl.GetStudent)
		api.PUT("/students/:id", studentCtrl.UpdateStudent)
		api.DELETE("/students/:id", studentCtrl.DeleteStudent)

		api.POST("/students/:id/subjects", subjectCtrl.AddSubject)
		api.PUT("/students/:id/subjects/:subject_id", subjectCtrl.UpdateSubject)
		api.DELETE("/students/:id/subjects/:subject_id", subjectCtrl.DeleteSubject)
		api.PUT("/students/:id/subjects/:subject_id/grade", subjectCtrl.SetGrade)
	}
}
