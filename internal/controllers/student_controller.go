package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/models"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/storage"
)

type StudentController struct {
	Store *storage.StudentStore
}

type createStudentRequest struct {
	Name             string        `json:"name" binding:"required"`
	IDType           models.IDType `json:"id_type" binding:"required,oneof=ENROLLMENT_NUMBER NATIONAL_ID"`
	Identifier       string        `json:"identifier" binding:"required"`
	RegistrationDate string        `json:"registration_date"`
}

type updateStudentRequest struct {
	Name             *string        `json:"name"`
	IDType           *models.IDType `json:"id_type"`
	Identifier       *string        `json:"identifier"`
	RegistrationDate *string        `json:"registration_date"`
}

func (sc *StudentController) ListStudents(c *gin.Context) {
	filter := storage.StudentFilter{
		Name:       strings.TrimSpace(c.Query("name")),
		IDType:     models.IDType(strings.TrimSpace(c.Query("id_type"))),
		Identifier: strings.TrimSpace(c.Query("identifier")),
		DateMin:    strings.TrimSpace(c.Query("date_min")),
		DateMax:    strings.TrimSpace(c.Query("date_max")),
	}

	students, err := sc.Store.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]models.StudentOut, 0, len(students))
	for i := range students {
		out = append(out, students[i].Out())
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "meta": gin.H{"total": len(out)}})
}

func (sc *StudentController) CreateStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := sc.Store.Create(req.Name, req.IDType, req.Identifier, req.RegistrationDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student.Out())
}

func (sc *StudentController) GetStudent(c *gin.Context) {
	student, err := sc.Store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student.Out())
}

func (sc *StudentController) UpdateStudent(c *gin.Context) {
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := sc.Store.Update(c.Param("id"), storage.StudentPatch{
		Name:             req.Name,
		IDType:           req.IDType,
		Identifier:       req.Identifier,
		RegistrationDate: req.RegistrationDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student.Out())
}

func (sc *StudentController) DeleteStudent(c *gin.Context) {
	if err := sc.Store.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
