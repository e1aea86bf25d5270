package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/models"
	"github.com/AmarildoSantos1/Sistemas-Notas-Academico/internal/storage"
)

type SubjectController struct {
	Store *storage.StudentStore
}

type createSubjectRequest struct {
	Name             string `json:"name" binding:"required"`
	RegistrationDate string `json:"registration_date"`
}

type updateSubjectRequest struct {
	Name             *string `json:"name"`
	RegistrationDate *string `json:"registration_date"`
}

type setGradeRequest struct {
	Stage models.Stage `json:"stage" binding:"required,oneof=STAGE_1 STAGE_2 STAGE_3"`
	Grade *float64     `json:"grade" binding:"required"`
}

func (sc *SubjectController) AddSubject(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := sc.Store.AddSubject(c.Param("id"), req.Name, req.RegistrationDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject.Out())
}

func (sc *SubjectController) UpdateSubject(c *gin.Context) {
	var req updateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := sc.Store.UpdateSubject(c.Param("id"), c.Param("subject_id"), storage.SubjectPatch{
		Name:             req.Name,
		RegistrationDate: req.RegistrationDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subject.Out())
}

func (sc *SubjectController) DeleteSubject(c *gin.Context) {
	if err := sc.Store.DeleteSubject(c.Param("id"), c.Param("subject_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (sc *SubjectController) SetGrade(c *gin.Context) {
	var req setGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := sc.Store.SetGrade(c.Param("id"), c.Param("subject_id"), req.Stage, *req.Grade)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subject.Out())
}
