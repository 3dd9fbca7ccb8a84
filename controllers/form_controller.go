package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/services"
)

// POST /api/forms
func CreateForm(c *gin.Context) {
	var req services.CreateFormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	form, err := services.NewFormService(config.DB).Create(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot create form"})
		return
	}

	c.JSON(http.StatusCreated, form)
}

// GET /api/forms
func ListForms(c *gin.Context) {
	summaries, err := services.NewFormService(config.DB).List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot list forms"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GET /api/forms/:id
func GetForm(c *gin.Context) {
	form, err := services.NewFormService(config.DB).Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot fetch form"})
		return
	}
	c.JSON(http.StatusOK, form)
}

// PUT /api/forms/:id
func UpdateForm(c *gin.Context) {
	var req services.UpdateFormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	form, err := services.NewFormService(config.DB).Update(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot update form"})
		return
	}
	c.JSON(http.StatusOK, form)
}

// DELETE /api/forms/:id
func DeleteForm(c *gin.Context) {
	if err := services.NewFormService(config.DB).Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot delete form"})
		return
	}
	c.Status(http.StatusNoContent)
}
