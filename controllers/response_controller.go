package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/middleware"
	"github.com/formworks/formbuilder-server/services"
)

type submitReq struct {
	Answers []services.AnswerInput `json:"answers" binding:"required"`
}

func responseService() *services.ResponseService {
	return services.NewResponseService(config.DB, config.AllowedEmailDomains())
}

// respondentEmail is the verified identity set by AuthJWT; it, not any
// body field, decides whose response is written.
func respondentEmail(c *gin.Context) string {
	return c.MustGet(middleware.CtxEmail).(string)
}

// POST /api/forms/:id/responses
func SubmitResponse(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	response, err := responseService().Submit(c.Param("id"), respondentEmail(c), req.Answers)
	if err != nil {
		writeResponseErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// PUT /api/forms/:id/responses
func UpdateResponse(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	result, err := responseService().Update(c.Param("id"), respondentEmail(c), req.Answers)
	if err != nil {
		writeResponseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/forms/:id/responses/by-email/:email
func GetResponseByEmail(c *gin.Context) {
	response, err := responseService().GetByEmail(c.Param("id"), c.Param("email"))
	if err != nil {
		writeResponseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GET /api/forms/:id/responses/:responseId
func GetResponseByID(c *gin.Context) {
	response, err := responseService().GetByID(c.Param("id"), c.Param("responseId"))
	if err != nil {
		writeResponseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// DELETE /api/forms/:id/responses/:responseId
func DeleteResponse(c *gin.Context) {
	if err := responseService().Delete(c.Param("responseId")); err != nil {
		writeResponseErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeResponseErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFormNotFound), errors.Is(err, services.ErrResponseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrFormInactive), errors.Is(err, services.ErrEmailNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
	}
}
