package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-admin/cmd/api/dto"
	"blog-admin/cmd/api/services"
	"blog-admin/repositories"
	"blog-admin/schema"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Status:  dto.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.Response{
		Status:  dto.StatusRecordNotFound,
		Message: "record not found",
	})
}

// respondError translates every service error into the uniform envelope.
// Validation failures and duplicate keys are client errors; bad request
// shapes are rejected before any store call; everything else is a generic
// server failure.
func respondError(c *gin.Context, err error) {
	var verrs schema.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, dto.Response{
			Status:  dto.StatusValidationError,
			Message: verrs.Error(),
			Data:    verrs,
		})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusBadRequest, dto.Response{
			Status:  dto.StatusValidationError,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmptyIDs), errors.Is(err, services.ErrEmptyData):
		c.JSON(http.StatusBadRequest, dto.Response{
			Status:  dto.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		respondNotFound(c)
	default:
		c.JSON(http.StatusInternalServerError, dto.Response{
			Status:  dto.StatusFailure,
			Message: err.Error(),
		})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Response{
		Status:  dto.StatusBadRequest,
		Message: message,
	})
}
