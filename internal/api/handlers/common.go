package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/internhub/internal/models"
	"github.com/yoockh/internhub/internal/policy"
	"github.com/yoockh/internhub/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		msg := ae.Message
		if ae.Code == utils.CodeInternal {
			// internal detail stays in the logs
			msg = http.StatusText(status)
		}
		_ = c.Error(err)
		c.JSON(status, APIError{Code: ae.Code, Message: msg})
		return
	}

	_ = c.Error(err)
	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireCaller(c *gin.Context) (policy.Caller, bool) {
	var caller policy.Caller
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			caller.ID = s
		}
	}
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			caller.Role = models.UserRole(s)
		}
	}
	if caller.ID == "" {
		writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
		return policy.Caller{}, false
	}
	return caller, true
}
