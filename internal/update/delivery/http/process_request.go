package http

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// processInterpretReq binds and validates the interpret request body.
func (h *handler) processInterpretReq(c *gin.Context) (interpretReq, error) {
	var req interpretReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processApplyReq resolves the changeset id from the URI.
func (h *handler) processApplyReq(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", errors.New("changeset id is required")
	}
	return id, nil
}
