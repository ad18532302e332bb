package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopora/shopora/internal/types"
)

// RequestIDMiddleware propagates the request correlation and caller
// identity headers onto the request context. Identity here is a
// trusted upstream header; authentication sits in front of this
// service.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	if userID := c.GetHeader(types.HeaderUserID); userID != "" {
		ctx = types.SetUserID(ctx, userID)
	}
	if sessionID := c.GetHeader(types.HeaderSessionID); sessionID != "" {
		ctx = types.SetSessionID(ctx, sessionID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
