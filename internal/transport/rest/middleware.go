package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"telemed/internal/domain"
	"telemed/pkg/auth"
)

const (
	authorizationHeader = "Authorization"
	identityCtx         = "identity"
)

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			h.logger.Error("request error", zap.Error(err))
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept-Encoding, Origin, Accept")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware validates the bearer token and stores the caller identity
// in the request context. Websocket upgrades may pass the token as a query
// parameter instead, since browsers cannot set headers on socket requests.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""

		header := c.GetHeader(authorizationHeader)
		if header != "" {
			headerParts := strings.Split(header, " ")
			if len(headerParts) != 2 || headerParts[0] != "Bearer" {
				errorResponse(c, http.StatusUnauthorized, "malformed authorization header")
				return
			}
			token = headerParts[1]
		} else {
			token = c.Query("token")
		}

		if token == "" {
			errorResponse(c, http.StatusUnauthorized, "authorization required")
			return
		}

		identity, err := auth.ParseToken(h.config.JWT.SigningKey, token)
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(identityCtx, identity)
		c.Next()
	}
}

func (h *Handler) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := getIdentity(c)
		if err != nil || identity.Role != domain.UserRoleAdmin {
			errorResponse(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}

func (h *Handler) doctorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := getIdentity(c)
		if err != nil || (identity.Role != domain.UserRoleDoctor && identity.Role != domain.UserRoleAdmin) {
			errorResponse(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}

func getIdentity(c *gin.Context) (domain.Identity, error) {
	value, exists := c.Get(identityCtx)
	if !exists {
		return domain.Identity{}, errors.New("caller is not authenticated")
	}

	identity, ok := value.(domain.Identity)
	if !ok {
		return domain.Identity{}, errors.New("malformed caller identity")
	}

	return identity, nil
}
