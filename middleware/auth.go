package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/controllers"
	"github.com/beast-watch/api-go/services"
	"github.com/beast-watch/api-go/utils"
)

// AuthMiddleware requires a valid reviewer bearer token.
func AuthMiddleware(auth *services.AuthService, classifier *apperrors.Classifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, auth)
		if err != nil {
			abortUnauthorized(c, classifier, err)
			return
		}

		c.Set(string(utils.ReviewerContextKey), claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the reviewer when a valid token is sent and
// lets anonymous requests through.
func OptionalAuthMiddleware(auth *services.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, err := authenticate(c, auth)
		if err != nil {
			logger.Debug("ignoring invalid optional token", zap.Error(err))
			c.Next()
			return
		}

		c.Set(string(utils.ReviewerContextKey), claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, auth *services.AuthService) (*utils.ReviewerClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewIdentityError(apperrors.IdentityMissingToken, "header", nil)
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
		return nil, apperrors.NewIdentityError(apperrors.IdentityInvalidToken, "header-format", nil)
	}

	return auth.ParseToken(bearerToken[1])
}

func abortUnauthorized(c *gin.Context, classifier *apperrors.Classifier, err error) {
	c.AbortWithStatusJSON(classifier.HTTPStatus(err), controllers.ErrorResponse{
		Success: false,
		Error:   classifier.Message(err),
	})
}
