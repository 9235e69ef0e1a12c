package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/services"
	"github.com/beast-watch/api-go/utils"
)

type AuthController struct {
	Auth       *services.AuthService
	Classifier *apperrors.Classifier
	Logger     *zap.Logger
}

func NewAuthController(auth *services.AuthService, classifier *apperrors.Classifier, logger *zap.Logger) *AuthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthController{Auth: auth, Classifier: classifier, Logger: logger}
}

const msgLoginBody = "a valid email and password are required"

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Sign a reviewer in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, ac.Classifier, ac.Logger,
			apperrors.NewValidationError("", msgLoginBody, map[string]string{}))
		return
	}

	result, err := ac.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, ac.Classifier, ac.Logger, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    result,
		Message: "Login successful",
	})
}

// Me returns the reviewer behind the current token.
func (ac *AuthController) Me(c *gin.Context) {
	reviewer := utils.GetReviewer(c)
	if reviewer == nil {
		respondError(c, ac.Classifier, ac.Logger,
			apperrors.NewIdentityError(apperrors.IdentityMissingToken, "context", nil))
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reviewer,
	})
}
