package utils

import (
	"github.com/gin-gonic/gin"
)

// ReviewerClaims identifies the reviewer behind an authenticated request.
type ReviewerClaims struct {
	ReviewerID string `json:"reviewer_id"`
	Email      string `json:"email"`
}

type contextKey string

const ReviewerContextKey contextKey = "reviewer"

func GetReviewer(c *gin.Context) *ReviewerClaims {
	reviewer, exists := c.Get(string(ReviewerContextKey))
	if !exists {
		return nil
	}
	if claims, ok := reviewer.(*ReviewerClaims); ok {
		return claims
	}
	return nil
}
