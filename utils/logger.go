package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Production environments get JSON
// output at Info; everything else gets the development console encoder.
func NewLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production", "prod":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
