package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/validation"
)

const msgInvalidBody = "request body is invalid"

// respondError writes the classified message for err and logs server-side
// failures with the operation context.
func respondError(c *gin.Context, classifier *apperrors.Classifier, logger *zap.Logger, err error) {
	status := classifier.HTTPStatus(err)
	resp := ErrorResponse{
		Success: false,
		Error:   classifier.Message(err),
	}

	var vErr *apperrors.ValidationError
	if errors.As(err, &vErr) {
		resp.Field = vErr.Field
		resp.Errors = vErr.Errors
	}

	if status >= http.StatusInternalServerError {
		fields := []zap.Field{zap.String("path", c.FullPath()), zap.Error(err)}
		var sErr *apperrors.ServiceError
		if errors.As(err, &sErr) {
			fields = append(fields, zap.String("operation", string(sErr.Op)))
			for _, key := range sErr.ContextKeys() {
				fields = append(fields, zap.Any(key, sErr.Context[key]))
			}
		}
		logger.Error("request failed", fields...)
	}

	c.JSON(status, resp)
}

// bindError turns a JSON binding failure into a ValidationError. Type
// mismatches on lat or lng are reported against the location field.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "lat", "lng":
			return apperrors.NewValidationError(validation.FieldLocation, validation.MsgLocationInvalid, nil)
		case "animal_type":
			return apperrors.NewValidationError(validation.FieldAnimalType, validation.MsgAnimalTypeInvalid, nil)
		case "sighted_at":
			return apperrors.NewValidationError(validation.FieldSightedAt, validation.MsgSightedAtInvalid, nil)
		case "note", "review_comment", "status":
			return apperrors.NewValidationError(typeErr.Field, msgInvalidBody, nil)
		}
	}
	return apperrors.NewValidationError("", msgInvalidBody, map[string]string{})
}
