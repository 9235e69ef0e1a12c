package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
	"github.com/beast-watch/api-go/validation"
)

func TestBindError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{"latitude as text", `{"lat":"north","lng":137.8}`, validation.FieldLocation, validation.MsgLocationInvalid},
		{"longitude as object", `{"lat":35.5,"lng":{}}`, validation.FieldLocation, validation.MsgLocationInvalid},
		{"animal type as number", `{"animal_type":7}`, validation.FieldAnimalType, validation.MsgAnimalTypeInvalid},
		{"broken json", `{"lat":`, "", msgInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var in models.CreateSightingInput
			decodeErr := json.NewDecoder(strings.NewReader(tt.body)).Decode(&in)
			require.Error(t, decodeErr)

			var vErr *apperrors.ValidationError
			require.True(t, errors.As(bindError(decodeErr), &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}
