package validation

import (
	"strings"
	"time"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
)

// Rules configures the validator.
type Rules struct {
	AnimalTypes   []string
	MaxPastYears  int
	MaxNoteLength int
	// Location is the zone of sighting times sent without an offset, as
	// HTML datetime-local inputs do. Nil means UTC.
	Location      *time.Location
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		AnimalTypes:   DefaultAnimalTypes,
		MaxPastYears:  DefaultMaxPastYears,
		MaxNoteLength: DefaultMaxNoteLength,
		Location:      time.UTC,
	}
}

// Result is the outcome of a validation run.
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

func newResult(errs map[string]string) Result {
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used for date checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// Validator applies the field rules to sighting payloads.
type Validator struct {
	rules   Rules
	allowed map[string]struct{}
	now     func() time.Time
}

// NewValidator creates a Validator. Zero values in rules fall back to the defaults.
func NewValidator(rules Rules, opts ...Option) *Validator {
	if len(rules.AnimalTypes) == 0 {
		rules.AnimalTypes = DefaultAnimalTypes
	}
	if rules.MaxPastYears <= 0 {
		rules.MaxPastYears = DefaultMaxPastYears
	}
	if rules.MaxNoteLength <= 0 {
		rules.MaxNoteLength = DefaultMaxNoteLength
	}
	if rules.Location == nil {
		rules.Location = time.UTC
	}

	v := &Validator{
		rules:   rules,
		allowed: make(map[string]struct{}, len(rules.AnimalTypes)),
		now:     time.Now,
	}
	for _, t := range rules.AnimalTypes {
		v.allowed[t] = struct{}{}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rules returns the effective rules.
func (v *Validator) Rules() Rules { return v.rules }

// ParseSightedAt parses a sighting time in the configured location.
func (v *Validator) ParseSightedAt(raw string) (time.Time, error) {
	return ParseSightedAtIn(raw, v.rules.Location)
}

// ValidateForCreate checks a new report. Every field but note is required;
// a missing field is reported as required without running its value rule.
func (v *Validator) ValidateForCreate(in models.CreateSightingInput) Result {
	errs := map[string]string{}

	if in.AnimalType == "" {
		errs[FieldAnimalType] = MsgAnimalTypeRequired
	} else if msg := v.checkAnimalType(in.AnimalType); msg != "" {
		errs[FieldAnimalType] = msg
	}

	if strings.TrimSpace(in.SightedAt) == "" {
		errs[FieldSightedAt] = MsgSightedAtRequired
	} else if msg := v.checkSightedAt(in.SightedAt); msg != "" {
		errs[FieldSightedAt] = msg
	}

	if in.Lat == nil || in.Lng == nil {
		errs[FieldLocation] = MsgLocationRequired
	} else if msg := checkLocation(*in.Lat, *in.Lng); msg != "" {
		errs[FieldLocation] = msg
	}

	if in.Note != nil {
		if msg := v.checkNote(*in.Note); msg != "" {
			errs[FieldNote] = msg
		}
	}

	return newResult(errs)
}

// ValidateForUpdate checks only the fields present in the patch.
func (v *Validator) ValidateForUpdate(p models.SightingPatch) Result {
	errs := map[string]string{}

	if p.AnimalType != nil {
		if *p.AnimalType == "" {
			errs[FieldAnimalType] = MsgAnimalTypeRequired
		} else if msg := v.checkAnimalType(*p.AnimalType); msg != "" {
			errs[FieldAnimalType] = msg
		}
	}

	if p.SightedAt != nil {
		if strings.TrimSpace(*p.SightedAt) == "" {
			errs[FieldSightedAt] = MsgSightedAtRequired
		} else if msg := v.checkSightedAt(*p.SightedAt); msg != "" {
			errs[FieldSightedAt] = msg
		}
	}

	if p.Lat != nil || p.Lng != nil {
		if p.Lat == nil || p.Lng == nil {
			errs[FieldLocation] = MsgLocationRequired
		} else if msg := checkLocation(*p.Lat, *p.Lng); msg != "" {
			errs[FieldLocation] = msg
		}
	}

	if p.Note != nil {
		if msg := v.checkNote(*p.Note); msg != "" {
			errs[FieldNote] = msg
		}
	}

	if p.Status != nil {
		if msg := checkStatus(*p.Status); msg != "" {
			errs[FieldStatus] = msg
		}
	}

	return newResult(errs)
}

// ValidateReview checks the target status of a review decision.
func (*Validator) ValidateReview(in models.ReviewInput) Result {
	errs := map[string]string{}
	if msg := checkStatus(in.Status); msg != "" {
		errs[FieldStatus] = msg
	}
	return newResult(errs)
}

// ValidateCreateOrError returns a *apperrors.ValidationError when in is invalid.
func (v *Validator) ValidateCreateOrError(in models.CreateSightingInput) error {
	return asError(v.ValidateForCreate(in))
}

// ValidateUpdateOrError returns a *apperrors.ValidationError when p is invalid.
func (v *Validator) ValidateUpdateOrError(p models.SightingPatch) error {
	return asError(v.ValidateForUpdate(p))
}

// ValidateReviewOrError returns a *apperrors.ValidationError when in is invalid.
func (v *Validator) ValidateReviewOrError(in models.ReviewInput) error {
	return asError(v.ValidateReview(in))
}

func asError(r Result) error {
	if r.IsValid {
		return nil
	}
	for _, field := range fieldOrder {
		if msg, ok := r.Errors[field]; ok {
			return apperrors.NewValidationError(field, msg, r.Errors)
		}
	}
	return apperrors.NewValidationError("", "validation failed", r.Errors)
}
