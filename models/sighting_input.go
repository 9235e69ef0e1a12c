package models

// CreateSightingInput is a new report as submitted by a community member.
// Nil or empty fields are treated as absent.
type CreateSightingInput struct {
	AnimalType string   `json:"animal_type"`
	SightedAt  string   `json:"sighted_at"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	Note       *string  `json:"note"`
	CreatedBy  *string  `json:"-"`
}

// SightingPatch is a partial edit of a master record. Only non-nil fields
// are applied.
type SightingPatch struct {
	AnimalType    *string  `json:"animal_type"`
	SightedAt     *string  `json:"sighted_at"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Note          *string  `json:"note"`
	Status        *Status  `json:"status"`
	ReviewComment *string  `json:"review_comment"`
	ReviewedBy    *string  `json:"-"`
}

// TouchesContent reports whether the patch changes a validated content field.
func (p SightingPatch) TouchesContent() bool {
	return p.AnimalType != nil || p.SightedAt != nil || p.Lat != nil || p.Lng != nil || p.Note != nil
}

// Fields returns the names of the fields present in the patch.
func (p SightingPatch) Fields() []string {
	var fields []string
	if p.AnimalType != nil {
		fields = append(fields, "animal_type")
	}
	if p.SightedAt != nil {
		fields = append(fields, "sighted_at")
	}
	if p.Lat != nil {
		fields = append(fields, "lat")
	}
	if p.Lng != nil {
		fields = append(fields, "lng")
	}
	if p.Note != nil {
		fields = append(fields, "note")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.ReviewComment != nil {
		fields = append(fields, "review_comment")
	}
	if p.ReviewedBy != nil {
		fields = append(fields, "reviewed_by")
	}
	return fields
}

// ReviewInput is a reviewer's decision on a sighting.
type ReviewInput struct {
	Status        Status `json:"status"`
	ReviewComment string `json:"review_comment"`
	ReviewedBy    string `json:"-"`
}
