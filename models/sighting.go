package models

import (
	"time"
)

// Sighting is the master record of a report. It holds every sighting in
// every status and is never deleted.
type Sighting struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)" dynamodbav:"id"`
	AnimalType    string     `json:"animal_type" gorm:"not null;type:varchar(32)" dynamodbav:"animal_type"`
	SightedAt     time.Time  `json:"sighted_at" gorm:"not null;index" dynamodbav:"sighted_at"`
	Lat           float64    `json:"lat" gorm:"not null;type:decimal(10,8)" dynamodbav:"lat"`
	Lng           float64    `json:"lng" gorm:"not null;type:decimal(11,8)" dynamodbav:"lng"`
	Note          string     `json:"note" gorm:"type:text;not null;default:''" dynamodbav:"note"`
	Status        Status     `json:"status" gorm:"not null;type:varchar(10);default:'pending';index" dynamodbav:"status"`
	CreatedAt     time.Time  `json:"created_at" gorm:"not null;autoCreateTime:false" dynamodbav:"created_at"`
	CreatedBy     *string    `json:"created_by" gorm:"type:varchar(64)" dynamodbav:"created_by"`
	ReviewedAt    *time.Time `json:"reviewed_at" dynamodbav:"reviewed_at"`
	ReviewedBy    *string    `json:"reviewed_by" gorm:"type:varchar(64)" dynamodbav:"reviewed_by"`
	ReviewComment *string    `json:"review_comment" gorm:"type:text" dynamodbav:"review_comment"`
	Version       int64      `json:"-" gorm:"not null;default:0" dynamodbav:"version"`
}

func (Sighting) TableName() string { return "sightings_master" }

// Published returns the public-safe projection of s.
func (s *Sighting) Published() *PublishedSighting {
	return &PublishedSighting{
		ID:         s.ID,
		AnimalType: s.AnimalType,
		SightedAt:  s.SightedAt,
		Lat:        s.Lat,
		Lng:        s.Lng,
		Note:       s.Note,
	}
}

// PublishedSighting is the public view of an approved sighting. It exists
// only while the master record with the same ID is approved.
type PublishedSighting struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" dynamodbav:"id"`
	AnimalType string    `json:"animal_type" gorm:"not null;type:varchar(32)" dynamodbav:"animal_type"`
	SightedAt  time.Time `json:"sighted_at" gorm:"not null;index" dynamodbav:"sighted_at"`
	Lat        float64   `json:"lat" gorm:"not null;type:decimal(10,8)" dynamodbav:"lat"`
	Lng        float64   `json:"lng" gorm:"not null;type:decimal(11,8)" dynamodbav:"lng"`
	Note       string    `json:"note" gorm:"type:text;not null;default:''" dynamodbav:"note"`
}

func (PublishedSighting) TableName() string { return "sightings_published" }
