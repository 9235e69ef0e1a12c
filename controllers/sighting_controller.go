package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
	"github.com/beast-watch/api-go/services"
	"github.com/beast-watch/api-go/utils"
)

type SightingController struct {
	Service    *services.SightingService
	Classifier *apperrors.Classifier
	Policy     ReviewPolicy
	Logger     *zap.Logger
}

func NewSightingController(service *services.SightingService, classifier *apperrors.Classifier, policy ReviewPolicy, logger *zap.Logger) *SightingController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SightingController{
		Service:    service,
		Classifier: classifier,
		Policy:     policy,
		Logger:     logger,
	}
}

// CreateSighting godoc
// @Summary Submit a new wildlife sighting for review
// @Tags sightings
// @Accept json
// @Produce json
// @Success 201 {object} StandardResponse
// @Router /sightings [post]
func (sc *SightingController) CreateSighting(c *gin.Context) {
	var input models.CreateSightingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, sc.Classifier, sc.Logger, bindError(err))
		return
	}

	// Signed-in reviewers may also report; everyone else is anonymous
	if reviewer := utils.GetReviewer(c); reviewer != nil {
		input.CreatedBy = &reviewer.ReviewerID
	}

	id, err := sc.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, sc.Classifier, sc.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    gin.H{"id": id, "status": models.StatusPending},
		Message: "Sighting submitted for review",
	})
}

// ListPublishedSightings godoc
// @Summary List approved sightings for the public map
// @Tags sightings
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /sightings [get]
func (sc *SightingController) ListPublishedSightings(c *gin.Context) {
	sightings, err := sc.Service.FetchPublished(c.Request.Context())
	if err != nil {
		respondError(c, sc.Classifier, sc.Logger, err)
		return
	}
	if sightings == nil {
		sightings = []models.PublishedSighting{}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    sightings,
		Meta:    ListMeta{Count: len(sightings)},
	})
}

// ListAllSightings godoc
// @Summary List every submitted sighting with its review state
// @Tags admin
// @Produce json
// @Success 200 {object} StandardResponse
// @Router /admin/sightings [get]
func (sc *SightingController) ListAllSightings(c *gin.Context) {
	sightings, err := sc.Service.FetchAllMaster(c.Request.Context())
	if err != nil {
		respondError(c, sc.Classifier, sc.Logger, err)
		return
	}
	if sightings == nil {
		sightings = []models.Sighting{}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    sightings,
		Meta:    ListMeta{Count: len(sightings)},
	})
}

type reviewRequest struct {
	Status        models.Status `json:"status"`
	ReviewComment *string       `json:"review_comment"`
}

// ReviewSighting godoc
// @Summary Approve or reject a sighting
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Sighting ID"
// @Success 200 {object} StandardResponse
// @Router /admin/sightings/{id}/review [post]
func (sc *SightingController) ReviewSighting(c *gin.Context) {
	reviewer := utils.GetReviewer(c)
	if reviewer == nil {
		respondError(c, sc.Classifier, sc.Logger,
			apperrors.NewIdentityError(apperrors.IdentityMissingToken, "context", nil))
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, sc.Classifier, sc.Logger, bindError(err))
		return
	}

	if err := sc.Policy.Check(req.Status, req.ReviewComment); err != nil {
		respondError(c, sc.Classifier, sc.Logger, err)
		return
	}

	input := models.ReviewInput{
		Status:     req.Status,
		ReviewedBy: reviewer.ReviewerID,
	}
	if req.ReviewComment != nil {
		input.ReviewComment = *req.ReviewComment
	}

	id := c.Param("id")
	if err := sc.Service.Review(c.Request.Context(), id, input); err != nil {
		respondError(c, sc.Classifier, sc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"id": id, "status": req.Status},
		Message: "Review recorded",
	})
}

// UpdateSighting godoc
// @Summary Edit a sighting, keeping the public map in step
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Sighting ID"
// @Success 200 {object} StandardResponse
// @Router /admin/sightings/{id} [patch]
func (sc *SightingController) UpdateSighting(c *gin.Context) {
	reviewer := utils.GetReviewer(c)
	if reviewer == nil {
		respondError(c, sc.Classifier, sc.Logger,
			apperrors.NewIdentityError(apperrors.IdentityMissingToken, "context", nil))
		return
	}

	var patch models.SightingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, sc.Classifier, sc.Logger, bindError(err))
		return
	}

	if patch.Status != nil {
		if err := sc.Policy.Check(*patch.Status, patch.ReviewComment); err != nil {
			respondError(c, sc.Classifier, sc.Logger, err)
			return
		}
		patch.ReviewedBy = &reviewer.ReviewerID
	}

	id := c.Param("id")
	if err := sc.Service.Update(c.Request.Context(), id, patch); err != nil {
		respondError(c, sc.Classifier, sc.Logger, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"id": id, "updated_fields": patch.Fields()},
		Message: "Sighting updated",
	})
}
