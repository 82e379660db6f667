package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/review"
)

type ReviewUseCases struct {
	Create     *review.CreateReview
	Update     *review.UpdateReview
	Delete     *review.DeleteReview
	ListDoctor *review.ListDoctorReviews
}

type ReviewHandler struct {
	uc ReviewUseCases
}

func NewReviewHandler(uc ReviewUseCases) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type CreateReviewRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
	IsAnonymous   bool   `json:"is_anonymous"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Comment     *string `json:"comment"`
	IsAnonymous *bool   `json:"is_anonymous"`
}

func (h *ReviewHandler) ListForDoctor(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctorId")
	if !ok {
		return
	}

	page, limit := pagination(c, defaultLimit, maxLimit)

	items, total, err := h.uc.ListDoctor.Execute(c.Request.Context(), doctorID, page, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, page, limit, total, items)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	appointmentID, ok := parseUUID(c, req.AppointmentID, "appointment_id")
	if !ok {
		return
	}

	rv, err := h.uc.Create.Execute(c.Request.Context(), a, review.CreateReviewInput{
		AppointmentID: appointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		IsAnonymous:   req.IsAnonymous,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, rv)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	rv, err := h.uc.Update.Execute(c.Request.Context(), a, id, review.UpdateReviewInput{
		Rating:      req.Rating,
		Comment:     req.Comment,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), a, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
