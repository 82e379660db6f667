package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/doctor"
)

type DoctorUseCases struct {
	Get                *doctor.GetDoctor
	GetByUser          *doctor.GetDoctorByUser
	List               *doctor.ListDoctors
	ListByDepartment   *doctor.ListDoctorsByDepartment
	UpdateAvailability *doctor.UpdateAvailability
}

type DoctorHandler struct {
	uc DoctorUseCases
}

func NewDoctorHandler(uc DoctorUseCases) *DoctorHandler {
	return &DoctorHandler{uc: uc}
}

type UpdateAvailabilityRequest struct {
	AvailableDays  *[]string          `json:"available_days"`
	AvailableSlots *[]models.TimeSlot `json:"available_slots"`
	IsAvailable    *bool              `json:"is_available"`
}

// List supports department, specialization, available, min_rating and
// search filters.
func (h *DoctorHandler) List(c *gin.Context) {
	page, limit := pagination(c, defaultLimit, maxLimit)

	in := doctor.ListDoctorsInput{
		Specialization: strings.TrimSpace(c.Query("specialization")),
		AvailableOnly:  c.Query("available") == "true",
		Search:         strings.TrimSpace(c.Query("search")),
		Page:           page,
		Limit:          limit,
	}

	if dep := c.Query("department"); dep != "" {
		id, ok := parseUUID(c, dep, "department")
		if !ok {
			return
		}
		in.DepartmentID = &id
	}

	if mr := c.Query("min_rating"); mr != "" {
		v, err := strconv.ParseFloat(mr, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_min_rating", "min_rating must be a number.")
			return
		}
		in.MinRating = v
	}

	docs, total, err := h.uc.List.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, page, limit, total, docs)
}

func (h *DoctorHandler) ListByDepartment(c *gin.Context) {
	id, ok := uuidParam(c, "departmentId")
	if !ok {
		return
	}

	docs, err := h.uc.ListByDepartment.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, docs)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, doc)
}

func (h *DoctorHandler) GetByUser(c *gin.Context) {
	if _, ok := currentActor(c); !ok {
		return
	}
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	doc, err := h.uc.GetByUser.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, doc)
}

func (h *DoctorHandler) UpdateAvailability(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	doc, err := h.uc.UpdateAvailability.Execute(c.Request.Context(), a, id, domain.AvailabilityUpdate{
		Days:        req.AvailableDays,
		Slots:       req.AvailableSlots,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, doc)
}

