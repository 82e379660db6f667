package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Availability *appointment.GetAvailability
	Create       *appointment.CreateAppointment
	Get          *appointment.GetAppointment
	List         *appointment.ListAppointments
	Update       *appointment.UpdateAppointment
	UpdateStatus *appointment.UpdateStatus
	Cancel       *appointment.CancelAppointment
	Stats        *appointment.GetStats
	Settle       *appointment.SettlePayment
	Refund       *appointment.RefundPayment
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type timeSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type CreateAppointmentRequest struct {
	DoctorID        string          `json:"doctor_id" binding:"required,uuid"`
	AppointmentDate string          `json:"appointment_date" binding:"required"` // YYYY-MM-DD
	TimeSlot        timeSlotRequest `json:"time_slot" binding:"required"`
	Type            string          `json:"type"`
	Symptoms        string          `json:"symptoms"`
}

type UpdateAppointmentRequest struct {
	Symptoms      *string `json:"symptoms"`
	Type          *string `json:"type"`
	Notes         *string `json:"notes"`
	Diagnosis     *string `json:"diagnosis"`
	Prescription  *string `json:"prescription"`
	PaymentStatus *string `json:"payment_status"`
}

type UpdateStatusRequest struct {
	Status             string `json:"status" binding:"required"`
	CancellationReason string `json:"cancellation_reason"`
	Diagnosis          string `json:"diagnosis"`
	Prescription       string `json:"prescription"`
	Notes              string `json:"notes"`
}

type CancelRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

type SettlePaymentRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
}

// ======================================================
// AVAILABILITY (public)
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctorId")
	if !ok {
		return
	}

	date, err := timezone.ParseDate(c.Param("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	res, err := h.uc.Availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		DoctorID: doctorID,
		Date:     date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	body := gin.H{
		"date":            date.Format(timezone.DateLayout),
		"available_slots": res.Slots,
	}
	if res.Message != "" {
		body["message"] = res.Message
	}
	c.JSON(http.StatusOK, body)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	doctorID, ok := parseUUID(c, req.DoctorID, "doctor_id")
	if !ok {
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), a, appointment.CreateAppointmentInput{
		DoctorID:  doctorID,
		Date:      req.AppointmentDate,
		StartTime: req.TimeSlot.StartTime,
		EndTime:   req.TimeSlot.EndTime,
		Type:      req.Type,
		Symptoms:  req.Symptoms,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	page, limit := pagination(c, defaultLimit, maxLimit)

	res, err := h.uc.List.Execute(c.Request.Context(), a, appointment.ListAppointmentsInput{
		Status:    c.Query("status"),
		Type:      c.Query("type"),
		Date:      c.Query("date"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, page, limit, res.Total, res.Items)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), a, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}

	st, err := h.uc.Stats.Execute(c.Request.Context(), a)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, st)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), a, id, domain.Patch{
		Symptoms:      req.Symptoms,
		Type:          req.Type,
		Notes:         req.Notes,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.uc.UpdateStatus.Execute(c.Request.Context(), a, id, appointment.UpdateStatusInput{
		Status:             req.Status,
		CancellationReason: req.CancellationReason,
		Diagnosis:          req.Diagnosis,
		Prescription:       req.Prescription,
		Notes:              req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// Body is optional.
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), a, id, req.CancellationReason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// PAYMENTS
// ======================================================

func (h *AppointmentHandler) SettlePayment(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.uc.Settle.Execute(c.Request.Context(), a, id, req.PaymentRef)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) RefundPayment(c *gin.Context) {
	a, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Refund.Execute(c.Request.Context(), a, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}
