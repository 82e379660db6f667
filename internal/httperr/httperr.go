package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the failure envelope for err. Business errors surface their
// code; anything else is logged and reported as a generic server error.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, StatusFor(be.Kind), be.Code, messageFor(be))
		return
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Internal(c, "internal_error", "Server error.")
}

var messages = map[string]string{
	"doctor_not_found":                   "Doctor not found.",
	"doctor_not_available":               "Doctor is not available.",
	"appointment_not_found":              "Appointment not found.",
	"review_not_found":                   "Review not found.",
	"slot_already_booked":                "This time slot is already booked.",
	"slot_not_offered":                   "The doctor does not offer this time slot on that day.",
	"invalid_transition":                 "This status change is not allowed.",
	"cannot_cancel":                      "Cannot cancel this appointment.",
	"appointment_not_completed":          "Can only review completed appointments.",
	"already_reviewed":                   "You have already reviewed this appointment.",
	"not_authorized":                     "Not authorized to access this resource.",
	"cancellation_reason_required":       "A cancellation reason is required.",
	"clinical_fields_require_completion": "Diagnosis, prescription and notes can only be attached when completing.",
	"payments_disabled":                  "Payments are not configured.",
	"payment_not_approved":               "Payment has not been approved.",
	"payment_already_settled":            "Payment is already settled.",
	"payment_not_settled":                "Payment has not been settled.",
	"payment_mismatch":                   "Payment does not match this appointment.",
	"appointment_not_payable":            "Cancelled appointments cannot be paid.",
	"appointment_not_editable":           "This appointment can no longer be edited.",
	"date_in_past":                       "Cannot book appointments in the past.",
	"appointment_changed":                "The appointment was changed by another request.",
	"payment_already_used":               "This payment has already been applied to another appointment.",
}

func messageFor(be BusinessError) string {
	if m, ok := messages[be.Code]; ok {
		return m
	}
	switch be.Kind {
	case KindNotFound:
		return "Resource not found."
	case KindForbidden:
		return "Not authorized."
	case KindInvalidState:
		return "Operation not allowed in the current state."
	case KindConflict:
		return "Conflicting resource."
	default:
		return "Invalid request."
	}
}
