package handlers

import (
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler handles the patient-facing appointment surface.
type AppointmentHandler struct {
	Engine *scheduling.Engine
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(engine *scheduling.Engine) *AppointmentHandler {
	return &AppointmentHandler{Engine: engine}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	DateTime    string `json:"dateTime" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=PRIMARY FOLLOW_UP"`
	PaymentType string `json:"paymentType" binding:"required"`
}

// CreateAppointment books a slot with the doctor in the path for the
// calling patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	dateTime, err := parseDateTime(req.DateTime)
	if err != nil {
		utils.BadRequest(c, "Invalid dateTime format, expected 2006-01-02T15:04")
		return
	}

	view, err := h.Engine.Book(caller, c.Param("doctorId"), "", dateTime, models.AppointmentType(req.Type), req.PaymentType)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", view)
}

// GetMyAppointments lists the calling patient's appointments.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	views, err := h.Engine.ListMyAppointments(caller)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", views)
}

// EditAppointmentRequest represents the request body for moving or
// relabeling an appointment. Omitted type/paymentType keep the current
// values.
type EditAppointmentRequest struct {
	DateTime    string `json:"dateTime" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=PRIMARY FOLLOW_UP"`
	PaymentType string `json:"paymentType"`
}

// EditAppointment reschedules the caller's own appointment.
func (h *AppointmentHandler) EditAppointment(c *gin.Context) {
	var req EditAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	dateTime, err := parseDateTime(req.DateTime)
	if err != nil {
		utils.BadRequest(c, "Invalid dateTime format, expected 2006-01-02T15:04")
		return
	}

	view, err := h.Engine.Reschedule(caller, c.Param("id"), dateTime, models.AppointmentType(req.Type), req.PaymentType)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment updated successfully", view)
}

// CancelAppointment cancels the caller's own appointment. Cancelling an
// already-cancelled appointment succeeds without changing anything.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Engine.Cancel(caller, c.Param("id")); err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled", nil)
}
