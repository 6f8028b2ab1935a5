package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/store"
	"clinic-booking-server/internal/utils"
)

// AssistantHandler handles the delegated-assistant surface: everything
// an assistant does on behalf of the doctors assigned to them.
type AssistantHandler struct {
	DB     *gorm.DB
	Engine *scheduling.Engine
	Edges  *store.AssistantDoctors
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(db *gorm.DB, engine *scheduling.Engine) *AssistantHandler {
	return &AssistantHandler{DB: db, Engine: engine, Edges: store.NewAssistantDoctors(db)}
}

// GetAssignedDoctors lists the doctors the calling assistant is
// delegated to.
func (h *AssistantHandler) GetAssignedDoctors(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	edges, err := h.Edges.FindByAssistant(userID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	items := make([]DoctorListItem, 0, len(edges))
	for _, e := range edges {
		items = append(items, DoctorListItem{
			ID:           e.Doctor.ID,
			FirstName:    e.Doctor.User.FirstName,
			LastName:     e.Doctor.User.LastName,
			Specialty:    e.Doctor.Specialty,
			ProfileImage: e.Doctor.User.ProfileImage,
		})
	}
	utils.Success(c, "Assigned doctors fetched successfully", items)
}

// GetDoctorAppointments lists one assigned doctor's schedule.
func (h *AssistantHandler) GetDoctorAppointments(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	views, err := h.Engine.ListDoctorAppointments(caller, c.Param("doctorId"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", views)
}

// AssistantCreateAppointmentRequest represents a delegated booking. The
// patient must be named explicitly; the appointment is attributed to
// the patient, never to the assistant.
type AssistantCreateAppointmentRequest struct {
	PatientID   string `json:"patientId" binding:"required,uuid"`
	DateTime    string `json:"dateTime" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=PRIMARY FOLLOW_UP"`
	PaymentType string `json:"paymentType" binding:"required"`
}

// CreateAppointment books a slot with an assigned doctor on behalf of a
// patient.
func (h *AssistantHandler) CreateAppointment(c *gin.Context) {
	var req AssistantCreateAppointmentRequest
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

	view, err := h.Engine.Book(caller, c.Param("doctorId"), req.PatientID, dateTime, models.AppointmentType(req.Type), req.PaymentType)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Created(c, "Appointment booked successfully", view)
}

// EditAppointment reschedules an appointment of an assigned doctor.
func (h *AssistantHandler) EditAppointment(c *gin.Context) {
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

// CancelAppointment cancels an appointment of an assigned doctor.
func (h *AssistantHandler) CancelAppointment(c *gin.Context) {
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

// GetPatients lists all patient-role users an assistant may book for.
func (h *AssistantHandler) GetPatients(c *gin.Context) {
	var patients []models.User
	if err := h.DB.Where("role = ?", models.RoleUser).Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(patients))
	for i, p := range patients {
		sanitized[i] = p.Sanitize()
	}
	utils.Success(c, "Patients fetched successfully", sanitized)
}
