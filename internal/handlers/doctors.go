package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/store"
	"clinic-booking-server/internal/utils"
)

// DoctorHandler handles the public doctor directory and the doctor
// panel (own schedule and working hours).
type DoctorHandler struct {
	DB      *gorm.DB
	Engine  *scheduling.Engine
	Doctors *store.Doctors
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, engine *scheduling.Engine) *DoctorHandler {
	return &DoctorHandler{DB: db, Engine: engine, Doctors: store.NewDoctors(db)}
}

// DoctorListItem is the directory projection of a doctor.
type DoctorListItem struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Specialty    string `json:"specialty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// WorkingHoursView is the projection of one weekday's hours.
type WorkingHoursView struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DoctorDetails is the projection returned for a single doctor.
type DoctorDetails struct {
	DoctorListItem
	WorksWithHealthInsurance bool               `json:"worksWithHealthInsurance"`
	WorkingHours             []WorkingHoursView `json:"workingHours"`
}

func hoursViews(hours []models.WorkingHours) []WorkingHoursView {
	out := make([]WorkingHoursView, 0, len(hours))
	for _, wh := range hours {
		out = append(out, WorkingHoursView{DayOfWeek: wh.DayOfWeek, StartTime: wh.StartTime, EndTime: wh.EndTime})
	}
	return out
}

// GetDoctors lists all doctors for the public directory.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Preload("User").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	items := make([]DoctorListItem, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, DoctorListItem{
			ID:           d.ID,
			FirstName:    d.User.FirstName,
			LastName:     d.User.LastName,
			Specialty:    d.Specialty,
			ProfileImage: d.User.ProfileImage,
		})
	}
	utils.Success(c, "Doctors fetched successfully", items)
}

// GetDoctorByID returns one doctor with working hours and the insurance
// flag.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctor, err := h.Doctors.Get(c.Param("id"))
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if doctor == nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	utils.Success(c, "Doctor fetched successfully", DoctorDetails{
		DoctorListItem: DoctorListItem{
			ID:           doctor.ID,
			FirstName:    doctor.User.FirstName,
			LastName:     doctor.User.LastName,
			Specialty:    doctor.Specialty,
			ProfileImage: doctor.User.ProfileImage,
		},
		WorksWithHealthInsurance: doctor.WorksWithHealthInsurance,
		WorkingHours:             hoursViews(doctor.WorkingHours),
	})
}

// currentDoctor resolves the doctor record owned by the calling user.
func (h *DoctorHandler) currentDoctor(c *gin.Context) (*models.Doctor, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	doctor, err := h.Doctors.GetByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return nil, false
	}
	if doctor == nil {
		utils.NotFound(c, "Doctor profile not found for this user")
		return nil, false
	}
	return doctor, true
}

// GetMyAppointments lists the calling doctor's schedule.
func (h *DoctorHandler) GetMyAppointments(c *gin.Context) {
	doctor, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	caller, _ := middleware.CallerFromContext(c)

	views, err := h.Engine.ListDoctorAppointments(caller, doctor.ID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", views)
}

// EditAppointment reschedules/relabels one of the doctor's own
// appointments.
func (h *DoctorHandler) EditAppointment(c *gin.Context) {
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

// ShiftAppointmentRequest carries the slot offset for a shift.
type ShiftAppointmentRequest struct {
	OffsetMinutes int `json:"offsetMinutes" binding:"required"`
}

// ShiftAppointment nudges an appointment by exactly one slot. Only +20
// and -20 minute offsets are accepted.
func (h *DoctorHandler) ShiftAppointment(c *gin.Context) {
	var req ShiftAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	view, err := h.Engine.Shift(caller, c.Param("id"), req.OffsetMinutes)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	utils.Success(c, "Appointment shifted successfully", view)
}

// CancelAppointment cancels one of the doctor's appointments.
func (h *DoctorHandler) CancelAppointment(c *gin.Context) {
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

// GetMyWorkingHours returns the calling doctor's weekly hours.
func (h *DoctorHandler) GetMyWorkingHours(c *gin.Context) {
	doctor, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	utils.Success(c, "Working hours fetched successfully", hoursViews(doctor.WorkingHours))
}

// UpdateWorkingHoursRequest carries one or more weekday entries to
// create or replace.
type UpdateWorkingHoursRequest struct {
	WorkingHours []WorkingHoursEntry `json:"workingHours" binding:"required,min=1,dive"`
}

// WorkingHoursEntry is one weekday's open interval.
type WorkingHoursEntry struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"required,min=1,max=7"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// UpdateWorkingHours creates or replaces the entry for each submitted
// weekday. Times are "HH:MM" with start <= end.
func (h *DoctorHandler) UpdateWorkingHours(c *gin.Context) {
	var req UpdateWorkingHoursRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, ok := h.currentDoctor(c)
	if !ok {
		return
	}

	for _, entry := range req.WorkingHours {
		if _, err := time.Parse("15:04", entry.StartTime); err != nil {
			utils.BadRequest(c, "Invalid startTime, expected HH:MM")
			return
		}
		if _, err := time.Parse("15:04", entry.EndTime); err != nil {
			utils.BadRequest(c, "Invalid endTime, expected HH:MM")
			return
		}
		if entry.StartTime > entry.EndTime {
			utils.BadRequest(c, "startTime must not be after endTime")
			return
		}
	}

	for _, entry := range req.WorkingHours {
		var wh models.WorkingHours
		err := h.DB.Where("doctor_id = ? AND day_of_week = ?", doctor.ID, entry.DayOfWeek).First(&wh).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		wh.DoctorID = doctor.ID
		wh.DayOfWeek = entry.DayOfWeek
		wh.StartTime = entry.StartTime
		wh.EndTime = entry.EndTime
		if err := h.DB.Save(&wh).Error; err != nil {
			utils.InternalServerError(c, "Failed to save working hours: "+err.Error())
			return
		}
	}

	utils.Success(c, "Working hours updated successfully", nil)
}

// DeleteWorkingHoursForDay removes the entry for one weekday.
func (h *DoctorHandler) DeleteWorkingHoursForDay(c *gin.Context) {
	doctor, ok := h.currentDoctor(c)
	if !ok {
		return
	}

	day := c.Param("dayOfWeek")
	var wh models.WorkingHours
	if err := h.DB.Where("doctor_id = ? AND day_of_week = ?", doctor.ID, day).First(&wh).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			respondSchedulingError(c, scheduling.ErrWorkingHoursNotFound)
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&wh).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete working hours: "+err.Error())
		return
	}
	utils.Success(c, "Working hours deleted", nil)
}
