package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"
)

// AdminHandler handles user administration and assistant-doctor
// delegation management.
type AdminHandler struct {
	DB *gorm.DB
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// GetUsers lists all users.
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// UpdateUserRequest represents the request body for changing a user's
// role and status.
type UpdateUserRequest struct {
	Role   string `json:"role" binding:"required,oneof=ADMIN DOCTOR ASSISTANT USER"`
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

// UpdateUser changes a user's role and status. Promoting a user to the
// doctor role creates their doctor record on first promotion.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	user.Role = models.Role(req.Role)
	user.Status = models.UserStatus(req.Status)
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	if user.Role == models.RoleDoctor {
		var doctor models.Doctor
		err := h.DB.First(&doctor, "user_id = ?", user.ID).Error
		if err == gorm.ErrRecordNotFound {
			doctor = models.Doctor{UserID: user.ID, Specialty: "General"}
			if err := h.DB.Create(&doctor).Error; err != nil {
				utils.InternalServerError(c, "Failed to create doctor record: "+err.Error())
				return
			}
		} else if err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
	}

	utils.Success(c, "User updated successfully", user.Sanitize())
}

// DeleteUser removes a user.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.DB.Delete(&models.User{}, "id = ?", c.Param("id")).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}
	utils.Success(c, "User deleted successfully", nil)
}

// GetDoctors lists all doctor-role users for delegation assignment.
func (h *AdminHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Preload("User").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	items := make([]DoctorListItem, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, DoctorListItem{
			ID:        d.ID,
			FirstName: d.User.FirstName,
			LastName:  d.User.LastName,
			Specialty: d.Specialty,
		})
	}
	utils.Success(c, "Doctors fetched successfully", items)
}

// GetAssistants lists all assistant-role users.
func (h *AdminHandler) GetAssistants(c *gin.Context) {
	var assistants []models.User
	if err := h.DB.Where("role = ?", models.RoleAssistant).Find(&assistants).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch assistants: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(assistants))
	for i, a := range assistants {
		sanitized[i] = a.Sanitize()
	}
	utils.Success(c, "Assistants fetched successfully", sanitized)
}

// GetAssistantDoctors lists the doctors currently assigned to an
// assistant.
func (h *AdminHandler) GetAssistantDoctors(c *gin.Context) {
	var edges []models.AssistantDoctor
	err := h.DB.
		Preload("Doctor").
		Preload("Doctor.User").
		Where("assistant_id = ?", c.Param("id")).
		Find(&edges).Error
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	items := make([]DoctorListItem, 0, len(edges))
	for _, e := range edges {
		items = append(items, DoctorListItem{
			ID:        e.Doctor.ID,
			FirstName: e.Doctor.User.FirstName,
			LastName:  e.Doctor.User.LastName,
			Specialty: e.Doctor.Specialty,
		})
	}
	utils.Success(c, "Assigned doctors fetched successfully", items)
}

// AssignDoctor creates a delegation edge between an assistant and a
// doctor. Repeating an existing assignment succeeds without creating a
// duplicate edge.
func (h *AdminHandler) AssignDoctor(c *gin.Context) {
	assistantID := c.Param("id")
	doctorID := c.Param("doctorId")

	var assistant models.User
	if err := h.DB.First(&assistant, "id = ?", assistantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Assistant not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if assistant.Role != models.RoleAssistant {
		utils.BadRequest(c, "User is not an assistant")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var existing models.AssistantDoctor
	err := h.DB.Where("assistant_id = ? AND doctor_id = ?", assistantID, doctorID).First(&existing).Error
	if err == nil {
		utils.Success(c, "Doctor already assigned to assistant", nil)
		return
	}
	if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	edge := models.AssistantDoctor{AssistantID: assistantID, DoctorID: doctorID}
	if err := h.DB.Create(&edge).Error; err != nil {
		utils.InternalServerError(c, "Failed to assign doctor: "+err.Error())
		return
	}
	utils.Created(c, "Doctor assigned to assistant", nil)
}

// UnassignDoctor removes a delegation edge. Removing a non-existent
// edge succeeds.
func (h *AdminHandler) UnassignDoctor(c *gin.Context) {
	err := h.DB.
		Where("assistant_id = ? AND doctor_id = ?", c.Param("id"), c.Param("doctorId")).
		Delete(&models.AssistantDoctor{}).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to unassign doctor: "+err.Error())
		return
	}
	utils.Success(c, "Doctor unassigned from assistant", nil)
}
