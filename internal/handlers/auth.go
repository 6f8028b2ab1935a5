package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"
)

const refreshCookieName = "refresh_token"

// AuthHandler owns registration, login and the refresh-token lifecycle.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// issueTokens generates an access/refresh pair, stores the refresh
// token and sets it as an HTTP-only cookie.
func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) (access, refresh string, err error) {
	access, refresh, err = utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		return "", "", err
	}
	row := models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
	}
	if err := h.DB.Create(&row).Error; err != nil {
		return "", "", err
	}
	c.SetCookie(refreshCookieName, refresh,
		h.Cfg.JWTRefreshExpirationHours*60*60,
		"/", "", h.Cfg.Environment != "development", true)
	return access, refresh, nil
}

// refreshTokenFromRequest reads the refresh token from the cookie,
// falling back to the JSON body for clients that do not send cookies.
func refreshTokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookieName); err == nil && token != "" {
		return token
	}
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

// currentUser loads the authenticated user and writes the error
// response itself when that fails.
func (h *AuthHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &user, true
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// Register creates a new patient account. Elevated roles are granted
// later by an admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	}
	if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}
	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User registered successfully", user.Sanitize())
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login verifies credentials and issues a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	access, refresh, err := h.issueTokens(c, &user)
	if err != nil {
		utils.InternalServerError(c, "Failed to issue tokens: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Sanitize(),
	})
}

// RefreshTokenResponse represents the response body for a token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the refresh token: the presented token is
// revoked and a fresh pair is issued.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token := refreshTokenFromRequest(c)
	if token == "" {
		utils.BadRequest(c, "Refresh token is required")
		return
	}

	claims, err := utils.ValidateToken(token, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	var stored models.RefreshToken
	err = h.DB.Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?",
		token, claims.UserID, false, time.Now()).First(&stored).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load user for token: "+err.Error())
		return
	}

	stored.IsRevoked = true
	if err := h.DB.Save(&stored).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	access, refresh, err := h.issueTokens(c, &user)
	if err != nil {
		utils.InternalServerError(c, "Failed to issue tokens: "+err.Error())
		return
	}

	utils.Success(c, "Access token refreshed successfully", RefreshTokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Logout revokes the presented refresh token and clears the cookie.
// An unknown or already-revoked token still logs out cleanly.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := refreshTokenFromRequest(c)
	if token != "" {
		var stored models.RefreshToken
		err := h.DB.Where("token = ? AND is_revoked = ?", token, false).First(&stored).Error
		switch {
		case err == nil:
			stored.IsRevoked = true
			stored.ExpiresAt = time.Now()
			if err := h.DB.Save(&stored).Error; err != nil {
				utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
				return
			}
		case err != gorm.ErrRecordNotFound:
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
	}

	c.SetCookie(refreshCookieName, "", -1, "/", "",
		h.Cfg.Environment != "development", true)
	utils.Success(c, "Logout successful", nil)
}

// GetProfile returns the authenticated user's own record.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

// UpdateProfileRequest represents the request body for a profile update.
// Email and role are not editable here.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfile updates the authenticated user's name fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if err := h.DB.Save(user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", user.Sanitize())
}
