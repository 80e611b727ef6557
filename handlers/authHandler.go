package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"
	"ClinicFlow/utils"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
	}
}

// Register handles new staff user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.ValidateAndCreateUser(c.Request.Context(), &user); err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.Status(201)
}

// Login authenticates the user and returns tokens, also set as cookies
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.UserService.AuthenticateUser(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(strconv.FormatInt(user.ID, 10), user.Role.Name)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// RefreshToken exchanges a valid refresh token for a fresh access token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		if cookie, cookieErr := c.Cookie("refreshToken"); cookieErr == nil {
			req.RefreshToken = cookie
		}
	}
	if req.RefreshToken == "" {
		c.JSON(400, gin.H{"error": "Refresh token is required"})
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, "Admin", "Doctor", "Receptionist")
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate access token: %v", err)})
		return
	}

	c.JSON(200, gin.H{
		"accessToken": accessToken,
	})
}

// Logoff logs the user out by clearing cookies
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(200)
}

// GetUserProfile retrieves the authenticated user's profile
func (h *AuthHandler) GetUserProfile(c *gin.Context) {
	userID, err := authenticatedUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.JSON(200, gin.H{"user": user})
}

// GetUserPermissions lists the permissions granted to the authenticated user
func (h *AuthHandler) GetUserPermissions(c *gin.Context) {
	userID, err := authenticatedUserID(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	permissions, err := h.UserService.GetUserPermissions(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.JSON(200, permissions)
}

// AdminManageUsers lists all users; the route restricts it to Admins
func (h *AuthHandler) AdminManageUsers(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.JSON(200, users)
}

// DeleteAccount removes a user account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.UserService.DeleteUser(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.Status(200)
}

func authenticatedUserID(c *gin.Context) (int64, error) {
	principal, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(principal, 10, 64)
}
