package api

import (
	"errors"
	"net/http"

	"aebox-api/internal/database"
	"aebox-api/internal/models"
	"aebox-api/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateUserRequest represents a create user request
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserUpdateRequest represents an update user request; omitted fields are
// left unchanged
type UserUpdateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// GetAllUsers gets all users
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get users: "+err.Error())
		return
	}
	response.SuccessJSON(c, users)
}

// GetUser gets a user by id
func GetUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "User not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get user: "+err.Error())
		return
	}
	response.SuccessJSON(c, user)
}

// CreateUser creates a new user
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to create user: "+err.Error())
		return
	}
	response.CreatedJSON(c, user)
}

// UpdateUser updates a user by id
func UpdateUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if len(updates) == 0 {
		response.ErrorJSON(c, http.StatusBadRequest, "No fields to update")
		return
	}

	result := database.GetDB().Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to update user: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "User not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}

// DeleteUser deletes a user by id
func DeleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	result := database.GetDB().Delete(&models.User{}, id)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to delete user: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "User not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}
