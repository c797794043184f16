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

// SpaceRequest represents a create space request
type SpaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SpaceUpdateRequest represents an update space request; omitted fields
// are left unchanged
type SpaceUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetAllSpaces gets all spaces
func GetAllSpaces(c *gin.Context) {
	var spaces []models.Space
	if err := database.GetDB().Find(&spaces).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get spaces: "+err.Error())
		return
	}
	response.SuccessJSON(c, spaces)
}

// GetSpace gets a space by id
func GetSpace(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid space id")
		return
	}

	var space models.Space
	if err := database.GetDB().First(&space, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Space not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get space: "+err.Error())
		return
	}
	response.SuccessJSON(c, space)
}

// CreateSpace creates a new space
func CreateSpace(c *gin.Context) {
	var req SpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	space := models.Space{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := database.GetDB().Create(&space).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to create space: "+err.Error())
		return
	}
	response.CreatedJSON(c, space)
}

// UpdateSpace updates a space by id
func UpdateSpace(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid space id")
		return
	}

	var req SpaceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if len(updates) == 0 {
		response.ErrorJSON(c, http.StatusBadRequest, "No fields to update")
		return
	}

	result := database.GetDB().Model(&models.Space{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to update space: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "Space not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}

// DeleteSpace deletes a space by id
func DeleteSpace(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid space id")
		return
	}

	result := database.GetDB().Delete(&models.Space{}, id)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to delete space: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "Space not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}
