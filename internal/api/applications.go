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

// ApplicationRequest represents a create application request
type ApplicationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	BoxID       uint   `json:"box_id" binding:"required"`
	ViewID      string `json:"view_id"`
}

// ApplicationUpdateRequest represents an update application request.
// Order is absent on purpose: positions only change through the reorder
// endpoint.
type ApplicationUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ViewID      string `json:"view_id"`
}

// ReorderRequest carries the full new ordering of a box
type ReorderRequest struct {
	OrderedItemIDs []uint `json:"orderedItemIds" binding:"required"`
}

// GetAllApplications gets all applications
func GetAllApplications(c *gin.Context) {
	apps, err := database.GetAllApplications()
	if err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get applications: "+err.Error())
		return
	}
	response.SuccessJSON(c, apps)
}

// GetApplication gets an application by id
func GetApplication(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid application id")
		return
	}

	app, err := database.GetApplication(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Application not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get application: "+err.Error())
		return
	}
	response.SuccessJSON(c, app)
}

// CreateApplication creates a new application appended to the end of its box
func CreateApplication(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	app := models.Application{
		Name:        req.Name,
		Description: req.Description,
		BoxID:       req.BoxID,
		ViewID:      req.ViewID,
	}
	if err := database.CreateApplication(&app); err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to create application: "+err.Error())
		return
	}
	response.CreatedJSON(c, app)
}

// UpdateApplication updates an application's name, description and view id
func UpdateApplication(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req ApplicationUpdateRequest
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
	if req.ViewID != "" {
		updates["view_id"] = req.ViewID
	}
	if len(updates) == 0 {
		response.ErrorJSON(c, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := database.UpdateApplication(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Application not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to update application: "+err.Error())
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}

// DeleteApplication deletes an application by id
func DeleteApplication(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid application id")
		return
	}

	if err := database.DeleteApplication(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Application not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to delete application: "+err.Error())
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}

// GetApplicationsByBox lists the applications of a box sorted by order
func GetApplicationsByBox(c *gin.Context) {
	boxID, err := parseID(c.Param("box_id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid box id")
		return
	}

	apps, err := database.GetApplicationsByBox(boxID)
	if err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get applications: "+err.Error())
		return
	}
	response.SuccessJSON(c, apps)
}

// ReorderBox applies a client-supplied ordering to a box's applications
func ReorderBox(c *gin.Context) {
	boxID, err := parseID(c.Param("box_id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid box id")
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	if err := database.ReorderApplications(boxID, req.OrderedItemIDs); err != nil {
		if errors.Is(err, database.ErrUnknownApplicationID) {
			response.ErrorJSON(c, http.StatusBadRequest, "Invalid application ids: "+err.Error())
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to update order: "+err.Error())
		return
	}
	response.SuccessJSON(c, gin.H{"message": "Order updated successfully"})
}
