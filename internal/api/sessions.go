package api

import (
	"errors"
	"net/http"
	"time"

	"aebox-api/internal/database"
	"aebox-api/internal/models"
	"aebox-api/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionRequest represents a create/update session request
type SessionRequest struct {
	UserID    uint       `json:"user_id" binding:"required"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    string     `json:"status"`
}

// GetAllSessions gets all sessions
func GetAllSessions(c *gin.Context) {
	var sessions []models.Session
	if err := database.GetDB().Find(&sessions).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get sessions: "+err.Error())
		return
	}
	response.SuccessJSON(c, sessions)
}

// GetSession gets a session by id
func GetSession(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid session id")
		return
	}

	var session models.Session
	if err := database.GetDB().First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Session not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get session: "+err.Error())
		return
	}
	response.SuccessJSON(c, session)
}

// CreateSession creates a new session
func CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	session := models.Session{
		UserID:    req.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
	}
	if session.StartTime.IsZero() {
		session.StartTime = time.Now()
	}
	if session.Status == "" {
		session.Status = "active"
	}
	if err := database.GetDB().Create(&session).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to create session: "+err.Error())
		return
	}
	response.CreatedJSON(c, session)
}

// UpdateSession updates a session by id
func UpdateSession(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid session id")
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"user_id": req.UserID,
	}
	if !req.StartTime.IsZero() {
		updates["start_time"] = req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = req.EndTime
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	result := database.GetDB().Model(&models.Session{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to update session: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "Session not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}

// DeleteSession deletes a session by id
func DeleteSession(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid session id")
		return
	}

	result := database.GetDB().Delete(&models.Session{}, id)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to delete session: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "Session not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}
