package api

import (
	"errors"
	"net/http"
	"time"

	"aebox-api/internal/database"
	"aebox-api/internal/models"
	"aebox-api/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceSyncRequest represents a create/update device sync request
type DeviceSyncRequest struct {
	DeviceID   string     `json:"device_id"`
	SyncStatus string     `json:"sync_status"`
	LastSynced *time.Time `json:"last_synced"`
}

// GetAllDeviceSyncs gets all device sync records
func GetAllDeviceSyncs(c *gin.Context) {
	var devices []models.DeviceSync
	if err := database.GetDB().Find(&devices).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get device syncs: "+err.Error())
		return
	}
	response.SuccessJSON(c, devices)
}

// GetDeviceSync gets a device sync record by id
func GetDeviceSync(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid device sync id")
		return
	}

	var device models.DeviceSync
	if err := database.GetDB().First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorJSON(c, http.StatusNotFound, "Device sync not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get device sync: "+err.Error())
		return
	}
	response.SuccessJSON(c, device)
}

// CreateDeviceSync creates a device sync record, generating a device id
// when the client doesn't supply one
func CreateDeviceSync(c *gin.Context) {
	var req DeviceSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	device := models.DeviceSync{
		DeviceID:   req.DeviceID,
		SyncStatus: req.SyncStatus,
	}
	if device.DeviceID == "" {
		device.DeviceID = "device_" + uuid.NewString()
	}
	if device.SyncStatus == "" {
		device.SyncStatus = "pending"
	}
	if req.LastSynced != nil {
		device.LastSynced = *req.LastSynced
	}

	if err := database.GetDB().Create(&device).Error; err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to create device sync: "+err.Error())
		return
	}
	response.CreatedJSON(c, device)
}

// UpdateDeviceSync updates a device sync record by id
func UpdateDeviceSync(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid device sync id")
		return
	}

	var req DeviceSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.DeviceID != "" {
		updates["device_id"] = req.DeviceID
	}
	if req.SyncStatus != "" {
		updates["sync_status"] = req.SyncStatus
	}
	if req.LastSynced != nil {
		updates["last_synced"] = req.LastSynced
	}
	if len(updates) == 0 {
		response.ErrorJSON(c, http.StatusBadRequest, "No fields to update")
		return
	}

	result := database.GetDB().Model(&models.DeviceSync{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to update device sync: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "Device sync not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}

// DeleteDeviceSync deletes a device sync record by id
func DeleteDeviceSync(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid device sync id")
		return
	}

	result := database.GetDB().Delete(&models.DeviceSync{}, id)
	if result.Error != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to delete device sync: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.ErrorJSON(c, http.StatusNotFound, "Device sync not found")
		return
	}
	response.SuccessJSON(c, gin.H{"id": id})
}
