package database

import (
	"errors"
	"fmt"

	"aebox-api/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrUnknownApplicationID reports a reorder request naming an application
// that does not belong to the box.
var ErrUnknownApplicationID = errors.New("application id does not belong to box")

// CreateApplication appends an application to the end of its box: the new
// row gets max(order)+1 across existing siblings, or 0 for an empty box.
// Existing siblings are never renumbered on insert.
func CreateApplication(app *models.Application) error {
	next, err := nextOrder(app.BoxID)
	if err != nil {
		return err
	}
	app.Order = next
	return DB.Create(app).Error
}

// nextOrder computes the append position for a box
func nextOrder(boxID uint) (int, error) {
	var top models.Application
	err := DB.Where("box_id = ?", boxID).Order(`"order" DESC`).First(&top).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return top.Order + 1, nil
}

// GetApplication fetches an application by id
func GetApplication(id uint) (*models.Application, error) {
	var app models.Application
	if err := DB.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// GetAllApplications returns every application
func GetAllApplications() ([]models.Application, error) {
	var apps []models.Application
	err := DB.Find(&apps).Error
	return apps, err
}

// GetApplicationsByBox returns the applications of a box sorted ascending
// by their order value.
func GetApplicationsByBox(boxID uint) ([]models.Application, error) {
	var apps []models.Application
	err := DB.Where("box_id = ?", boxID).Order(`"order" ASC`).Find(&apps).Error
	return apps, err
}

// UpdateApplication updates the mutable attributes of an application.
// Order is deliberately excluded: it only changes through ReorderApplications.
func UpdateApplication(id uint, updates map[string]interface{}) error {
	result := DB.Model(&models.Application{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteApplication deletes an application by id. Survivors keep their order
// values; the gap closes on the next explicit reorder.
func DeleteApplication(id uint) error {
	result := DB.Delete(&models.Application{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReorderApplications assigns order i to the application at orderedIDs[i].
//
// Every id must belong to the box or the whole request is rejected before
// any write. The per-row updates are independent statements fired
// concurrently; a failed update surfaces as the overall error with no
// rollback of updates that already landed, so callers recover by re-issuing
// the full reorder. Siblings omitted from orderedIDs keep their old order
// value, which may now collide with an assigned one.
func ReorderApplications(boxID uint, orderedIDs []uint) error {
	var siblings []models.Application
	if err := DB.Select("id").Where("box_id = ?", boxID).Find(&siblings).Error; err != nil {
		return err
	}

	valid := make(map[uint]bool, len(siblings))
	for _, sibling := range siblings {
		valid[sibling.ID] = true
	}
	for _, id := range orderedIDs {
		if !valid[id] {
			return fmt.Errorf("%w: %d", ErrUnknownApplicationID, id)
		}
	}

	var g errgroup.Group
	for i, id := range orderedIDs {
		i, id := i, id
		g.Go(func() error {
			return DB.Model(&models.Application{}).Where("id = ?", id).Update("order", i).Error
		})
	}
	return g.Wait()
}
