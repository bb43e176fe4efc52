package store

import (
	"gorm.io/gorm"

	"vols_gis/backend/models"
)

// LinkFilter narrows ListLinks. NodeID matches either endpoint.
type LinkFilter struct {
	Status  string
	FiberID *uint
	NodeID  *uint
}

func CreateLink(db *gorm.DB, link *models.Link) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(link).Error
	}))
}

func GetLink(db *gorm.DB, id uint) (models.Link, error) {
	var link models.Link
	if err := db.First(&link, id).Error; err != nil {
		return models.Link{}, wrap(err)
	}
	return link, nil
}

func ListLinks(db *gorm.DB, f LinkFilter) ([]models.Link, error) {
	q := db.Model(&models.Link{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.FiberID != nil {
		q = q.Where("fiber_id = ?", *f.FiberID)
	}
	if f.NodeID != nil {
		q = q.Where("start_node_id = ? OR end_node_id = ?", *f.NodeID, *f.NodeID)
	}
	var links []models.Link
	if err := q.Order("id").Find(&links).Error; err != nil {
		return nil, wrap(err)
	}
	return links, nil
}

func UpdateLink(db *gorm.DB, id uint, changes map[string]interface{}) (models.Link, error) {
	var link models.Link
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&link, id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&models.Link{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&link, id).Error
	})
	if err != nil {
		return models.Link{}, wrap(err)
	}
	return link, nil
}

func DeleteLink(db *gorm.DB, id uint) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		var link models.Link
		if err := tx.First(&link, id).Error; err != nil {
			return err
		}
		return tx.Delete(&link).Error
	}))
}
