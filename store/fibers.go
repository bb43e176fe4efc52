package store

import (
	"gorm.io/gorm"

	"vols_gis/backend/models"
)

type FiberFilter struct {
	Status string
	Search string
	VolsID *uint
}

func CreateFiber(db *gorm.DB, fiber *models.Fiber) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(fiber).Error
	}))
}

func GetFiber(db *gorm.DB, id uint) (models.Fiber, error) {
	var fiber models.Fiber
	if err := db.First(&fiber, id).Error; err != nil {
		return models.Fiber{}, wrap(err)
	}
	return fiber, nil
}

func ListFibers(db *gorm.DB, f FiberFilter) ([]models.Fiber, error) {
	q := db.Model(&models.Fiber{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	if f.VolsID != nil {
		q = q.Where("vols_id = ?", *f.VolsID)
	}
	var fibers []models.Fiber
	if err := q.Order("id").Find(&fibers).Error; err != nil {
		return nil, wrap(err)
	}
	return fibers, nil
}

func UpdateFiber(db *gorm.DB, id uint, changes map[string]interface{}) (models.Fiber, error) {
	var fiber models.Fiber
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&fiber, id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&models.Fiber{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&fiber, id).Error
	})
	if err != nil {
		return models.Fiber{}, wrap(err)
	}
	return fiber, nil
}

func DeleteFiber(db *gorm.DB, id uint) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		var fiber models.Fiber
		if err := tx.First(&fiber, id).Error; err != nil {
			return err
		}
		return tx.Delete(&fiber).Error
	}))
}
