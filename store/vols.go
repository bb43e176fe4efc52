package store

import (
	"gorm.io/gorm"

	"vols_gis/backend/models"
)

type VolsFilter struct {
	Status string
	Search string
}

func CreateVols(db *gorm.DB, vols *models.Vols) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(vols).Error
	}))
}

func GetVols(db *gorm.DB, id uint) (models.Vols, error) {
	var vols models.Vols
	if err := db.First(&vols, id).Error; err != nil {
		return models.Vols{}, wrap(err)
	}
	return vols, nil
}

func ListVols(db *gorm.DB, f VolsFilter) ([]models.Vols, error) {
	q := db.Model(&models.Vols{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	var list []models.Vols
	if err := q.Order("id").Find(&list).Error; err != nil {
		return nil, wrap(err)
	}
	return list, nil
}

func UpdateVols(db *gorm.DB, id uint, changes map[string]interface{}) (models.Vols, error) {
	var vols models.Vols
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vols, id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&models.Vols{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&vols, id).Error
	})
	if err != nil {
		return models.Vols{}, wrap(err)
	}
	return vols, nil
}

func DeleteVols(db *gorm.DB, id uint) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		var vols models.Vols
		if err := tx.First(&vols, id).Error; err != nil {
			return err
		}
		return tx.Delete(&vols).Error
	}))
}

// SumVolsLength totals length_km over all routes.
func SumVolsLength(db *gorm.DB) (float64, error) {
	var total *float64
	err := db.Model(&models.Vols{}).Select("SUM(length_km)").Scan(&total).Error
	if err != nil {
		return 0, wrap(err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
