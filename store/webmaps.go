package store

import (
	"gorm.io/gorm"

	"vols_gis/backend/models"
)

func CreateWebMap(db *gorm.DB, webmap *models.WebMap) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(webmap).Error
	}))
}

func GetWebMap(db *gorm.DB, id uint) (models.WebMap, error) {
	var webmap models.WebMap
	if err := db.First(&webmap, id).Error; err != nil {
		return models.WebMap{}, wrap(err)
	}
	return webmap, nil
}

func ListWebMaps(db *gorm.DB) ([]models.WebMap, error) {
	var webmaps []models.WebMap
	if err := db.Order("id").Find(&webmaps).Error; err != nil {
		return nil, wrap(err)
	}
	return webmaps, nil
}

func UpdateWebMap(db *gorm.DB, id uint, changes map[string]interface{}) (models.WebMap, error) {
	var webmap models.WebMap
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&webmap, id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&models.WebMap{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&webmap, id).Error
	})
	if err != nil {
		return models.WebMap{}, wrap(err)
	}
	return webmap, nil
}

func DeleteWebMap(db *gorm.DB, id uint) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		var webmap models.WebMap
		if err := tx.First(&webmap, id).Error; err != nil {
			return err
		}
		return tx.Delete(&webmap).Error
	}))
}
