package store

import (
	"gorm.io/gorm"

	"vols_gis/backend/models"
)

// CreateUser inserts a user after checking username/email uniqueness inside
// the same transaction; the unique indexes catch any race as ErrConflict too.
func CreateUser(db *gorm.DB, user *models.User) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		return tx.Create(user).Error
	}))
}

func GetUser(db *gorm.DB, id uint) (models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return models.User{}, wrap(err)
	}
	return user, nil
}

func GetUserByUsername(db *gorm.DB, username string) (models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, wrap(err)
	}
	return user, nil
}

func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, wrap(err)
	}
	return users, nil
}

func CountUsers(db *gorm.DB) (int64, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, wrap(err)
	}
	return count, nil
}

// UpdateUser applies the change-set after re-checking that a new username or
// email is not held by another user.
func UpdateUser(db *gorm.DB, id uint, changes map[string]interface{}) (models.User, error) {
	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if username, ok := changes["username"]; ok {
			var count int64
			if err := tx.Model(&models.User{}).
				Where("username = ? AND id <> ?", username, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrConflict
			}
		}
		if email, ok := changes["email"]; ok {
			var count int64
			if err := tx.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrConflict
			}
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return models.User{}, wrap(err)
	}
	return user, nil
}

func DeleteUser(db *gorm.DB, id uint) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	}))
}
