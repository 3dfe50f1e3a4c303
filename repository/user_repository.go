package repository

import (
	"gorm.io/gorm"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

// UserRepository only talks to the users table.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByProviderUniqueID resolves a provider's public id (e.g. PROV-001)
// to the user row.
func (r *UserRepository) FindByProviderUniqueID(uid string) (*entity.User, error) {
	var user entity.User
	err := r.DB.Where("provider_unique_id = ? AND role = ?", uid, entity.RoleProvider).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetProviderUniqueID(userID uint, uid string) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Update("provider_unique_id", uid).Error
}

// ApplyRating folds one rating into the provider's aggregate.
func (r *UserRepository) ApplyRating(tx *gorm.DB, providerID uint, rating int) error {
	var u entity.User
	if err := tx.First(&u, providerID).Error; err != nil {
		return err
	}
	total := u.RatingAverage*float64(u.RatingCount) + float64(rating)
	count := u.RatingCount + 1
	return tx.Model(&entity.User{}).Where("id = ?", providerID).
		Updates(map[string]any{
			"rating_average": total / float64(count),
			"rating_count":   count,
		}).Error
}
