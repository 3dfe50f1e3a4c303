package configs

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Akib-17/CSE471-Sheba/entity"
)

// SeedAdmin creates the initial admin account. Admins are never
// registered through the API, only seeded.
func SeedAdmin(cfg *Config) error {
	db := DB()
	username := cfg.AdminUsername
	pass := cfg.AdminPassword
	if username == "" || pass == "" {
		log.Warn().Msg("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		log.Info().Str("username", username).Msg("admin already exists")
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Username: username,
		Password: string(hash),
		Name:     "Administrator",
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}
