package services_test

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Akib-17/CSE471-Sheba/entity"
	"github.com/Akib-17/CSE471-Sheba/pkg/notify"
	"github.com/Akib-17/CSE471-Sheba/services"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache
// DSN keeps every pooled connection on the same schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.ServiceRequest{},
		&entity.Complaint{},
		&entity.Warning{},
		&entity.ChatMessage{},
		&entity.Notification{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newTestNotifier(db *gorm.DB) *notify.Notifier {
	return notify.New(db, nil)
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	u := &entity.User{
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedProvider(t *testing.T, db *gorm.DB, username, uniqueID string) *entity.User {
	t.Helper()
	u := seedUser(t, db, username, entity.RoleProvider)
	if err := db.Model(u).Update("provider_unique_id", uniqueID).Error; err != nil {
		t.Fatalf("seed provider id: %v", err)
	}
	u.ProviderUniqueID = &uniqueID
	return u
}

func asIdentity(u *entity.User) services.Identity {
	return services.Identity{UserID: u.ID, Role: u.Role}
}
