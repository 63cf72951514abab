package repository

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"clicknet/internal/database"
	"clicknet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open("file:repotest?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Printf("Repository tests skipped: sqlite unavailable: %v", err)
		os.Exit(0)
	}
	if err := database.Migrate(db); err != nil {
		log.Printf("Repository tests skipped: migration failed: %v", err)
		os.Exit(0)
	}
	testDB = db

	os.Exit(m.Run())
}

func makeUser(t *testing.T) *models.User {
	t.Helper()
	ts := time.Now().UnixNano()
	u := &models.User{
		Username: fmt.Sprintf("u%d", ts),
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("u%d@example.com", ts),
		Password: "not-a-real-hash",
	}
	if err := testDB.Create(u).Error; err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return u
}

func makePost(t *testing.T, userID uint, content string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: userID, Content: content}
	if err := testDB.Create(p).Error; err != nil {
		t.Fatalf("creating test post: %v", err)
	}
	return p
}
