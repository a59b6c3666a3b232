package repositories_test

import (
	"path/filepath"
	"testing"

	"github.com/AlexBrence/TODO-list-app/internal/config"
	"github.com/AlexBrence/TODO-list-app/internal/models"
	"github.com/AlexBrence/TODO-list-app/internal/repositories"

	"github.com/gofrs/uuid"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	return cfg
}

func TestOpenDatabaseMigratesSchema(t *testing.T) {
	db, err := repositories.OpenDatabase(testConfig(t))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	for _, table := range []string{"users", "tasks"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestOpenDatabaseRoundTrip(t *testing.T) {
	db, err := repositories.OpenDatabase(testConfig(t))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "alice",
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	task := models.Task{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: user.ID,
		Title:  "Groceries",
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	var got models.Task
	if err := db.First(&got, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("Failed to read task back: %v", err)
	}
	if got.Title != "Groceries" || got.UserID != user.ID {
		t.Errorf("Unexpected task read back: %+v", got)
	}
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	if _, err := repositories.OpenDatabase(cfg); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}
