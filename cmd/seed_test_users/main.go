package main

import (
	"errors"
	"flag"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logger"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// Every seeded account signs in with this password
const seedPassword = "password123"

type seedUser struct {
	username  string
	email     string
	firstName string
	lastName  string
	admin     bool
}

var testUsers = []seedUser{
	{"chef_alice", "alice@example.com", "Alice", "Johnson", false},
	{"cooking_bob", "bob@example.com", "Bob", "Smith", false},
	{"foodie_carol", "carol@example.com", "Carol", "Davis", false},
	{"bryan", "bryan@example.com", "Bryan", "Williams", false},
	{"binu", "binu@example.com", "Binu", "Patel", false},
	{"chris", "chris@example.com", "Chris", "Evans", false},
	{"kiraah", "kiraah@example.com", "Kiraah", "Singh", false},
	{"admin", "admin@example.com", "Admin", "User", true},
}

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	log := logger.Must(cfg.LogLevel, "console")
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, *migrationsDir, log); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	// cost 10 keeps seeding fast; logins still verify against any cost
	hash, err := service.HashPassword(seedPassword, 10)
	if err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}

	created := 0
	for _, u := range testUsers {
		var existing models.User
		err := db.Where("email = ?", u.email).First(&existing).Error
		if err == nil {
			log.Info("user already exists, skipping", zap.String("email", u.email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal("failed to look up user", zap.String("email", u.email), zap.Error(err))
		}

		user := models.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: hash,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			IsAdmin:      u.admin,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("failed to create user", zap.String("email", u.email), zap.Error(err))
		}
		created++
		log.Info("created user", zap.String("username", user.Username), zap.Bool("admin", user.IsAdmin))
	}

	log.Info("test users ready", zap.Int("created", created), zap.String("password", seedPassword))
}
