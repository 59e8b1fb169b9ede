// Command seed-user creates a user, or resets the password and role of an
// existing one.
package main

import (
	"context"
	"flag"
	"strings"

	"inventory-backend/internal/auth"
	"inventory-backend/internal/config"
	"inventory-backend/internal/database"
	"inventory-backend/internal/models"
	"inventory-backend/internal/store"
)

func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "plain-text password")
	role := flag.String("role", string(models.RoleEmployee), "admin or employee")
	flag.Parse()

	cfg := config.Load()
	logger := config.GetLogger()

	name := strings.TrimSpace(*username)
	r := models.UserRole(strings.ToLower(strings.TrimSpace(*role)))
	if name == "" || *password == "" {
		logger.Fatal("-username and -password are required")
	}
	if !r.Valid() {
		logger.Fatalf("unknown role %q", *role)
	}

	db, err := database.Connect(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		logger.Fatal(err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Fatal(err)
	}

	user := &models.User{Username: name, PasswordHash: hash, Role: r}
	if err := store.New(db).UpsertUser(context.Background(), user); err != nil {
		logger.Fatal(err)
	}
	logger.WithField("username", name).WithField("role", r).Info("user saved")
}
