package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/indolink/backend/internal/domain/catalog"
	"github.com/indolink/backend/internal/domain/identity"
	"github.com/indolink/backend/internal/domain/order"
	"github.com/indolink/backend/internal/infrastructure/config"
	"github.com/indolink/backend/internal/infrastructure/logger"
	"github.com/indolink/backend/internal/infrastructure/persistence"
)

// starterCategories are created on --seed so a fresh install has a
// browsable catalog skeleton
var starterCategories = map[string]string{
	"Handicrafts":   "Handmade goods from local artisans",
	"Textiles":      "Batik, woven fabric and garments",
	"Food & Spices": "Packaged food, coffee and spices",
	"Home & Living": "Furniture and home decor",
	"Raw Materials": "Rattan, bamboo, timber and other inputs",
}

func main() {
	var (
		seed          bool
		adminUsername string
		adminEmail    string
		adminPassword string
		logLevel      string
	)
	flag.BoolVar(&seed, "seed", false, "Seed the admin account and starter categories after migrating")
	flag.StringVar(&adminUsername, "admin-username", "admin", "Username for the seeded admin account")
	flag.StringVar(&adminEmail, "admin-email", "admin@indolink.local", "Email for the seeded admin account")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the seeded admin account (required with -seed)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running migrations", zap.String("database", cfg.Database.DBName))
	err = db.DB.AutoMigrate(
		&identity.User{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&order.Order{},
		&order.OrderItem{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Migrations applied")

	if !seed {
		return
	}
	if adminPassword == "" {
		log.Fatal("-admin-password is required with -seed")
	}

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)

	// Admin accounts cannot self-register; this is the only way in
	exists, err := userRepo.ExistsByUsername(ctx, adminUsername)
	if err != nil {
		log.Fatal("Failed to check for existing admin", zap.Error(err))
	}
	if exists {
		log.Info("Admin account already present", zap.String("username", adminUsername))
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash admin password", zap.Error(err))
		}
		admin, err := identity.NewUser(adminUsername, adminEmail, string(hash), identity.RoleAdmin)
		if err != nil {
			log.Fatal("Invalid admin account", zap.Error(err))
		}
		if err := userRepo.Save(ctx, admin); err != nil {
			log.Fatal("Failed to create admin account", zap.Error(err))
		}
		log.Info("Admin account created", zap.String("username", adminUsername))
	}

	for name, description := range starterCategories {
		taken, err := categoryRepo.ExistsByName(ctx, name)
		if err != nil {
			log.Fatal("Failed to check category", zap.String("name", name), zap.Error(err))
		}
		if taken {
			continue
		}
		category, err := catalog.NewCategory(name, description)
		if err != nil {
			log.Fatal("Invalid starter category", zap.String("name", name), zap.Error(err))
		}
		if err := categoryRepo.Save(ctx, category); err != nil {
			log.Fatal("Failed to create category", zap.String("name", name), zap.Error(err))
		}
		log.Info("Category created", zap.String("name", name))
	}

	log.Info("Seed complete")
}
