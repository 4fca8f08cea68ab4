package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dukapos/dukapos-api/internal/config"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a database connection. SQLite is the default for single-till
// deployments; PostgreSQL is available for multi-till setups.
func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)

		log.Println("Connected to PostgreSQL database")

	case "sqlite", "":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath+"?_foreign_keys=on"), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}

		// SQLite handles one writer at a time
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)

		log.Printf("Opened SQLite database at %s", cfg.SQLitePath)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.PasswordResetToken{},

		&entity.Category{},
		&entity.Product{},

		&entity.Discount{},
		&entity.Sale{},

		&entity.AppSettings{},
		&entity.PrinterConfig{},
		&entity.MpesaTransaction{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the default users, settings,
// categories, and a small starter catalogue. Safe to run on every boot.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedSettings(db); err != nil {
		return err
	}
	if err := seedCatalogue(db); err != nil {
		return err
	}

	log.Println("Default data seeding completed")
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	attendantPassword, err := bcrypt.GenerateFromPassword([]byte("attendant123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash attendant password: %w", err)
	}

	users := []entity.User{
		{
			Username: "admin",
			Password: string(adminPassword),
			FullName: "Admin User",
			Email:    "admin@pos.com",
			Role:     enum.UserRoleAdmin,
			Active:   true,
		},
		{
			Username: "attendant",
			Password: string(attendantPassword),
			FullName: "Till Attendant",
			Email:    "attendant@pos.com",
			Role:     enum.UserRoleAttendant,
			Permissions: []string{
				entity.PermissionEditPrices,
			},
			Active: true,
		},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", users[i].Username, err)
		}
	}

	log.Println("Seeded default users: admin@pos.com, attendant@pos.com")
	return nil
}

func seedSettings(db *gorm.DB) error {
	var settings entity.AppSettings
	err := db.First(&settings, 1).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	settings = entity.AppSettings{
		ID:                 1,
		BusinessName:       "DukaPOS",
		CurrencyCode:       "KES",
		CurrencySymbol:     "KSh",
		TaxEnabled:         true,
		TaxRate:            16,
		TaxName:            "VAT",
		DefaultSaleType:    enum.SaleTypeRetail,
		AllowSplitPayments: true,
		ReceiptFooter:      "Thank you for shopping with us!\nGoods once sold cannot be returned.",
		MpesaEnvironment:   "sandbox",
	}
	return db.Create(&settings).Error
}

func seedCatalogue(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []entity.Category{
		{Name: "Electronics"},
		{Name: "Groceries"},
		{Name: "Clothing"},
		{Name: "Hardware"},
	}
	byName := make(map[string]*entity.Category, len(categories))
	for i := range categories {
		if err := db.Where("name = ?", categories[i].Name).FirstOrCreate(&categories[i]).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", categories[i].Name, err)
		}
		byName[categories[i].Name] = &categories[i]
	}

	wholesale := func(v float64) *float64 { return &v }

	products := []entity.Product{
		{
			CategoryID:     &byName["Groceries"].ID,
			Name:           "Rice 5kg",
			SKU:            "RIC-001",
			Price:          450,
			WholesalePrice: wholesale(400),
			Quantity:       100,
			MinStockLevel:  20,
			Taxable:        true,
			Active:         true,
		},
		{
			CategoryID:     &byName["Groceries"].ID,
			Name:           "Sugar 2kg",
			SKU:            "SUG-001",
			Price:          280,
			WholesalePrice: wholesale(250),
			Quantity:       80,
			MinStockLevel:  15,
			Taxable:        true,
			Active:         true,
		},
		{
			CategoryID:     &byName["Groceries"].ID,
			Name:           "Cooking Oil 1L",
			SKU:            "OIL-001",
			Price:          350,
			WholesalePrice: wholesale(320),
			Quantity:       60,
			MinStockLevel:  10,
			Taxable:        true,
			Active:         true,
		},
		{
			CategoryID:     &byName["Electronics"].ID,
			Name:           "Phone Charger",
			SKU:            "CHG-001",
			Price:          299,
			WholesalePrice: wholesale(250),
			Quantity:       50,
			MinStockLevel:  10,
			Taxable:        true,
			Active:         true,
		},
		{
			CategoryID:     &byName["Clothing"].ID,
			Name:           "T-Shirt",
			SKU:            "TSH-001",
			Price:          499,
			WholesalePrice: wholesale(400),
			Quantity:       40,
			MinStockLevel:  10,
			Taxable:        true,
			Active:         true,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}

	log.Printf("Seeded %d categories and %d products", len(categories), len(products))
	return nil
}
