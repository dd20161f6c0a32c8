package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/auca/lostandfound-backend/config"
	"github.com/auca/lostandfound-backend/internal/app/model"
	"github.com/auca/lostandfound-backend/internal/app/repository"
	"github.com/auca/lostandfound-backend/internal/app/service"
	"github.com/auca/lostandfound-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Seeds the admin account and default categories, and optionally imports
// found items from an XLSX register:
//
//	go run cmd/seed/main.go [register.xlsx]
//
// Expected columns: Item Name | Description | Found Location | Found Date (2006-01-02)
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := seedAdmin(); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	if len(os.Args) > 1 {
		count, err := importFoundItems(os.Args[1])
		if err != nil {
			log.Fatal("Failed to import found items:", err)
		}
		fmt.Printf("Imported %d found items\n", count)
	}

	fmt.Println("Seeding completed")
}

func seedAdmin() error {
	userRepo := repository.NewUserRepository(db.GetDB())
	userService := service.NewUserService(userRepo)

	email := getEnv("ADMIN_EMAIL", "admin@auca.kg")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	_, err := userService.Create(getEnv("ADMIN_USERNAME", "admin"), email, password, "ADMIN")
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) || errors.Is(err, service.ErrUsernameAlreadyExists) {
			fmt.Println("Admin user already exists, skipping")
			return nil
		}
		return err
	}

	fmt.Printf("Admin user created: %s\n", email)
	return nil
}

func importFoundItems(filePath string) (int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("no data rows found in XLSX file")
	}

	imported := 0
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 1 || row[0] == "" {
			skipped++
			continue
		}

		item := model.FoundItem{
			ItemName: row[0],
			Status:   model.StatusAvailable,
		}
		if len(row) > 1 {
			item.Description = row[1]
		}
		if len(row) > 2 {
			item.FoundLocation = row[2]
		}
		if len(row) > 3 && row[3] != "" {
			date, err := time.Parse("2006-01-02", row[3])
			if err != nil {
				fmt.Printf("Row %d: unparseable date %q, skipping\n", i+1, row[3])
				skipped++
				continue
			}
			item.FoundDate = date
		}

		if err := createIfMissing(&item); err != nil {
			return imported, err
		}
		imported++
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d rows\n", skipped)
	}
	return imported, nil
}

func createIfMissing(item *model.FoundItem) error {
	var existing model.FoundItem
	err := db.GetDB().
		Where("item_name = ? AND found_location = ?", item.ItemName, item.FoundLocation).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.GetDB().Create(item).Error
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
