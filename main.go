package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/config"
	"github.com/daneswara/kafe-pos/mailer"
	"github.com/daneswara/kafe-pos/models"
	"github.com/daneswara/kafe-pos/router"
	"github.com/daneswara/kafe-pos/services"
	"github.com/daneswara/kafe-pos/utils"
)

func main() {
	// .env opsional, environment langsung juga dibaca
	_ = godotenv.Load()

	utils.InitLogger()
	cfg := config.Get()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Gagal koneksi database: %v", err)
	}

	if err := autoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Gagal migrasi database: %v", err)
	}

	if err := seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Gagal seeding data awal: %v", err)
	}

	mails := mailer.NewQueue(64)
	mails.Start(2)
	defer mails.Stop()

	cache := services.NewCacheService()

	r := router.SetupRouter(db, mails, cache)

	utils.InfoLogger.Printf("Server berjalan di port %s (%s)", cfg.Port, cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("Server berhenti: %v", err)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Role{},
		&models.Menu{},
		&models.Category{},
		&models.Media{},
		&models.Product{},
		&models.Table{},
		&models.Customer{},
		&models.Discount{},
		&models.Order{},
		&models.OrderItem{},
		&models.Transaction{},
	)
}

// seed membuat role ADMIN/USER dan menu Dashboard bila belum ada. Aman
// dipanggil berulang.
func seed(db *gorm.DB) error {
	roles := map[string]*models.Role{}
	for _, def := range []struct {
		Name        string
		Description string
	}{
		{models.RoleAdmin, "Akses penuh back office"},
		{models.RoleUser, "Operasional kasir dan pelayan"},
	} {
		var role models.Role
		err := db.Where("name = ?", def.Name).First(&role).Error
		if err == gorm.ErrRecordNotFound {
			role = models.Role{Name: def.Name, Description: def.Description}
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			utils.InfoLogger.Printf("Role %s dibuat", role.Name)
		} else if err != nil {
			return err
		}
		roles[def.Name] = &role
	}

	var dashboard models.Menu
	err := db.Where("name = ?", "Dashboard").First(&dashboard).Error
	if err == gorm.ErrRecordNotFound {
		dashboard = models.Menu{
			Name: "Dashboard",
			Path: "/dashboard",
			Icon: "home",
			Sort: 1,
		}
		if err := db.Create(&dashboard).Error; err != nil {
			return err
		}
		if err := db.Model(roles[models.RoleAdmin]).Association("Menus").Append(&dashboard); err != nil {
			return err
		}
		utils.InfoLogger.Println("Menu Dashboard dibuat untuk role ADMIN")
	} else if err != nil {
		return err
	}

	return nil
}
