package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/spoonapp/spoon/config"
	"github.com/spoonapp/spoon/middlewares"
	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/router"
	"github.com/spoonapp/spoon/services"
	"github.com/spoonapp/spoon/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env no encontrado: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	monitores := services.NewRegistroMonitores()
	reanudarMonitores(db, monitores)

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, monitores)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Escuchando en el puerto %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Restaurante{},
		&models.Usuario{},
		&models.Mesa{},
		&models.OrdenActiva{},
		&models.OrdenItem{},
		&models.CajaSesion{},
		&models.AlertaSeguridad{},
		&models.ConfiguracionHorario{},
		&models.HorarioDia{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Fallo en AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completado.")
}

// reanudarMonitores levanta un monitor por cada sesión de caja que quedó
// abierta antes del último reinicio del proceso.
func reanudarMonitores(db *gorm.DB, monitores *services.RegistroMonitores) {
	var abiertas []models.CajaSesion
	if err := db.Where("cerrada_at IS NULL").Find(&abiertas).Error; err != nil {
		utils.ErrorLogger.Printf("No se pudieron reanudar los monitores de caja: %v", err)
		return
	}
	for _, sesion := range abiertas {
		monitores.Registrar(services.NewMonitorInactividad(db, sesion))
	}
	if len(abiertas) > 0 {
		utils.InfoLogger.Printf("Reanudados %d monitores de inactividad", len(abiertas))
	}
}
