package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/utils"
)

type AlertaController struct {
	DB *gorm.DB
}

func NewAlertaController(db *gorm.DB) *AlertaController {
	return &AlertaController{DB: db}
}

// GetAllAlertas -> historial de alertas del restaurante, recientes primero.
func (ac *AlertaController) GetAllAlertas(c *gin.Context) {
	q := ac.DB.Where("restaurante_id = ?", restauranteDe(c))
	if c.Query("pendientes") == "true" {
		q = q.Where("revisada = ?", false)
	}

	var alertas []models.AlertaSeguridad
	if err := q.Order("created_at DESC").Limit(100).Find(&alertas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Historial de alertas", alertas)
}

// MarcarRevisada -> deja constancia de quién revisó la alerta.
func (ac *AlertaController) MarcarRevisada(c *gin.Context) {
	alertaID := c.Param("alerta_id")

	var alerta models.AlertaSeguridad
	if err := ac.DB.First(&alerta, alertaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	ahora := time.Now()
	revisor := cajeroDe(c)
	alerta.Revisada = true
	alerta.RevisadaPor = &revisor
	alerta.RevisadaAt = &ahora
	if err := ac.DB.Save(&alerta).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Alerta marcada como revisada", alerta)
}
