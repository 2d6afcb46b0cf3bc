package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/services"
	"github.com/spoonapp/spoon/utils"
)

type HorarioController struct {
	DB *gorm.DB
}

func NewHorarioController(db *gorm.DB) *HorarioController {
	return &HorarioController{DB: db}
}

// GetConfiguracion -> horario semanal más el estado actual (abierto o
// cerrado, minutos desde el cierre, próxima apertura).
func (hc *HorarioController) GetConfiguracion(c *gin.Context) {
	var cfg models.ConfiguracionHorario
	err := hc.DB.Preload("Dias").
		Where("restaurante_id = ?", restauranteDe(c)).
		First(&cfg).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	ahora := time.Now().In(services.UbicacionDe(&cfg))
	data := gin.H{
		"configuracion":        cfg,
		"dentro_de_horario":    services.DentroDeHorario(&cfg, ahora),
		"minutos_desde_cierre": services.MinutosDesdeCierre(&cfg, ahora),
	}
	if proxima := services.ProximaApertura(&cfg, ahora); proxima != nil {
		data["proxima_apertura"] = proxima
	}

	utils.RespondJSON(c, http.StatusOK, "Configuración de horario", data)
}

// ActualizarConfiguracion -> reemplaza el horario semanal completo.
func (hc *HorarioController) ActualizarConfiguracion(c *gin.Context) {
	rol, _ := c.Get("rol")
	if rol != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		Dias []struct {
			DiaSemana int    `json:"dia_semana"`
			Apertura  string `json:"apertura" binding:"required"`
			Cierre    string `json:"cierre" binding:"required"`
		} `json:"dias" binding:"required"`
		CierreAutomatico       *bool  `json:"cierre_automatico"`
		MinutosAviso           *int   `json:"minutos_aviso"`
		UmbralInactividadHoras *int   `json:"umbral_inactividad_horas"`
		ZonaHoraria            string `json:"zona_horaria"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restauranteID := restauranteDe(c)

	var cfg models.ConfiguracionHorario
	err := hc.DB.Where("restaurante_id = ?", restauranteID).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		cfg = models.ConfiguracionHorario{RestauranteID: restauranteID}
	} else if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.CierreAutomatico != nil {
		cfg.CierreAutomatico = *req.CierreAutomatico
	}
	// MinutosAviso solo informa al cliente cuánto avisar antes del cierre;
	// el monitor de inactividad no lo consulta.
	if req.MinutosAviso != nil {
		cfg.MinutosAviso = *req.MinutosAviso
	}
	// UmbralInactividadHoras sí gobierna el cierre automático del monitor.
	if req.UmbralInactividadHoras != nil {
		cfg.UmbralInactividadHoras = *req.UmbralInactividadHoras
	}
	if req.ZonaHoraria != "" {
		cfg.ZonaHoraria = req.ZonaHoraria
	}

	err = hc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&cfg).Error; err != nil {
			return err
		}
		if err := tx.Where("config_id = ?", cfg.ID).Delete(&models.HorarioDia{}).Error; err != nil {
			return err
		}
		for _, d := range req.Dias {
			dia := models.HorarioDia{
				ConfigID:  cfg.ID,
				DiaSemana: d.DiaSemana,
				Apertura:  d.Apertura,
				Cierre:    d.Cierre,
			}
			if err := tx.Create(&dia).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hc.DB.Preload("Dias").First(&cfg, cfg.ID)
	utils.InfoLogger.Printf("Horario actualizado para restaurante %d", restauranteID)
	utils.RespondJSON(c, http.StatusOK, "Configuración actualizada", cfg)
}
