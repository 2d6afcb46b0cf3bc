package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/realtime"
	"github.com/spoonapp/spoon/services"
	"github.com/spoonapp/spoon/utils"
)

type CajaController struct {
	DB        *gorm.DB
	Monitores *services.RegistroMonitores
}

func NewCajaController(db *gorm.DB, monitores *services.RegistroMonitores) *CajaController {
	return &CajaController{DB: db, Monitores: monitores}
}

func cajeroDe(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// AbrirCaja -> abre la sesión de caja del restaurante. A lo sumo una
// sesión abierta por restaurante.
func (cc *CajaController) AbrirCaja(c *gin.Context) {
	var req struct {
		MontoApertura float64 `json:"monto_apertura"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.MontoApertura < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("el monto de apertura no puede ser negativo"))
		return
	}

	restauranteID := restauranteDe(c)

	var abiertas int64
	if err := cc.DB.Model(&models.CajaSesion{}).
		Where("restaurante_id = ? AND cerrada_at IS NULL", restauranteID).
		Count(&abiertas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if abiertas > 0 {
		utils.RespondError(c, http.StatusConflict, ErrCajaYaAbierta)
		return
	}

	sesion := models.CajaSesion{
		Codigo:         uuid.NewString(),
		RestauranteID:  restauranteID,
		CajeroApertura: cajeroDe(c),
		MontoApertura:  req.MontoApertura,
		AbiertaAt:      time.Now(),
	}
	if err := cc.DB.Create(&sesion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.Monitores.Registrar(services.NewMonitorInactividad(cc.DB, sesion))

	realtime.BroadcastCajaUpdate(sesion)
	utils.InfoLogger.Printf("Caja abierta (sesión=%s, cajero=%d, apertura=%s)",
		sesion.Codigo, sesion.CajeroApertura, utils.FormatearMoneda(int64(sesion.MontoApertura)))
	utils.RespondJSON(c, http.StatusCreated, "Caja abierta", sesion)
}

// CerrarCaja -> cierra la sesión abierta y detiene su monitor.
func (cc *CajaController) CerrarCaja(c *gin.Context) {
	var req struct {
		MontoCierre float64 `json:"monto_cierre"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var sesion models.CajaSesion
	if err := cc.DB.Where("restaurante_id = ? AND cerrada_at IS NULL", restauranteDe(c)).
		First(&sesion).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrSinCajaAbierta)
		return
	}

	ahora := time.Now()
	cajero := cajeroDe(c)
	sesion.CerradaAt = &ahora
	sesion.CajeroCierre = &cajero
	sesion.MontoCierre = &req.MontoCierre
	if err := cc.DB.Save(&sesion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.Monitores.Detener(sesion.ID)

	realtime.BroadcastCajaUpdate(sesion)
	utils.InfoLogger.Printf("Caja cerrada (sesión=%s, cierre=%s)",
		sesion.Codigo, utils.FormatearMoneda(int64(req.MontoCierre)))
	utils.RespondJSON(c, http.StatusOK, "Caja cerrada", sesion)
}

// GetSesionActual -> la sesión abierta y su estado de inactividad.
func (cc *CajaController) GetSesionActual(c *gin.Context) {
	var sesion models.CajaSesion
	if err := cc.DB.Where("restaurante_id = ? AND cerrada_at IS NULL", restauranteDe(c)).
		First(&sesion).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrSinCajaAbierta)
		return
	}

	data := gin.H{"sesion": sesion}
	if monitor, ok := cc.Monitores.Obtener(sesion.ID); ok {
		data["inactividad"] = monitor.Evaluar(time.Now())
	}
	utils.RespondJSON(c, http.StatusOK, "Sesión de caja actual", data)
}

// RegistrarActividad -> reinicia el reloj de inactividad de la sesión.
// Lo invoca el POS ante cualquier interacción del cajero.
func (cc *CajaController) RegistrarActividad(c *gin.Context) {
	var sesion models.CajaSesion
	if err := cc.DB.Where("restaurante_id = ? AND cerrada_at IS NULL", restauranteDe(c)).
		First(&sesion).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrSinCajaAbierta)
		return
	}

	monitor, ok := cc.Monitores.Obtener(sesion.ID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("la sesión no tiene monitor de inactividad"))
		return
	}

	monitor.RegistrarActividad()
	utils.RespondJSON(c, http.StatusOK, "Actividad registrada", monitor.Evaluar(time.Now()))
}

// ResponderAlerta -> registra la respuesta del cajero a un aviso de
// inactividad y aplica la acción elegida.
func (cc *CajaController) ResponderAlerta(c *gin.Context) {
	var req struct {
		Accion services.AccionNotificacion `json:"accion" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch req.Accion {
	case services.AccionMantenerAbierta, services.AccionCerrarAhora, services.AccionConfirmarActividad:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("acción desconocida"))
		return
	}

	var sesion models.CajaSesion
	if err := cc.DB.Where("restaurante_id = ? AND cerrada_at IS NULL", restauranteDe(c)).
		First(&sesion).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrSinCajaAbierta)
		return
	}

	monitor, ok := cc.Monitores.Obtener(sesion.ID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("la sesión no tiene monitor de inactividad"))
		return
	}

	inactividad := monitor.Evaluar(time.Now()).Inactividad
	despachador := services.NewDespachador(cc.DB)
	if err := despachador.RegistrarRespuesta(req.Accion, sesion.RestauranteID, cajeroDe(c), sesion.Codigo, inactividad); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	switch req.Accion {
	case services.AccionMantenerAbierta, services.AccionConfirmarActividad:
		monitor.RegistrarActividad()
		utils.RespondJSON(c, http.StatusOK, "Respuesta registrada", monitor.Evaluar(time.Now()))
	case services.AccionCerrarAhora:
		ahora := time.Now()
		cajero := cajeroDe(c)
		sesion.CerradaAt = &ahora
		sesion.CajeroCierre = &cajero
		if err := cc.DB.Save(&sesion).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		cc.Monitores.Detener(sesion.ID)
		realtime.BroadcastCajaUpdate(sesion)
		utils.RespondJSON(c, http.StatusOK, "Caja cerrada por respuesta del cajero", sesion)
	}
}
