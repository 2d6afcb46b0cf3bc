package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/realtime"
	"github.com/spoonapp/spoon/utils"
	"github.com/spoonapp/spoon/validators"
)

type MesaController struct {
	DB *gorm.DB
}

func NewMesaController(db *gorm.DB) *MesaController {
	return &MesaController{DB: db}
}

func restauranteDe(c *gin.Context) uint {
	if v, ok := c.Get("restaurante_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CrearMesa -> da de alta una mesa validando la configuración.
func (mc *MesaController) CrearMesa(c *gin.Context) {
	var req struct {
		Numero    int    `json:"numero" binding:"required"`
		Nombre    string `json:"nombre"`
		Zona      string `json:"zona"`
		Capacidad int    `json:"capacidad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Capacidad == 0 {
		req.Capacidad = 4
	}

	if res := validators.ValidarConfiguracionMesa(req.Numero, req.Nombre, req.Zona, req.Capacidad); !res.Valido {
		utils.RespondJSON(c, http.StatusUnprocessableEntity, "Configuración de mesa inválida", res)
		return
	}

	mesa := models.Mesa{
		RestauranteID: restauranteDe(c),
		Numero:        req.Numero,
		Nombre:        req.Nombre,
		Zona:          req.Zona,
		Capacidad:     req.Capacidad,
		Estado:        models.EstadoLibre,
	}
	if err := mc.DB.Create(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMesaCreate(mesa)
	utils.InfoLogger.Printf("Mesa creada: %s", utils.FormatearNombreMesa(mesa.Numero, mesa.Nombre))
	utils.RespondJSON(c, http.StatusCreated, "Mesa creada", mesa)
}

// ConfigurarMesas -> crea de una vez el número inicial de mesas del
// restaurante. Falla si ya hay mesas configuradas.
func (mc *MesaController) ConfigurarMesas(c *gin.Context) {
	var req struct {
		Cantidad  int `json:"cantidad" binding:"required"`
		Capacidad int `json:"capacidad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Cantidad < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("la cantidad de mesas debe ser al menos 1"))
		return
	}
	if req.Capacidad == 0 {
		req.Capacidad = 4
	}

	restauranteID := restauranteDe(c)

	var existentes int64
	if err := mc.DB.Model(&models.Mesa{}).Where("restaurante_id = ?", restauranteID).Count(&existentes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if existentes > 0 {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("el restaurante ya tiene %d mesas configuradas", existentes))
		return
	}

	mesas := make([]models.Mesa, 0, req.Cantidad)
	for i := 1; i <= req.Cantidad; i++ {
		mesas = append(mesas, models.Mesa{
			RestauranteID: restauranteID,
			Numero:        i,
			Capacidad:     req.Capacidad,
			Estado:        models.EstadoLibre,
		})
	}
	if err := mc.DB.Create(&mesas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Configuradas %d mesas para restaurante %d", req.Cantidad, restauranteID)
	utils.RespondJSON(c, http.StatusCreated, "Mesas configuradas", mesas)
}

// GetAllMesas -> lista las mesas del restaurante con su orden activa.
func (mc *MesaController) GetAllMesas(c *gin.Context) {
	var mesas []models.Mesa
	if err := mc.DB.Preload("OrdenActiva.Items").
		Where("restaurante_id = ?", restauranteDe(c)).
		Order("numero ASC").
		Find(&mesas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Listado de mesas", mesas)
}

// GetMesaByID -> detalle de una mesa con acciones disponibles.
func (mc *MesaController) GetMesaByID(c *gin.Context) {
	mesaID := c.Param("mesa_id")
	var mesa models.Mesa
	if err := mc.DB.Preload("OrdenActiva.Items").First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	ahora := time.Now()
	utils.RespondJSON(c, http.StatusOK, "Detalle de mesa", gin.H{
		"mesa":               mesa,
		"nombre_visible":     utils.FormatearNombreMesa(mesa.Numero, mesa.Nombre),
		"capacidad":          utils.FormatearCapacidad(mesa.Capacidad),
		"info_estado":        models.ObtenerInfoEstado(mesa.Estado),
		"acciones":           models.AccionesDisponibles(mesa.Estado),
		"tiempo_ocupacion":   utils.FormatearTiempoOcupacion(mesa.TiempoOcupacionMinutos(ahora)),
		"requiere_atencion":  mesa.RequiereAtencion(ahora),
	})
}

// FindMesasPorEstado -> filtra mesas por estado (por defecto libres).
func (mc *MesaController) FindMesasPorEstado(c *gin.Context) {
	estado := models.EstadoMesa(c.Query("estado"))
	if estado == "" {
		estado = models.EstadoLibre
	}
	var mesas []models.Mesa
	if err := mc.DB.Where("restaurante_id = ? AND estado = ?", restauranteDe(c), estado).
		Find(&mesas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Mesas en estado: "+string(estado), mesas)
}

// ActualizarEstado -> cambia el estado aplicando la tabla de transiciones.
func (mc *MesaController) ActualizarEstado(c *gin.Context) {
	mesaID := c.Param("mesa_id")
	var body struct {
		Estado models.EstadoMesa `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mesa models.Mesa
	if err := mc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !models.EsTransicionValida(mesa.Estado, body.Estado) {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			fmt.Errorf("%w: %s -> %s", ErrTransicionEstado, mesa.Estado, body.Estado))
		return
	}

	// Una mesa ocupada con orden sin cobrar solo se libera vía cobro.
	if mesa.Estado == models.EstadoOcupada && body.Estado == models.EstadoLibre && mesa.OrdenActivaID != nil {
		utils.RespondError(c, http.StatusConflict, ErrOrdenPendiente)
		return
	}

	mesa.Estado = body.Estado
	if err := mc.DB.Save(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMesaUpdate(mesa)
	realtime.BroadcastDashboardUpdate(mc.estadisticas(restauranteDe(c)))
	utils.InfoLogger.Printf("Mesa %d pasó a estado %s", mesa.ID, mesa.Estado)
	utils.RespondJSON(c, http.StatusOK, "Estado de mesa actualizado", mesa)
}

// ReservarMesa -> registra una reserva validada y pasa la mesa a reservada.
func (mc *MesaController) ReservarMesa(c *gin.Context) {
	mesaID := c.Param("mesa_id")
	var req struct {
		NombreCliente string `json:"nombre_cliente"`
		Telefono      string `json:"telefono"`
		Hora          string `json:"hora"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if res := validators.ValidarReserva(req.NombreCliente, req.Telefono, req.Hora); !res.Valido {
		utils.RespondJSON(c, http.StatusUnprocessableEntity, "Datos de reserva inválidos", res)
		return
	}

	var mesa models.Mesa
	if err := mc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !models.EsTransicionValida(mesa.Estado, models.EstadoReservada) {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			fmt.Errorf("%w: %s -> %s", ErrTransicionEstado, mesa.Estado, models.EstadoReservada))
		return
	}

	mesa.Estado = models.EstadoReservada
	if err := mc.DB.Save(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMesaUpdate(mesa)
	utils.InfoLogger.Printf("Mesa %d reservada para %s", mesa.ID, req.NombreCliente)
	utils.RespondJSON(c, http.StatusOK, "Mesa reservada", mesa)
}

// CobrarMesa -> cierra la orden activa y devuelve la mesa a libre.
func (mc *MesaController) CobrarMesa(c *gin.Context) {
	mesaID := c.Param("mesa_id")

	var mesa models.Mesa
	if err := mc.DB.Preload("OrdenActiva.Items").First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if mesa.Estado != models.EstadoOcupada || mesa.OrdenActivaID == nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("la mesa no tiene una orden activa para cobrar"))
		return
	}

	ahora := time.Now()
	orden := mesa.OrdenActiva

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		orden.Cobrada = true
		orden.CobradaAt = &ahora
		if err := tx.Save(orden).Error; err != nil {
			return err
		}
		mesa.Estado = models.EstadoLibre
		mesa.OrdenActivaID = nil
		return tx.Save(&mesa).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	mesa.OrdenActiva = nil

	realtime.BroadcastOrdenUpdate(*orden)
	realtime.BroadcastMesaUpdate(mesa)
	utils.InfoLogger.Printf("Mesa %d cobrada, total %s", mesa.ID, utils.FormatearMoneda(int64(orden.Total)))
	utils.RespondJSON(c, http.StatusOK, "Mesa cobrada", gin.H{
		"mesa":  mesa,
		"orden": orden,
		"total": utils.FormatearMoneda(int64(orden.Total)),
	})
}

// GetEstadisticas -> ocupación por estado más mesas que requieren atención.
func (mc *MesaController) GetEstadisticas(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Estadísticas de mesas", mc.estadisticas(restauranteDe(c)))
}

type estadisticaEstado struct {
	Estado   models.EstadoMesa `json:"estado"`
	Info     models.InfoEstado `json:"info"`
	Cantidad int64             `json:"cantidad"`
}

func (mc *MesaController) estadisticas(restauranteID uint) map[string]interface{} {
	estados := []models.EstadoMesa{
		models.EstadoLibre, models.EstadoOcupada, models.EstadoEnCocina,
		models.EstadoServida, models.EstadoPorCobrar, models.EstadoReservada,
		models.EstadoInactiva, models.EstadoMantenimiento,
	}

	var total, disponibles int64
	porEstado := make([]estadisticaEstado, 0, len(estados))
	for _, estado := range estados {
		var cantidad int64
		mc.DB.Model(&models.Mesa{}).
			Where("restaurante_id = ? AND estado = ?", restauranteID, estado).
			Count(&cantidad)
		porEstado = append(porEstado, estadisticaEstado{
			Estado:   estado,
			Info:     models.ObtenerInfoEstado(estado),
			Cantidad: cantidad,
		})
		total += cantidad
		if estado == models.EstadoLibre || estado == models.EstadoReservada {
			disponibles += cantidad
		}
	}

	ahora := time.Now()
	var ocupadas []models.Mesa
	mc.DB.Preload("OrdenActiva").
		Where("restaurante_id = ? AND estado = ?", restauranteID, models.EstadoOcupada).
		Find(&ocupadas)

	atencion := make([]uint, 0)
	for i := range ocupadas {
		if ocupadas[i].RequiereAtencion(ahora) {
			atencion = append(atencion, ocupadas[i].ID)
		}
	}

	return map[string]interface{}{
		"total":              total,
		"disponibles":        disponibles,
		"por_estado":         porEstado,
		"requieren_atencion": atencion,
	}
}

// DeleteMesa -> baja de mesa (solo admin).
func (mc *MesaController) DeleteMesa(c *gin.Context) {
	rol, _ := c.Get("rol")
	if rol != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	mesaID := c.Param("mesa_id")
	var mesa models.Mesa
	if err := mc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := mc.DB.Delete(&mesa).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastMesaDelete(mesa.ID)
	utils.InfoLogger.Printf("Mesa %d eliminada", mesa.ID)
	utils.RespondJSON(c, http.StatusOK, "Mesa eliminada", gin.H{"id": mesa.ID})
}
