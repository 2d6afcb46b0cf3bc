package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/realtime"
	"github.com/spoonapp/spoon/utils"
	"github.com/spoonapp/spoon/validators"
)

type OrdenController struct {
	DB *gorm.DB
}

func NewOrdenController(db *gorm.DB) *OrdenController {
	return &OrdenController{DB: db}
}

// CrearOrden -> abre una orden sobre una mesa que lo permita y la pasa a
// ocupada. Valida el pedido completo antes de tocar la base.
func (oc *OrdenController) CrearOrden(c *gin.Context) {
	mesaID := c.Param("mesa_id")

	type itemReq struct {
		Tipo           models.TipoProducto `json:"tipo"`
		Nombre         string              `json:"nombre"`
		Cantidad       int                 `json:"cantidad"`
		PrecioUnitario float64             `json:"precio_unitario"`
	}
	var body struct {
		Items []itemReq `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var mesa models.Mesa
	if err := oc.DB.First(&mesa, mesaID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	items := make([]validators.ItemOrden, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, validators.ItemOrden{
			Tipo:           it.Tipo,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}
	if res := validators.ValidarCrearOrden(mesa.Numero, items); !res.Valido {
		utils.RespondJSON(c, http.StatusUnprocessableEntity, "Orden inválida", res)
		return
	}

	if !mesa.PuedeCrearOrden() {
		utils.RespondError(c, http.StatusUnprocessableEntity,
			errors.New("la mesa no admite creación de órdenes en su estado actual"))
		return
	}

	orden := models.OrdenActiva{
		RestauranteID: mesa.RestauranteID,
		MesaID:        mesa.ID,
	}
	for _, it := range body.Items {
		orden.Items = append(orden.Items, models.OrdenItem{
			Tipo:           it.Tipo,
			Nombre:         it.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}
	orden.Total = orden.CalcularTotal()

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&orden).Error; err != nil {
			return err
		}
		mesa.Estado = models.EstadoOcupada
		mesa.OrdenActivaID = &orden.ID
		return tx.Save(&mesa).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastOrdenUpdate(orden)
	realtime.BroadcastMesaUpdate(mesa)
	utils.InfoLogger.Printf("Orden %d creada en mesa %d, total %s",
		orden.ID, mesa.ID, utils.FormatearMoneda(int64(orden.Total)))
	utils.RespondJSON(c, http.StatusCreated, "Orden creada", gin.H{
		"orden": orden,
		"mesa":  mesa,
	})
}

// GetAllOrdenes -> lista las órdenes con sus items.
func (oc *OrdenController) GetAllOrdenes(c *gin.Context) {
	var ordenes []models.OrdenActiva
	if err := oc.DB.Preload("Items").
		Where("restaurante_id = ?", restauranteDe(c)).
		Find(&ordenes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Listado de órdenes", ordenes)
}

// GetOrdenByID -> detalle de una orden.
func (oc *OrdenController) GetOrdenByID(c *gin.Context) {
	ordenID := c.Param("orden_id")
	var orden models.OrdenActiva
	if err := oc.DB.Preload("Items").First(&orden, ordenID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Detalle de orden", orden)
}
