package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/controllers"
	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/utils"
)

func setupTestDBForMesas(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("no se pudo abrir la base de prueba: %v", err)
	}
	if err := db.AutoMigrate(&models.Mesa{}, &models.OrdenActiva{}, &models.OrdenItem{}); err != nil {
		t.Fatal(err)
	}
	return db
}

// contextoAutenticado simula el middleware de auth para las pruebas.
func contextoAutenticado(rol string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("restaurante_id", uint(1))
		c.Set("rol", rol)
		c.Next()
	}
}

func setupMesaRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(contextoAutenticado("admin"))
	mesaCtrl := controllers.NewMesaController(db)
	router.GET("/mesas", mesaCtrl.GetAllMesas)
	router.GET("/mesas/estadisticas", mesaCtrl.GetEstadisticas)
	router.POST("/mesas", mesaCtrl.CrearMesa)
	router.POST("/mesas/configurar", mesaCtrl.ConfigurarMesas)
	router.PATCH("/mesas/:mesa_id/estado", mesaCtrl.ActualizarEstado)
	router.POST("/mesas/:mesa_id/reservar", mesaCtrl.ReservarMesa)
	return router
}

func TestGetAllMesas(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)

	db.Create(&models.Mesa{RestauranteID: 1, Numero: 1, Estado: models.EstadoLibre, Capacidad: 4})
	db.Create(&models.Mesa{RestauranteID: 1, Numero: 2, Estado: models.EstadoOcupada, Capacidad: 2})

	router := setupMesaRouter(db)
	req, err := http.NewRequest("GET", "/mesas", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Listado de mesas", response["message"])

	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestCrearMesaInvalida(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)
	router := setupMesaRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"numero":    1,
		"nombre":    "Mesa Test",
		"zona":      "Principal",
		"capacidad": 25,
	})
	req, _ := http.NewRequest("POST", "/mesas", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["valido"])
	assert.Contains(t, data["errores"], "La capacidad debe estar entre 1 y 20 personas")
}

func TestActualizarEstadoTransicionValida(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)

	mesa := models.Mesa{RestauranteID: 1, Numero: 3, Estado: models.EstadoLibre, Capacidad: 4}
	db.Create(&mesa)

	router := setupMesaRouter(db)

	payload, _ := json.Marshal(map[string]string{"estado": "ocupada"})
	url := "/mesas/" + strconv.Itoa(int(mesa.ID)) + "/estado"
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "ocupada", data["estado"])
}

func TestActualizarEstadoTransicionInvalida(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)

	mesa := models.Mesa{RestauranteID: 1, Numero: 4, Estado: models.EstadoOcupada, Capacidad: 4}
	db.Create(&mesa)

	router := setupMesaRouter(db)

	// ocupada solo puede volver a libre.
	payload, _ := json.Marshal(map[string]string{"estado": "reservada"})
	url := "/mesas/" + strconv.Itoa(int(mesa.ID)) + "/estado"
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var recargada models.Mesa
	db.First(&recargada, mesa.ID)
	assert.Equal(t, models.EstadoOcupada, recargada.Estado)
}

func TestActualizarEstadoLibreConOrdenPendiente(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)

	mesa := models.Mesa{RestauranteID: 1, Numero: 5, Estado: models.EstadoLibre, Capacidad: 4}
	db.Create(&mesa)
	orden := models.OrdenActiva{RestauranteID: 1, MesaID: mesa.ID, Total: 9000}
	db.Create(&orden)
	db.Model(&mesa).Updates(map[string]interface{}{
		"estado":          models.EstadoOcupada,
		"orden_activa_id": orden.ID,
	})

	router := setupMesaRouter(db)

	// Liberar la mesa sin cobrar dejaría la orden inalcanzable.
	payload, _ := json.Marshal(map[string]string{"estado": "libre"})
	url := "/mesas/" + strconv.Itoa(int(mesa.ID)) + "/estado"
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var recargada models.Mesa
	db.First(&recargada, mesa.ID)
	assert.Equal(t, models.EstadoOcupada, recargada.Estado)
	assert.NotNil(t, recargada.OrdenActivaID)

	var ordenRecargada models.OrdenActiva
	db.First(&ordenRecargada, orden.ID)
	assert.False(t, ordenRecargada.Cobrada)

	// Sin orden asociada la mesa ocupada sí puede volver a libre.
	db.Model(&recargada).Updates(map[string]interface{}{"orden_activa_id": nil})
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConfigurarMesas(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)
	router := setupMesaRouter(db)

	payload, _ := json.Marshal(map[string]int{"cantidad": 5, "capacidad": 4})
	req, _ := http.NewRequest("POST", "/mesas/configurar", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var total int64
	db.Model(&models.Mesa{}).Count(&total)
	assert.Equal(t, int64(5), total)

	// Una segunda configuración sobre mesas existentes es conflicto.
	req, _ = http.NewRequest("POST", "/mesas/configurar", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReservarMesa(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)

	mesa := models.Mesa{RestauranteID: 1, Numero: 6, Estado: models.EstadoLibre, Capacidad: 4}
	db.Create(&mesa)

	router := setupMesaRouter(db)

	payload, _ := json.Marshal(map[string]string{
		"nombre_cliente": "Ana Pérez",
		"telefono":       "+56911112222",
		"hora":           "21:00",
	})
	url := "/mesas/" + strconv.Itoa(int(mesa.ID)) + "/reservar"
	req, _ := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var recargada models.Mesa
	db.First(&recargada, mesa.ID)
	assert.Equal(t, models.EstadoReservada, recargada.Estado)
}

func TestGetEstadisticas(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForMesas(t)

	db.Create(&models.Mesa{RestauranteID: 1, Numero: 1, Estado: models.EstadoLibre, Capacidad: 4})
	db.Create(&models.Mesa{RestauranteID: 1, Numero: 2, Estado: models.EstadoLibre, Capacidad: 4})
	db.Create(&models.Mesa{RestauranteID: 1, Numero: 3, Estado: models.EstadoOcupada, Capacidad: 4})
	db.Create(&models.Mesa{RestauranteID: 1, Numero: 4, Estado: models.EstadoReservada, Capacidad: 4})

	router := setupMesaRouter(db)
	req, _ := http.NewRequest("GET", "/mesas/estadisticas", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["total"])
	assert.Equal(t, float64(3), data["disponibles"])
}
