package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/router"
	"github.com/spoonapp/spoon/services"
	"github.com/spoonapp/spoon/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestFlujoCompletoPOS cubre el flujo principal:
// 1. Login del cajero -> token
// 2. Configuración inicial de mesas
// 3. Apertura de caja
// 4. Creación de orden sobre una mesa libre
// 5. Cobro de la mesa -> vuelve a libre
// 6. Cierre de caja
func TestFlujoCompletoPOS(t *testing.T) {
	db := setupTestDB(t)
	monitores := services.NewRegistroMonitores()
	r := router.SetupRouter(db, monitores)

	token := loginTest(t, r)

	configurarMesasTest(t, r, token)
	abrirCajaTest(t, r, token)
	mesaID := primeraMesaLibre(t, db)
	crearOrdenTest(t, r, token, mesaID)
	cobrarMesaTest(t, r, token, mesaID, db)
	cerrarCajaTest(t, r, token, db)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.Restaurante{},
		&models.Usuario{},
		&models.Mesa{},
		&models.OrdenActiva{},
		&models.OrdenItem{},
		&models.CajaSesion{},
		&models.AlertaSeguridad{},
		&models.ConfiguracionHorario{},
		&models.HorarioDia{},
	))

	restaurante := models.Restaurante{Nombre: "La Cuchara"}
	assert.NoError(t, db.Create(&restaurante).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	cajero := models.Usuario{
		RestauranteID: restaurante.ID,
		Nombre:        "Cajero Test",
		Email:         "cajero@lacuchara.cl",
		Password:      string(hashed),
		Rol:           "cajero",
	}
	assert.NoError(t, db.Create(&cajero).Error)

	return db
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w := doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    "cajero@lacuchara.cl",
		"password": "secreto123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	return token
}

func configurarMesasTest(t *testing.T, r *gin.Engine, token string) {
	w := doJSON(t, r, "POST", "/api/mesas/configurar", token, map[string]int{
		"cantidad":  3,
		"capacidad": 4,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func abrirCajaTest(t *testing.T, r *gin.Engine, token string) {
	w := doJSON(t, r, "POST", "/api/caja/abrir", token, map[string]float64{
		"monto_apertura": 30000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func primeraMesaLibre(t *testing.T, db *gorm.DB) uint {
	var mesa models.Mesa
	assert.NoError(t, db.Where("estado = ?", models.EstadoLibre).First(&mesa).Error)
	return mesa.ID
}

func crearOrdenTest(t *testing.T, r *gin.Engine, token string, mesaID uint) {
	url := "/api/mesas/" + strconv.Itoa(int(mesaID)) + "/ordenes"
	w := doJSON(t, r, "POST", url, token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"tipo": "combinacion", "nombre": "Menú del día", "cantidad": 2, "precio_unitario": 6500},
			{"tipo": "especial", "nombre": "Pastel de choclo", "cantidad": 1, "precio_unitario": 8500},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func cobrarMesaTest(t *testing.T, r *gin.Engine, token string, mesaID uint, db *gorm.DB) {
	url := "/api/mesas/" + strconv.Itoa(int(mesaID)) + "/cobrar"
	w := doJSON(t, r, "POST", url, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "$21.500", data["total"])

	var mesa models.Mesa
	assert.NoError(t, db.First(&mesa, mesaID).Error)
	assert.Equal(t, models.EstadoLibre, mesa.Estado)
	assert.Nil(t, mesa.OrdenActivaID)
}

func cerrarCajaTest(t *testing.T, r *gin.Engine, token string, db *gorm.DB) {
	w := doJSON(t, r, "POST", "/api/caja/cerrar", token, map[string]float64{
		"monto_cierre": 51500,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var sesion models.CajaSesion
	assert.NoError(t, db.First(&sesion).Error)
	assert.False(t, sesion.Abierta())
}
