package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/utils"
)

type UsuarioController struct {
	DB *gorm.DB
}

func NewUsuarioController(db *gorm.DB) *UsuarioController {
	return &UsuarioController{DB: db}
}

// Register -> alta de usuario.
func (uc *UsuarioController) Register(c *gin.Context) {
	type request struct {
		RestauranteID uint   `json:"restaurante_id" binding:"required"`
		Nombre        string `json:"nombre" binding:"required"`
		Email         string `json:"email" binding:"required,email"`
		Password      string `json:"password" binding:"required"`
		Rol           string `json:"rol" binding:"required"` // admin, cajero, mesero
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	usuario := models.Usuario{
		RestauranteID: req.RestauranteID,
		Nombre:        req.Nombre,
		Email:         req.Email,
		Password:      string(hashed),
		Rol:           req.Rol,
	}
	if err := uc.DB.Create(&usuario).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Usuario registrado: %s (rol=%s)", usuario.Email, usuario.Rol)
	utils.RespondJSON(c, http.StatusCreated, "Usuario registrado", gin.H{
		"user_id": usuario.ID,
	})
}

// Login -> devuelve un JWT.
func (uc *UsuarioController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var usuario models.Usuario
	if err := uc.DB.Where("email = ?", input.Email).First(&usuario).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("credenciales inválidas"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("credenciales inválidas"))
		return
	}

	token, err := utils.GenerateToken(usuario.ID, usuario.RestauranteID, usuario.Rol)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login de %s", usuario.Email)
	utils.RespondJSON(c, http.StatusOK, "Login exitoso", gin.H{
		"token": token,
		"user": gin.H{
			"id":             usuario.ID,
			"nombre":         usuario.Nombre,
			"rol":            usuario.Rol,
			"restaurante_id": usuario.RestauranteID,
		},
	})
}

// GetProfile -> datos del usuario autenticado.
func (uc *UsuarioController) GetProfile(c *gin.Context) {
	var usuario models.Usuario
	if err := uc.DB.First(&usuario, cajeroDe(c)).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Perfil de usuario", usuario)
}

// GetAllUsuarios -> listado de usuarios del restaurante (solo admin).
func (uc *UsuarioController) GetAllUsuarios(c *gin.Context) {
	rol, _ := c.Get("rol")
	if rol != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var usuarios []models.Usuario
	if err := uc.DB.Where("restaurante_id = ?", restauranteDe(c)).Find(&usuarios).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Listado de usuarios", usuarios)
}
