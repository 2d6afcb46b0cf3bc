package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spoonapp/spoon/controllers"
	"github.com/spoonapp/spoon/middlewares"
	"github.com/spoonapp/spoon/services"
)

func SetupRouter(db *gorm.DB, monitores *services.RegistroMonitores) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	usuarioCtrl := controllers.NewUsuarioController(db)
	mesaCtrl := controllers.NewMesaController(db)
	ordenCtrl := controllers.NewOrdenController(db)
	cajaCtrl := controllers.NewCajaController(db, monitores)
	alertaCtrl := controllers.NewAlertaController(db)
	horarioCtrl := controllers.NewHorarioController(db)

	// ----------------------------------------------------------------
	//                      RUTAS PÚBLICAS
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", usuarioCtrl.Register)
		public.POST("/login", usuarioCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      RUTAS AUTENTICADAS
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/ws", controllers.RealtimeHandler)

	auth.GET("/profile", usuarioCtrl.GetProfile)
	auth.GET("/usuarios", usuarioCtrl.GetAllUsuarios)

	// MESAS
	auth.GET("/mesas", mesaCtrl.GetAllMesas)
	auth.GET("/mesas/por-estado", mesaCtrl.FindMesasPorEstado)
	auth.GET("/mesas/estadisticas", mesaCtrl.GetEstadisticas)
	auth.POST("/mesas", mesaCtrl.CrearMesa)
	auth.POST("/mesas/configurar", mesaCtrl.ConfigurarMesas)
	auth.GET("/mesas/:mesa_id", mesaCtrl.GetMesaByID)
	auth.PATCH("/mesas/:mesa_id/estado", mesaCtrl.ActualizarEstado)
	auth.POST("/mesas/:mesa_id/reservar", mesaCtrl.ReservarMesa)
	auth.POST("/mesas/:mesa_id/cobrar", mesaCtrl.CobrarMesa)
	auth.DELETE("/mesas/:mesa_id", mesaCtrl.DeleteMesa)

	// ÓRDENES
	auth.GET("/ordenes", ordenCtrl.GetAllOrdenes)
	auth.GET("/ordenes/:orden_id", ordenCtrl.GetOrdenByID)
	auth.POST("/mesas/:mesa_id/ordenes", ordenCtrl.CrearOrden)

	// CAJA
	caja := auth.Group("/caja")
	caja.Use(middlewares.RequireRol("admin", "cajero"))
	{
		caja.POST("/abrir", cajaCtrl.AbrirCaja)
		caja.POST("/cerrar", cajaCtrl.CerrarCaja)
		caja.GET("/actual", cajaCtrl.GetSesionActual)
		caja.POST("/actividad", cajaCtrl.RegistrarActividad)
		caja.POST("/responder-alerta", cajaCtrl.ResponderAlerta)
	}

	// ALERTAS
	auth.GET("/alertas", alertaCtrl.GetAllAlertas)
	auth.PATCH("/alertas/:alerta_id/revisar", alertaCtrl.MarcarRevisada)

	// HORARIO
	auth.GET("/horario", horarioCtrl.GetConfiguracion)
	auth.PUT("/horario", horarioCtrl.ActualizarConfiguracion)

	return r
}
