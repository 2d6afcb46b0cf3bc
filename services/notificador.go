package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/utils"
)

// TipoNotificacion identifica el escalón de aviso por inactividad.
type TipoNotificacion string

const (
	NotificacionPrimera TipoNotificacion = "primera"
	NotificacionSegunda TipoNotificacion = "segunda"
	NotificacionFinal   TipoNotificacion = "final"
)

// AccionNotificacion es la respuesta que el cajero puede dar a un aviso.
type AccionNotificacion string

const (
	AccionMantenerAbierta    AccionNotificacion = "mantener_abierta"
	AccionCerrarAhora        AccionNotificacion = "cerrar_ahora"
	AccionConfirmarActividad AccionNotificacion = "confirmar_actividad"
)

// Notificacion es el payload que ve el cajero en pantalla.
type Notificacion struct {
	Tipo      TipoNotificacion     `json:"tipo"`
	Titulo    string               `json:"titulo"`
	Mensaje   string               `json:"mensaje"`
	Severidad models.Severidad     `json:"severidad"`
	Acciones  []AccionNotificacion `json:"acciones"`
}

// ConstruirNotificacion arma el aviso de los escalones primera y segunda.
// El aviso final de cierre lo arma el monitor por separado porque lleva la
// hora estimada de cierre. Un tipo desconocido es un defecto de lógica y
// provoca panic.
func ConstruirNotificacion(tipo TipoNotificacion, inactividad time.Duration) Notificacion {
	duracion := utils.FormatearDuracionInactividad(int(inactividad.Minutes()))

	switch tipo {
	case NotificacionPrimera:
		return Notificacion{
			Tipo:      NotificacionPrimera,
			Titulo:    "Caja sin actividad",
			Mensaje:   fmt.Sprintf("La caja lleva %s sin actividad fuera del horario de atención. ¿Desea mantenerla abierta?", duracion),
			Severidad: models.SeveridadMedia,
			Acciones:  []AccionNotificacion{AccionMantenerAbierta, AccionCerrarAhora, AccionConfirmarActividad},
		}
	case NotificacionSegunda:
		return Notificacion{
			Tipo:      NotificacionSegunda,
			Titulo:    "Caja sin actividad prolongada",
			Mensaje:   fmt.Sprintf("La caja lleva %s sin actividad. Si no se confirma actividad se cerrará automáticamente.", duracion),
			Severidad: models.SeveridadAlta,
			Acciones:  []AccionNotificacion{AccionMantenerAbierta, AccionCerrarAhora, AccionConfirmarActividad},
		}
	}
	panic(fmt.Sprintf("tipo de notificación desconocido: %q", tipo))
}

// Despachador persiste los avisos de inactividad como alertas de
// seguridad. Los fallos de escritura se devuelven al llamador: quien
// despacha decide si los muestra, acá solo se registran en el log.
type Despachador struct {
	DB *gorm.DB
}

func NewDespachador(db *gorm.DB) *Despachador {
	return &Despachador{DB: db}
}

type contextoAlerta struct {
	SesionCodigo       string `json:"sesion_codigo,omitempty"`
	InactividadMinutos int    `json:"inactividad_minutos"`
	FueraDeHorario     bool   `json:"fuera_de_horario"`
	Accion             string `json:"accion,omitempty"`
}

// Despachar inserta la alerta de auditoría de un aviso enviado.
func (d *Despachador) Despachar(notif Notificacion, restauranteID, cajeroID uint, sesionCodigo string, inactividad time.Duration, fueraDeHorario bool) error {
	contexto, _ := json.Marshal(contextoAlerta{
		SesionCodigo:       sesionCodigo,
		InactividadMinutos: int(inactividad.Minutes()),
		FueraDeHorario:     fueraDeHorario,
	})

	alerta := models.AlertaSeguridad{
		RestauranteID: restauranteID,
		CajeroID:      cajeroID,
		TipoAlerta:    fmt.Sprintf("inactividad_%s", notif.Tipo),
		Descripcion:   notif.Mensaje,
		DatosContexto: string(contexto),
		Severidad:     notif.Severidad,
	}

	if err := d.DB.Create(&alerta).Error; err != nil {
		utils.ErrorLogger.Printf("No se pudo registrar la alerta de inactividad (restaurante=%d): %v", restauranteID, err)
		return err
	}

	utils.InfoLogger.Printf("Alerta de inactividad %s registrada (restaurante=%d, cajero=%d)", notif.Tipo, restauranteID, cajeroID)
	return nil
}

// RegistrarRespuesta deja constancia de la acción elegida por el cajero
// frente a un aviso.
func (d *Despachador) RegistrarRespuesta(accion AccionNotificacion, restauranteID, cajeroID uint, sesionCodigo string, inactividad time.Duration) error {
	contexto, _ := json.Marshal(contextoAlerta{
		SesionCodigo:       sesionCodigo,
		InactividadMinutos: int(inactividad.Minutes()),
		Accion:             string(accion),
	})

	alerta := models.AlertaSeguridad{
		RestauranteID: restauranteID,
		CajeroID:      cajeroID,
		TipoAlerta:    "respuesta_inactividad",
		Descripcion:   fmt.Sprintf("El cajero respondió al aviso de inactividad: %s", accion),
		DatosContexto: string(contexto),
		Severidad:     models.SeveridadInfo,
	}

	if err := d.DB.Create(&alerta).Error; err != nil {
		utils.ErrorLogger.Printf("No se pudo registrar la respuesta del cajero (restaurante=%d): %v", restauranteID, err)
		return err
	}
	return nil
}
