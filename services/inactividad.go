package services

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/spoonapp/spoon/models"
	"github.com/spoonapp/spoon/realtime"
	"github.com/spoonapp/spoon/utils"
)

// NivelAlerta clasifica la inactividad de una sesión de caja.
type NivelAlerta string

const (
	NivelNormal      NivelAlerta = "normal"
	NivelAdvertencia NivelAlerta = "advertencia"
	NivelCritico     NivelAlerta = "critico"
	NivelExcesivo    NivelAlerta = "excesivo"
)

// Umbrales de inactividad. Las comparaciones de nivel usan >=, así que el
// valor exacto del umbral ya pertenece al nivel superior.
const (
	UmbralAdvertencia      = 2 * time.Hour
	UmbralCritico          = 6 * time.Hour
	UmbralExcesivo         = 8 * time.Hour
	UmbralCierreAutomatico = 8 * time.Hour

	// Separación mínima entre dos avisos consecutivos.
	IntervaloEntreAvisos = 2 * time.Hour

	// Inactividad a la que dispara cada escalón.
	DisparoPrimera = 2 * time.Hour
	DisparoSegunda = 4 * time.Hour
	DisparoFinal   = 6 * time.Hour
)

// UmbralCierreDe devuelve el umbral de cierre automático configurado por el
// restaurante; sin configuración (o con un valor no positivo) rige el valor
// por defecto de 8 horas.
func UmbralCierreDe(cfg *models.ConfiguracionHorario) time.Duration {
	if cfg != nil && cfg.UmbralInactividadHoras > 0 {
		return time.Duration(cfg.UmbralInactividadHoras) * time.Hour
	}
	return UmbralCierreAutomatico
}

// NivelPorInactividad mapea una duración de inactividad a su nivel.
func NivelPorInactividad(d time.Duration) NivelAlerta {
	switch {
	case d >= UmbralExcesivo:
		return NivelExcesivo
	case d >= UmbralCritico:
		return NivelCritico
	case d >= UmbralAdvertencia:
		return NivelAdvertencia
	default:
		return NivelNormal
	}
}

// NotificacionEnviada recuerda el último aviso emitido para aplicar el
// intervalo mínimo entre escalones.
type NotificacionEnviada struct {
	Tipo      TipoNotificacion
	EnviadaEn time.Time
}

// EvaluarEscalamiento decide, en función de la inactividad acumulada y el
// último aviso enviado, si corresponde emitir el siguiente escalón. Es una
// función pura: no consulta relojes ni estado compartido.
func EvaluarEscalamiento(inactividad time.Duration, ultima *NotificacionEnviada, ahora time.Time) *TipoNotificacion {
	siguiente := func(t TipoNotificacion) *TipoNotificacion { return &t }

	if ultima == nil {
		if inactividad >= DisparoPrimera {
			return siguiente(NotificacionPrimera)
		}
		return nil
	}

	if ahora.Sub(ultima.EnviadaEn) < IntervaloEntreAvisos {
		return nil
	}

	switch ultima.Tipo {
	case NotificacionPrimera:
		if inactividad >= DisparoSegunda {
			return siguiente(NotificacionSegunda)
		}
	case NotificacionSegunda:
		if inactividad >= DisparoFinal {
			return siguiente(NotificacionFinal)
		}
	}
	return nil
}

// EstadoInactividad es la foto que devuelve Evaluar.
type EstadoInactividad struct {
	UltimaActividad time.Time     `json:"ultima_actividad"`
	Inactividad     time.Duration `json:"inactividad"`
	Nivel           NivelAlerta   `json:"nivel"`
}

// MonitorInactividad sigue el reloj de inactividad de UNA sesión de caja.
// Cada sesión abierta tiene su propio monitor (ver RegistroMonitores);
// no hay estado compartido entre terminales.
type MonitorInactividad struct {
	db          *gorm.DB
	despachador *Despachador

	RestauranteID uint
	SesionID      uint
	SesionCodigo  string
	CajeroID      uint
	Intervalo     time.Duration

	mu                 sync.Mutex
	ultimaActividad    time.Time
	ultimaNotificacion *NotificacionEnviada

	stopChan chan struct{}
	stopOnce sync.Once
	reloj    func() time.Time
}

func NewMonitorInactividad(db *gorm.DB, sesion models.CajaSesion) *MonitorInactividad {
	return &MonitorInactividad{
		db:              db,
		despachador:     NewDespachador(db),
		RestauranteID:   sesion.RestauranteID,
		SesionID:        sesion.ID,
		SesionCodigo:    sesion.Codigo,
		CajeroID:        sesion.CajeroApertura,
		Intervalo:       time.Minute,
		ultimaActividad: time.Now(),
		stopChan:        make(chan struct{}),
		reloj:           time.Now,
	}
}

// RegistrarActividad reinicia el reloj de inactividad y el escalamiento.
func (m *MonitorInactividad) RegistrarActividad() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ultimaActividad = m.reloj()
	m.ultimaNotificacion = nil
}

// Evaluar recalcula la inactividad acumulada y su nivel.
func (m *MonitorInactividad) Evaluar(ahora time.Time) EstadoInactividad {
	m.mu.Lock()
	defer m.mu.Unlock()

	inactividad := ahora.Sub(m.ultimaActividad)
	if inactividad < 0 {
		inactividad = 0
	}
	return EstadoInactividad{
		UltimaActividad: m.ultimaActividad,
		Inactividad:     inactividad,
		Nivel:           NivelPorInactividad(inactividad),
	}
}

// PuedeCerrarAutomaticamente indica si la sesión alcanzó el umbral de
// cierre automático por defecto. El lazo de revisión usa el umbral
// configurado del restaurante (UmbralCierreDe).
func (m *MonitorInactividad) PuedeCerrarAutomaticamente(ahora time.Time) bool {
	return m.Evaluar(ahora).Inactividad >= UmbralCierreAutomatico
}

// Start lanza el lazo de revisión periódica.
func (m *MonitorInactividad) Start() {
	go func() {
		ticker := time.NewTicker(m.Intervalo)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.revisar()
			case <-m.stopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Monitor de inactividad iniciado (sesión=%s)", m.SesionCodigo)
}

// Stop detiene el lazo. Es seguro llamarlo más de una vez: el cierre
// automático y el registro pueden coincidir.
func (m *MonitorInactividad) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// revisar corre en cada tick: fuera del horario de atención escala los
// avisos y, si la política lo permite, cierra la caja. Cualquier fallo de
// lectura se degrada a "no aplica" sin tumbar el lazo.
func (m *MonitorInactividad) revisar() {
	var cfg models.ConfiguracionHorario
	err := m.db.Preload("Dias").
		Where("restaurante_id = ?", m.RestauranteID).
		First(&cfg).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			utils.ErrorLogger.Printf("Monitor %s: no se pudo leer la configuración de horario: %v", m.SesionCodigo, err)
		}
		return
	}

	ahora := m.reloj().In(UbicacionDe(&cfg))
	if DentroDeHorario(&cfg, ahora) {
		return
	}

	estado := m.Evaluar(ahora)

	m.mu.Lock()
	ultima := m.ultimaNotificacion
	m.mu.Unlock()

	umbral := UmbralCierreDe(&cfg)
	if tipo := EvaluarEscalamiento(estado.Inactividad, ultima, ahora); tipo != nil {
		m.emitir(*tipo, estado, ahora, umbral)
	}

	if cfg.CierreAutomatico && estado.Inactividad >= umbral {
		m.cerrarPorInactividad(estado, ahora)
	}
}

func (m *MonitorInactividad) emitir(tipo TipoNotificacion, estado EstadoInactividad, ahora time.Time, umbralCierre time.Duration) {
	var notif Notificacion
	if tipo == NotificacionFinal {
		// El aviso final lleva la hora estimada de cierre, así que no sale
		// del constructor genérico.
		restante := umbralCierre - estado.Inactividad
		notif = Notificacion{
			Tipo:      NotificacionFinal,
			Titulo:    "Cierre de caja inminente",
			Mensaje:   fmt.Sprintf("La caja lleva %s sin actividad y se cerrará automáticamente en %s si no se confirma actividad.", utils.FormatearDuracionInactividad(int(estado.Inactividad.Minutes())), utils.FormatearDuracionInactividad(int(restante.Minutes()))),
			Severidad: models.SeveridadCritica,
			Acciones:  []AccionNotificacion{AccionMantenerAbierta, AccionCerrarAhora, AccionConfirmarActividad},
		}
	} else {
		notif = ConstruirNotificacion(tipo, estado.Inactividad)
	}

	if err := m.despachador.Despachar(notif, m.RestauranteID, m.CajeroID, m.SesionCodigo, estado.Inactividad, true); err != nil {
		// Se reintentará en el próximo tick; el aviso igual se difunde.
		utils.ErrorLogger.Printf("Monitor %s: fallo al auditar el aviso %s: %v", m.SesionCodigo, tipo, err)
	} else {
		m.mu.Lock()
		m.ultimaNotificacion = &NotificacionEnviada{Tipo: tipo, EnviadaEn: ahora}
		m.mu.Unlock()
	}

	realtime.BroadcastAlertaInactividad(map[string]interface{}{
		"sesion_codigo": m.SesionCodigo,
		"notificacion":  notif,
		"estado":        estado,
	})
}

func (m *MonitorInactividad) cerrarPorInactividad(estado EstadoInactividad, ahora time.Time) {
	var sesion models.CajaSesion
	if err := m.db.First(&sesion, m.SesionID).Error; err != nil {
		utils.ErrorLogger.Printf("Monitor %s: sesión no encontrada para cierre automático: %v", m.SesionCodigo, err)
		return
	}
	if !sesion.Abierta() {
		m.Stop()
		return
	}

	cierre := ahora
	sesion.CerradaAt = &cierre
	sesion.CierreAutomatico = true
	if err := m.db.Save(&sesion).Error; err != nil {
		utils.ErrorLogger.Printf("Monitor %s: fallo al cerrar la caja automáticamente: %v", m.SesionCodigo, err)
		return
	}

	alerta := models.AlertaSeguridad{
		RestauranteID: m.RestauranteID,
		CajeroID:      m.CajeroID,
		TipoAlerta:    "cierre_automatico",
		Descripcion:   fmt.Sprintf("Caja cerrada automáticamente tras %s de inactividad fuera de horario.", utils.FormatearDuracionInactividad(int(estado.Inactividad.Minutes()))),
		Severidad:     models.SeveridadCritica,
	}
	if err := m.db.Create(&alerta).Error; err != nil {
		utils.ErrorLogger.Printf("Monitor %s: fallo al auditar el cierre automático: %v", m.SesionCodigo, err)
	}

	realtime.BroadcastCajaUpdate(sesion)
	utils.InfoLogger.Printf("Caja %s cerrada automáticamente por inactividad", m.SesionCodigo)
	m.Stop()
}

// RegistroMonitores mantiene el monitor de cada sesión de caja abierta,
// indexado por id de sesión.
type RegistroMonitores struct {
	mu        sync.Mutex
	monitores map[uint]*MonitorInactividad
}

func NewRegistroMonitores() *RegistroMonitores {
	return &RegistroMonitores{monitores: make(map[uint]*MonitorInactividad)}
}

// Registrar arranca y guarda el monitor de una sesión recién abierta.
func (r *RegistroMonitores) Registrar(m *MonitorInactividad) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.monitores[m.SesionID] = m
	m.Start()
}

// Obtener devuelve el monitor de una sesión, si existe.
func (r *RegistroMonitores) Obtener(sesionID uint) (*MonitorInactividad, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.monitores[sesionID]
	return m, ok
}

// Detener para y descarta el monitor de una sesión cerrada.
func (r *RegistroMonitores) Detener(sesionID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.monitores[sesionID]; ok {
		m.Stop()
		delete(r.monitores, sesionID)
	}
}
