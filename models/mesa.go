package models

import "time"

// EstadoMesa enumerates every state a table can be displayed in. Only a
// subset participates in the enforced workflow (see TransicionesMesa); the
// kitchen-facing states exist for dashboards and statistics.
type EstadoMesa string

const (
	EstadoLibre         EstadoMesa = "libre"
	EstadoOcupada       EstadoMesa = "ocupada"
	EstadoEnCocina      EstadoMesa = "en_cocina"
	EstadoServida       EstadoMesa = "servida"
	EstadoPorCobrar     EstadoMesa = "por_cobrar"
	EstadoReservada     EstadoMesa = "reservada"
	EstadoInactiva      EstadoMesa = "inactiva"
	EstadoMantenimiento EstadoMesa = "mantenimiento"
)

// Mesa representa una mesa física del restaurante.
type Mesa struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	RestauranteID uint         `gorm:"index;not null" json:"restaurante_id"`
	Numero        int          `gorm:"not null" json:"numero"`
	Nombre        string       `gorm:"type:varchar(50)" json:"nombre,omitempty"`
	Zona          string       `gorm:"type:varchar(50)" json:"zona,omitempty"`
	Capacidad     int          `gorm:"not null;default:4" json:"capacidad"`
	Estado        EstadoMesa   `gorm:"type:varchar(20);not null;default:'libre'" json:"estado"`
	OrdenActivaID *uint        `gorm:"index" json:"orden_activa_id,omitempty"`
	OrdenActiva   *OrdenActiva `gorm:"foreignKey:OrdenActivaID" json:"orden_activa,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

func (Mesa) TableName() string { return "mesas" }

// TransicionesMesa es la tabla de transiciones realmente aplicada por el
// flujo de sala. Un estado fuera de esta tabla no admite transición alguna.
var TransicionesMesa = map[EstadoMesa][]EstadoMesa{
	EstadoLibre:         {EstadoOcupada, EstadoReservada, EstadoInactiva, EstadoMantenimiento},
	EstadoOcupada:       {EstadoLibre},
	EstadoReservada:     {EstadoOcupada, EstadoLibre, EstadoInactiva},
	EstadoInactiva:      {EstadoLibre},
	EstadoMantenimiento: {EstadoLibre},
}

// EsTransicionValida indica si el cambio de estado desde -> hacia está
// permitido por la tabla de transiciones.
func EsTransicionValida(desde, hacia EstadoMesa) bool {
	permitidos, ok := TransicionesMesa[desde]
	if !ok {
		return false
	}
	for _, e := range permitidos {
		if e == hacia {
			return true
		}
	}
	return false
}

// PuedeCrearOrden indica si se puede abrir una orden sobre la mesa.
func (m *Mesa) PuedeCrearOrden() bool {
	return m.Estado == EstadoLibre || m.Estado == EstadoReservada
}

// EstaDisponible indica si la mesa cuenta como disponible para clientes.
func (m *Mesa) EstaDisponible() bool {
	return m.Estado == EstadoLibre || m.Estado == EstadoReservada
}

// InfoEstado describe cómo se presenta un estado en el dashboard.
type InfoEstado struct {
	Color       string `json:"color"`
	Etiqueta    string `json:"etiqueta"`
	Descripcion string `json:"descripcion"`
}

var infoEstados = map[EstadoMesa]InfoEstado{
	EstadoLibre:         {Color: "green", Etiqueta: "Libre", Descripcion: "Mesa disponible para recibir clientes"},
	EstadoOcupada:       {Color: "red", Etiqueta: "Ocupada", Descripcion: "Mesa con clientes y orden activa"},
	EstadoEnCocina:      {Color: "orange", Etiqueta: "En cocina", Descripcion: "Orden enviada a cocina"},
	EstadoServida:       {Color: "blue", Etiqueta: "Servida", Descripcion: "Platos entregados a la mesa"},
	EstadoPorCobrar:     {Color: "purple", Etiqueta: "Por cobrar", Descripcion: "Cuenta solicitada, pendiente de pago"},
	EstadoReservada:     {Color: "yellow", Etiqueta: "Reservada", Descripcion: "Mesa reservada para un cliente"},
	EstadoInactiva:      {Color: "gray", Etiqueta: "Inactiva", Descripcion: "Mesa fuera de servicio temporalmente"},
	EstadoMantenimiento: {Color: "brown", Etiqueta: "Mantenimiento", Descripcion: "Mesa en reparación o limpieza profunda"},
}

// ObtenerInfoEstado devuelve el descriptor de presentación del estado.
// Estados desconocidos se muestran tal cual, sin color.
func ObtenerInfoEstado(estado EstadoMesa) InfoEstado {
	if info, ok := infoEstados[estado]; ok {
		return info
	}
	return InfoEstado{Etiqueta: string(estado), Descripcion: "Estado desconocido"}
}

// AccionMesa identifica una operación disponible sobre una mesa.
type AccionMesa string

const (
	AccionCrearOrden    AccionMesa = "crear_orden"
	AccionCobrar        AccionMesa = "cobrar"
	AccionReservar      AccionMesa = "reservar"
	AccionLiberar       AccionMesa = "liberar"
	AccionInactivar     AccionMesa = "inactivar"
	AccionMantenimiento AccionMesa = "mantenimiento"
)

var accionesPorEstado = map[EstadoMesa][]AccionMesa{
	EstadoLibre:         {AccionCrearOrden, AccionReservar, AccionInactivar, AccionMantenimiento},
	EstadoOcupada:       {AccionCobrar},
	EstadoReservada:     {AccionCrearOrden, AccionLiberar, AccionInactivar},
	EstadoInactiva:      {AccionLiberar},
	EstadoMantenimiento: {AccionLiberar},
}

// AccionesDisponibles lista las acciones permitidas para un estado.
func AccionesDisponibles(estado EstadoMesa) []AccionMesa {
	return accionesPorEstado[estado]
}

// UmbralAtencionMinutos define cuándo una mesa ocupada requiere atención
// del personal de sala.
const UmbralAtencionMinutos = 90

// TiempoOcupacionMinutos devuelve los minutos transcurridos desde la
// creación de la orden activa, o nil si la mesa no está ocupada o no
// tiene orden asociada.
func (m *Mesa) TiempoOcupacionMinutos(ahora time.Time) *int {
	if m.Estado != EstadoOcupada || m.OrdenActiva == nil {
		return nil
	}
	minutos := int(ahora.Sub(m.OrdenActiva.CreatedAt).Minutes())
	return &minutos
}

// RequiereAtencion indica si la mesa lleva demasiado tiempo ocupada.
func (m *Mesa) RequiereAtencion(ahora time.Time) bool {
	minutos := m.TiempoOcupacionMinutos(ahora)
	return minutos != nil && *minutos > UmbralAtencionMinutos
}
