// Package realtime mantiene el hub de websockets que reemplaza las
// suscripciones en tiempo real del dashboard: cada cambio de mesa, orden
// o caja se difunde a todos los clientes conectados.
package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/spoonapp/spoon/models"
)

// Eventos difundidos por el hub.
const (
	EventMesaCreate        = "mesa_create"
	EventMesaUpdate        = "mesa_update"
	EventMesaDelete        = "mesa_delete"
	EventOrdenUpdate       = "orden_update"
	EventCajaUpdate        = "caja_update"
	EventAlertaInactividad = "alerta_inactividad"
	EventDashboardUpdate   = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub registra los clientes del dashboard (admin, cajero, mesero) junto
// con su rol.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient agrega una conexión al hub con su rol.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient quita y cierra una conexión.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastMesaCreate difunde el alta de una mesa.
func BroadcastMesaCreate(mesa models.Mesa) {
	broadcast(Message{Event: EventMesaCreate, Data: mesa})
}

// BroadcastMesaUpdate difunde un cambio de estado de mesa.
func BroadcastMesaUpdate(mesa models.Mesa) {
	broadcast(Message{Event: EventMesaUpdate, Data: mesa})
}

// BroadcastMesaDelete difunde la baja de una mesa.
func BroadcastMesaDelete(mesaID uint) {
	broadcast(Message{Event: EventMesaDelete, Data: map[string]interface{}{"mesa_id": mesaID}})
}

// BroadcastOrdenUpdate difunde la creación o el cierre de una orden.
func BroadcastOrdenUpdate(orden models.OrdenActiva) {
	broadcast(Message{Event: EventOrdenUpdate, Data: orden})
}

// BroadcastCajaUpdate difunde la apertura o cierre de una sesión de caja.
func BroadcastCajaUpdate(sesion models.CajaSesion) {
	broadcast(Message{Event: EventCajaUpdate, Data: sesion})
}

// BroadcastAlertaInactividad difunde un aviso de inactividad al POS.
func BroadcastAlertaInactividad(data interface{}) {
	broadcast(Message{Event: EventAlertaInactividad, Data: data})
}

// BroadcastDashboardUpdate difunde estadísticas agregadas.
func BroadcastDashboardUpdate(stats interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: stats})
}

// BroadcastMessage envía un mensaje arbitrario a todos los clientes.
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error serializando mensaje de broadcast: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error enviando broadcast, se desconecta el cliente: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
