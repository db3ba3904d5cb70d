package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/septianhadinugroho/snack-iseng-service/models"
	"github.com/septianhadinugroho/snack-iseng-service/utils"
)

// Event types
const (
	EventOrderUpdate   = "order_update"
	EventExpenseUpdate = "expense_update"
	EventHistoryUpdate = "history_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard yang terhubung lewat WebSocket.
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient -> menambahkan connection ke set
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = true
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate -> menyiarkan perubahan ledger order ke semua client
func BroadcastOrderUpdate(data interface{}) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  data,
	})
}

// BroadcastExpenseUpdate -> menyiarkan perubahan ledger belanja
func BroadcastExpenseUpdate(data interface{}) {
	broadcast(Message{
		Event: EventExpenseUpdate,
		Data:  data,
	})
}

// BroadcastHistoryUpdate -> entry history baru untuk panel dashboard
func BroadcastHistoryUpdate(log models.HistoryLog) {
	broadcast(Message{
		Event: EventHistoryUpdate,
		Data:  log,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling ws message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending ws message to client: %v", err)
			continue
		}
	}
}
