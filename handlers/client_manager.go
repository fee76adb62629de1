package handlers

import (
	"log"
	"sort"
	"sync"
)

// ClientManager tracks connected observers
type ClientManager struct {
	clients map[string]*ClientHandler // Map client ID to ClientHandler
	mutex   sync.RWMutex
}

// NewClientManager creates a new client manager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
	}
}

// AddClient adds a client to the manager
func (cm *ClientManager) AddClient(clientID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.clients[clientID] = handler
}

// RemoveClient removes a client from the manager
func (cm *ClientManager) RemoveClient(clientID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.clients, clientID)
}

// ClientIDs returns the ids of connected clients in sorted order
func (cm *ClientManager) ClientIDs() []string {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	ids := make([]string, 0, len(cm.clients))
	for id := range cm.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BroadcastToAll sends a message to all connected clients
func (cm *ClientManager) BroadcastToAll(msg interface{}) {
	cm.BroadcastToOthers("", msg)
}

// BroadcastToOthers sends a message to all connected clients except the specified one
func (cm *ClientManager) BroadcastToOthers(excludeClientID string, msg interface{}) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for id, client := range cm.clients {
		if id == excludeClientID {
			continue
		}
		if err := client.conn.SendMessage(msg); err != nil {
			log.Printf("Error broadcasting to client %s: %v", id, err)
		}
	}
}
