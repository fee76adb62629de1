package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"vindinium-bot/messages"
	"vindinium-bot/network"
	"vindinium-bot/pathing"
	"vindinium-bot/persistence"
	"vindinium-bot/services"
)

// ClientHandler manages a single observer connection
type ClientHandler struct {
	id              string
	conn            *network.Connection
	planService     *services.PlanService
	snapshotService *services.SnapshotService
	clientManager   *ClientManager
}

// HandleClientConnection serves a websocket connection until it closes
func HandleClientConnection(wsConn *websocket.Conn, planService *services.PlanService, snapshotService *services.SnapshotService, clientManager *ClientManager) {
	conn := network.NewConnection(wsConn)
	handler := &ClientHandler{
		id:              uuid.New().String(),
		conn:            conn,
		planService:     planService,
		snapshotService: snapshotService,
		clientManager:   clientManager,
	}
	log.Printf("Observer %s connected from %s", handler.id, conn.RemoteAddr())

	clientManager.AddClient(handler.id, handler)
	go conn.WritePump()

	handler.send(messages.BaseMessage{
		Type:    messages.MessageTypeWelcome,
		Payload: messages.WelcomeMessage{ClientID: handler.id},
	})

	// Handle the read pump in the current goroutine
	conn.ReadPump(handler)

	clientManager.RemoveClient(handler.id)
	log.Printf("Observer %s disconnected", handler.id)
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var msg messages.IncomingMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		h.send(messages.NewError("BAD_MESSAGE", "Message is not valid JSON"))
		return
	}

	switch msg.Type {
	case messages.MessageTypePlan:
		h.handlePlan(msg.Payload)
	case messages.MessageTypeSaveSnapshot:
		h.handleSaveSnapshot(msg.Payload)
	case messages.MessageTypeListSnapshots:
		h.handleListSnapshots()
	default:
		log.Printf("Unknown message type: %s", msg.Type)
		h.send(messages.NewError("UNKNOWN_MESSAGE_TYPE", "Unknown message type received"))
	}
}

// handlePlan runs a search, answers the requester and shows the result to everyone else
func (h *ClientHandler) handlePlan(payload json.RawMessage) {
	var req messages.PlanMessage
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("Error unmarshaling plan message: %v", err)
		h.send(messages.NewError("BAD_PLAN", "Plan payload is malformed"))
		return
	}

	res, err := h.planService.Plan(services.PlanRequest{
		SnapshotID: req.SnapshotID,
		State:      req.State,
		Start:      req.Start,
		Target:     req.Target,
	})
	if err != nil {
		log.Printf("Plan for %s failed: %v", h.id, err)
		switch {
		case errors.Is(err, persistence.ErrNotFound):
			h.send(messages.NewError("SNAPSHOT_NOT_FOUND", err.Error()))
		case errors.Is(err, pathing.ErrOutOfBounds):
			h.send(messages.NewError("OUT_OF_BOUNDS", err.Error()))
		default:
			h.send(messages.NewError("PLAN_FAILED", err.Error()))
		}
		return
	}

	out := messages.BaseMessage{
		Type: messages.MessageTypePlanResult,
		Payload: messages.PlanResultMessage{
			RequestedBy: h.id,
			SnapshotID:  res.SnapshotID,
			Turn:        res.Turn,
			Start:       res.Start,
			Target:      res.Target,
			Reachable:   res.Reachable,
			Path:        res.Path,
			Cost:        res.Cost,
			Direction:   res.Direction,
			Board:       res.Board,
		},
	}
	h.send(out)
	h.clientManager.BroadcastToOthers(h.id, out)
}

// handleSaveSnapshot stores an uploaded snapshot and tells every observer its id
func (h *ClientHandler) handleSaveSnapshot(payload json.RawMessage) {
	var req messages.SaveSnapshotMessage
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("Error unmarshaling snapshot: %v", err)
		h.send(messages.NewError("BAD_SNAPSHOT", "Snapshot payload is malformed"))
		return
	}

	id, err := h.snapshotService.Save(req.State)
	if err != nil {
		log.Printf("Saving snapshot for %s failed: %v", h.id, err)
		h.send(messages.NewError("SAVE_FAILED", err.Error()))
		return
	}

	h.clientManager.BroadcastToAll(messages.BaseMessage{
		Type: messages.MessageTypeSnapshotSaved,
		Payload: messages.SnapshotSavedMessage{
			ID:      id,
			SavedBy: h.id,
			GameID:  req.State.Game.ID,
			Turn:    req.State.Game.Turn,
		},
	})
}

// handleListSnapshots lists stored snapshots
func (h *ClientHandler) handleListSnapshots() {
	infos, err := h.snapshotService.List()
	if err != nil {
		log.Printf("Listing snapshots failed: %v", err)
		h.send(messages.NewError("LIST_FAILED", err.Error()))
		return
	}
	if infos == nil {
		infos = []persistence.SnapshotInfo{}
	}

	h.send(messages.BaseMessage{
		Type:    messages.MessageTypeSnapshots,
		Payload: messages.SnapshotsMessage{Snapshots: infos},
	})
}

func (h *ClientHandler) send(msg interface{}) {
	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("Error sending to client %s: %v", h.id, err)
	}
}
