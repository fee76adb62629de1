package messages

import (
	"encoding/json"

	"vindinium-bot/models"
	"vindinium-bot/persistence"
)

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeWelcome       MessageType = "welcome"
	MessageTypePlan          MessageType = "plan"
	MessageTypePlanResult    MessageType = "plan_result"
	MessageTypeSaveSnapshot  MessageType = "save_snapshot"
	MessageTypeSnapshotSaved MessageType = "snapshot_saved"
	MessageTypeListSnapshots MessageType = "list_snapshots"
	MessageTypeSnapshots     MessageType = "snapshots"
	MessageTypeError         MessageType = "error"
)

// BaseMessage is the envelope sent to clients
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// IncomingMessage is the envelope read from clients; the payload is decoded
// once the type is known
type IncomingMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// WelcomeMessage tells a client its observer id
type WelcomeMessage struct {
	ClientID string `json:"client_id"`
}

// PlanMessage requests a route on a stored or inline snapshot
type PlanMessage struct {
	SnapshotID string           `json:"snapshot_id,omitempty"`
	State      *models.State    `json:"state,omitempty"`
	Start      *models.Position `json:"start,omitempty"`
	Target     models.Position  `json:"target"`
}

// PlanResultMessage carries the outcome of a search
type PlanResultMessage struct {
	RequestedBy string            `json:"requested_by"`
	SnapshotID  string            `json:"snapshot_id,omitempty"`
	Turn        int               `json:"turn"`
	Start       models.Position   `json:"start"`
	Target      models.Position   `json:"target"`
	Reachable   bool              `json:"reachable"`
	Path        []models.Position `json:"path"`
	Cost        int               `json:"cost"`
	Direction   models.Direction  `json:"direction"`
	Board       string            `json:"board"`
}

// SaveSnapshotMessage uploads a snapshot
type SaveSnapshotMessage struct {
	State *models.State `json:"state"`
}

// SnapshotSavedMessage announces the id of an uploaded snapshot to every observer
type SnapshotSavedMessage struct {
	ID      string `json:"id"`
	SavedBy string `json:"savedBy"`
	GameID  string `json:"gameId"`
	Turn    int    `json:"turn"`
}

// SnapshotsMessage lists stored snapshots
type SnapshotsMessage struct {
	Snapshots []persistence.SnapshotInfo `json:"snapshots"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError wraps an error response in an envelope
func NewError(code, message string) BaseMessage {
	return BaseMessage{
		Type:    MessageTypeError,
		Payload: ErrorMessage{Code: code, Message: message},
	}
}
