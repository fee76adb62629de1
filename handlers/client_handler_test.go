package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"vindinium-bot/messages"
	"vindinium-bot/models"
	"vindinium-bot/pathing"
	"vindinium-bot/persistence"
	"vindinium-bot/services"
)

type reply struct {
	Type    messages.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

func startServer(t *testing.T) (*httptest.Server, *ClientManager) {
	t.Helper()
	store, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "snapshots.json"))
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	snapshots := services.NewSnapshotService(store)
	plans := services.NewPlanService(snapshots, pathing.Searcher{})
	manager := NewClientManager()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		HandleClientConnection(conn, plans, snapshots, manager)
	}))
	t.Cleanup(srv.Close)
	return srv, manager
}

func dial(t *testing.T, srv *httptest.Server) (*websocket.Conn, string) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	welcome := receive(t, conn, messages.MessageTypeWelcome)
	var w messages.WelcomeMessage
	if err := json.Unmarshal(welcome.Payload, &w); err != nil || w.ClientID == "" {
		t.Fatalf("bad welcome %s: %v", welcome.Payload, err)
	}
	return conn, w.ClientID
}

func send(t *testing.T, conn *websocket.Conn, typ messages.MessageType, payload interface{}) {
	t.Helper()
	if err := conn.WriteJSON(messages.BaseMessage{Type: typ, Payload: payload}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func receive(t *testing.T, conn *websocket.Conn, want messages.MessageType) reply {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if r.Type != want {
		t.Fatalf("got %s %s, want %s", r.Type, r.Payload, want)
	}
	return r
}

func testState(t *testing.T) *models.State {
	t.Helper()
	board, err := models.ParseBoard(3, "@1  $-"+"  ##  "+"      ")
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	return &models.State{
		Game: models.Game{ID: "g1", Turn: 2, Board: *board},
		Hero: models.Hero{ID: 1},
	}
}

func TestPlanIsBroadcastToObservers(t *testing.T) {
	srv, manager := startServer(t)
	planner, plannerID := dial(t, srv)
	observer, _ := dial(t, srv)

	if n := len(manager.ClientIDs()); n != 2 {
		t.Fatalf("%d clients registered, want 2", n)
	}

	send(t, planner, messages.MessageTypeSaveSnapshot, messages.SaveSnapshotMessage{State: testState(t)})
	var s messages.SnapshotSavedMessage
	for _, conn := range []*websocket.Conn{planner, observer} {
		saved := receive(t, conn, messages.MessageTypeSnapshotSaved)
		var got messages.SnapshotSavedMessage
		if err := json.Unmarshal(saved.Payload, &got); err != nil || got.ID == "" {
			t.Fatalf("bad snapshot_saved %s: %v", saved.Payload, err)
		}
		if got.SavedBy != plannerID || got.GameID != "g1" || got.Turn != 2 {
			t.Errorf("snapshot_saved = %+v", got)
		}
		if s.ID != "" && got.ID != s.ID {
			t.Errorf("observers saw ids %s and %s", s.ID, got.ID)
		}
		s = got
	}

	send(t, planner, messages.MessageTypePlan, messages.PlanMessage{
		SnapshotID: s.ID,
		Target:     models.Position{X: 2, Y: 0},
	})

	for _, conn := range []*websocket.Conn{planner, observer} {
		r := receive(t, conn, messages.MessageTypePlanResult)
		var res messages.PlanResultMessage
		if err := json.Unmarshal(r.Payload, &res); err != nil {
			t.Fatalf("bad plan_result: %v", err)
		}
		if !res.Reachable || res.Direction != models.East || len(res.Path) != 2 {
			t.Errorf("result = %+v", res)
		}
		if res.RequestedBy != plannerID || res.SnapshotID != s.ID {
			t.Errorf("result header = %+v", res)
		}
		if !strings.HasPrefix(res.Board, "@1....") {
			t.Errorf("board = %q", res.Board)
		}
	}

	send(t, planner, messages.MessageTypeListSnapshots, nil)
	list := receive(t, planner, messages.MessageTypeSnapshots)
	var infos messages.SnapshotsMessage
	if err := json.Unmarshal(list.Payload, &infos); err != nil || len(infos.Snapshots) != 1 {
		t.Errorf("snapshots = %s, %v", list.Payload, err)
	}
}

func TestPlanErrorsReachOnlyTheRequester(t *testing.T) {
	srv, _ := startServer(t)
	conn, _ := dial(t, srv)

	tests := []struct {
		name    string
		typ     messages.MessageType
		payload interface{}
		code    string
	}{
		{"unknown snapshot", messages.MessageTypePlan, messages.PlanMessage{SnapshotID: "nope"}, "SNAPSHOT_NOT_FOUND"},
		{"off the board", messages.MessageTypePlan, messages.PlanMessage{State: testState(t), Target: models.Position{X: 5, Y: 5}}, "OUT_OF_BOUNDS"},
		{"nothing to plan on", messages.MessageTypePlan, messages.PlanMessage{}, "PLAN_FAILED"},
		{"empty snapshot", messages.MessageTypeSaveSnapshot, messages.SaveSnapshotMessage{}, "SAVE_FAILED"},
		{"unknown type", messages.MessageType("dance"), nil, "UNKNOWN_MESSAGE_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, conn, tt.typ, tt.payload)
			r := receive(t, conn, messages.MessageTypeError)
			var e messages.ErrorMessage
			if err := json.Unmarshal(r.Payload, &e); err != nil {
				t.Fatalf("bad error payload: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %s (%s), want %s", e.Code, e.Message, tt.code)
			}
		})
	}
}

func TestUnreachablePlanIsNotAnError(t *testing.T) {
	srv, _ := startServer(t)
	conn, _ := dial(t, srv)

	board, err := models.ParseBoard(3, "@1##$-"+"####  "+"      ")
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	state := &models.State{Game: models.Game{Board: *board}, Hero: models.Hero{ID: 1}}

	send(t, conn, messages.MessageTypePlan, messages.PlanMessage{State: state, Target: models.Position{X: 2, Y: 0}})
	r := receive(t, conn, messages.MessageTypePlanResult)
	var res messages.PlanResultMessage
	if err := json.Unmarshal(r.Payload, &res); err != nil {
		t.Fatalf("bad plan_result: %v", err)
	}
	if res.Reachable || res.Direction != models.Stay {
		t.Errorf("result = %+v", res)
	}
}
