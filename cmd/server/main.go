package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"vindinium-bot/config"
	"vindinium-bot/handlers"
	"vindinium-bot/pathing"
	"vindinium-bot/persistence"
	"vindinium-bot/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The plan server is a local debugging tool
		return true
	},
}

func openStorage(cfg *config.Config) (persistence.Storage, error) {
	if cfg.Storage.Type == "postgres" {
		log.Println("Using PostgreSQL persistence")
		return persistence.NewPostgresStore(cfg.Storage.DatabaseURL)
	}
	log.Printf("Using JSON persistence at %s", cfg.Storage.File)
	return persistence.NewJSONStore(cfg.Storage.File)
}

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	snapshotService := services.NewSnapshotService(db)
	planService := services.NewPlanService(snapshotService, pathing.Searcher{MaxIterations: cfg.Search.MaxIterations})
	clientManager := handlers.NewClientManager()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		handlers.HandleClientConnection(conn, planService, snapshotService, clientManager)
	})

	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"plans":     planService.Stats(),
			"observers": len(clientManager.ClientIDs()),
		})
	})

	log.Printf("Plan server starting on port %s", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, nil))
}
