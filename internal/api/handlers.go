/*
Package api
File: handlers.go
Description:
    HTTP handlers for the game server's REST API. The browser client reads
    state snapshots and forwards discrete player inputs (button indices and
    part ids); everything else happens inside the engine.

    Key responsibilities:
    - Input validation (is the JSON valid? is the button index in range?)
    - Delegation to the engine (which serializes all state mutations itself)
    - A stable response shape: the raw snapshot plus the damage-adjusted ship
      view and milestone progress, so the client never recomputes penalties.
*/

package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/everforgeworks/idle-space-adventure/internal/game"
)

// Server bundles the engine with its serving surface.
type Server struct {
	engine *game.Engine
	hub    *Hub
	logger *log.Logger
}

// NewServer wires the REST surface around an engine and hub.
func NewServer(logger *log.Logger, engine *game.Engine, hub *Hub) *Server {
	return &Server{engine: engine, hub: hub, logger: logger}
}

// Request DTOs. These structs define exactly what the client may send.

type ActionRequest struct {
	Button int `json:"button"` // 0..3
}

type UpgradeRequest struct {
	PartID string `json:"part_id"`
}

// StateResponse is the full read model: the canonical snapshot, the
// damage-adjusted ship, the pending event (null when none), and milestone
// progress derived from the distance.
type StateResponse struct {
	State         game.GameState  `json:"state"`
	EffectiveShip game.Ship       `json:"effectiveShip"`
	ActiveEvent   *game.GameEvent `json:"activeEvent"`
	RepairCost    int             `json:"repairCost"`
	Milestone     *game.Milestone `json:"milestone"`     // Last milestone passed
	NextMilestone *game.Milestone `json:"nextMilestone"` // Next one ahead
}

// Routes assembles the mux for the game server.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Read endpoints
	mux.HandleFunc("/api/state", s.handleGetState)
	mux.HandleFunc("/api/event", s.handleGetEvent)

	// Action endpoints
	mux.HandleFunc("/api/action", s.handleAction)
	mux.HandleFunc("/api/upgrade", s.handleUpgrade)
	mux.HandleFunc("/api/damage", s.handleDamage)

	// Real-time push
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(s.hub, w, r)
	})

	return mux
}

// stateResponse builds the read model from a settled snapshot.
func (s *Server) stateResponse() StateResponse {
	state := s.engine.State()
	current, next := s.engine.Balance().MilestoneProgress(state.Distance)
	return StateResponse{
		State:         state,
		EffectiveShip: game.ApplyDamagePenalties(state.Ship, state.DamagedSystems),
		ActiveEvent:   s.engine.ActiveEvent(),
		RepairCost:    game.RepairCost(state.DamagedSystems),
		Milestone:     current,
		NextMilestone: next,
	}
}

// handleGetState returns the full read model.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stateResponse())
}

// handleGetEvent returns the event awaiting a response, or null.
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.engine.ActiveEvent())
}

// handleAction forwards one button press into the engine.
// Out-of-range indices are rejected; in-range presses that do nothing in the
// current context (e.g. boost with zero points) are fine: the engine treats
// them as no-ops and the fresh snapshot tells the client what happened.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Button < 0 || req.Button > 3 {
		http.Error(w, "Button index out of range", http.StatusBadRequest)
		return
	}

	s.engine.SubmitAction(req.Button)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stateResponse())
}

// handleUpgrade attempts a part purchase. Unknown parts, maxed parts, and
// insufficient Dark Matter are all silent no-ops by design; the client
// compares the returned snapshot against what it asked for.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	var req UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.PartID == "" {
		http.Error(w, "part_id is required", http.StatusBadRequest)
		return
	}

	s.engine.SubmitUpgrade(req.PartID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stateResponse())
}

// handleDamage flags a random intact system as damaged.
// Used by event fallout hooks and maintenance tooling.
func (s *Server) handleDamage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	s.engine.DamageRandomSystem()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stateResponse())
}

// CORSMiddleware lets the browser client talk to the server across domains.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
