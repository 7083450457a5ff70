package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/amdsim/internal/config"
	"github.com/peterkuimelis/amdsim/internal/modifier"
	"github.com/peterkuimelis/amdsim/internal/scenario"
	"github.com/peterkuimelis/amdsim/internal/sim"
)

// MaxTrials bounds a single request.
const MaxTrials = 1_000_000

const maxBodyBytes = 1 << 20

// UpgradeInfo is the JSON representation of an upgrade for the /api/upgrades endpoint.
type UpgradeInfo struct {
	Name  string `json:"name"`
	Slots int    `json:"slots"`
}

// ScenarioInfo is the JSON representation of a scenario for the /api/scenarios endpoint.
type ScenarioInfo struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Upgrades []string `json:"upgrades,omitempty"`
	Custom   bool     `json:"custom"`
}

// SimulateRequest is the body of POST /api/simulate and the first message
// on /ws. A non-zero Number loads that scenario from the scenarios file and
// Scenario's upgrades are applied after its own.
type SimulateRequest struct {
	Number int `json:"number,omitempty"`
	scenario.Scenario
}

// SimulateResult is the response of POST /api/simulate.
type SimulateResult struct {
	Cards   []string    `json:"cards"`
	Skipped []string    `json:"skipped,omitempty"`
	Summary sim.Summary `json:"summary"`
}

// Message is one frame streamed over /ws. Type is "option" for each
// finished upgrade, then "done" or "error".
type Message struct {
	Type     string             `json:"type"`
	Option   *sim.OptionResult  `json:"option,omitempty"`
	Baseline *sim.Summary       `json:"baseline,omitempty"`
	Ranked   []sim.OptionResult `json:"ranked,omitempty"`
	Skipped  []string           `json:"skipped,omitempty"`
	Result   string             `json:"result,omitempty"`
}

// Server is the amdsim HTTP server.
type Server struct {
	defaults config.Defaults
	mux      *http.ServeMux
}

// NewServer creates a new web server using defaults for anything a
// request leaves unset.
func NewServer(defaults config.Defaults) *Server {
	s := &Server{
		defaults: defaults,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/upgrades", s.handleUpgrades)
	s.mux.HandleFunc("GET /api/scenarios", s.handleScenarios)
	s.mux.HandleFunc("POST /api/simulate", s.handleSimulate)

	// Streams a comparison as each upgrade finishes
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleUpgrades(w http.ResponseWriter, r *http.Request) {
	slots := make(map[modifier.Upgrade]int)
	for _, u := range modifier.StandardOptions() {
		slots[u]++
	}
	var upgrades []UpgradeInfo
	for _, u := range modifier.AllUpgrades() {
		upgrades = append(upgrades, UpgradeInfo{Name: u.String(), Slots: slots[u]})
	}
	writeJSON(w, http.StatusOK, upgrades)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	f, err := scenario.ParseFile(s.defaults.Scenarios)
	if err != nil {
		log.Printf("Scenarios: %v", err)
		http.Error(w, "could not read scenarios file", http.StatusInternalServerError)
		return
	}

	scenarios := []ScenarioInfo{}
	for i, sc := range f.Scenarios {
		scenarios = append(scenarios, ScenarioInfo{
			Number:   i + 1,
			Name:     sc.Name,
			Upgrades: sc.Upgrades,
			Custom:   len(sc.Cards) > 0,
		})
	}
	writeJSON(w, http.StatusOK, scenarios)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	p, err := s.prepare(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := sim.Run(p.Deck, p.Base, p.Config)
	if err != nil {
		// The request was well formed but the deck can't be simulated
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	res := SimulateResult{Cards: []string{}, Skipped: p.Skipped, Summary: summary}
	for _, c := range p.Deck.Cards() {
		res.Cards = append(res.Cards, c.String())
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	_, data, err := wsConn.Read(ctx)
	if err != nil {
		log.Printf("WebSocket read request: %v", err)
		return
	}

	send := func(msg Message) error {
		out, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return wsConn.Write(ctx, websocket.MessageText, out)
	}

	var req SimulateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		send(Message{Type: "error", Result: fmt.Sprintf("invalid request: %v", err)})
		wsConn.Close(websocket.StatusPolicyViolation, "expected simulate request")
		return
	}

	p, err := s.prepare(req)
	if err != nil {
		send(Message{Type: "error", Result: err.Error()})
		wsConn.Close(websocket.StatusNormalClosure, "invalid request")
		return
	}

	cmp, err := sim.CompareEach(ctx, p.Deck, p.Base, p.Config, func(res sim.OptionResult) error {
		return send(Message{Type: "option", Option: &res})
	})
	if err != nil {
		if ctx.Err() == nil {
			send(Message{Type: "error", Result: err.Error()})
		}
		log.Printf("WebSocket compare: %v", err)
		wsConn.Close(websocket.StatusInternalError, "comparison failed")
		return
	}

	if err := send(Message{
		Type:     "done",
		Baseline: &cmp.Baseline,
		Ranked:   cmp.Ranked(),
		Skipped:  p.Skipped,
	}); err != nil {
		log.Printf("WebSocket write error: %v", err)
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "comparison finished")
}

// prepare resolves a request against the scenarios file and the server
// defaults.
func (s *Server) prepare(req SimulateRequest) (scenario.Prepared, error) {
	sc := req.Scenario
	if req.Number != 0 {
		loaded, err := scenario.ByNumber(s.defaults.Scenarios, req.Number)
		if err != nil {
			return scenario.Prepared{}, err
		}
		sc = overlay(loaded, req.Scenario)
	}
	if sc.Trials > MaxTrials {
		return scenario.Prepared{}, fmt.Errorf("trials must be at most %d", MaxTrials)
	}
	return sc.Prepare(s.defaults.SimConfig(), s.defaults.Base())
}

// overlay applies the fields set in req on top of base. Upgrades are
// appended.
func overlay(base, req scenario.Scenario) scenario.Scenario {
	out := base
	out.Upgrades = append(append([]string(nil), base.Upgrades...), req.Upgrades...)
	if len(req.Cards) > 0 {
		out.Cards = req.Cards
	}
	if req.Trials != 0 {
		out.Trials = req.Trials
	}
	if req.Seed != nil {
		out.Seed = req.Seed
	}
	if req.HandSize != 0 {
		out.HandSize = req.HandSize
	}
	if req.Base != nil {
		out.Base = req.Base
	}
	if req.Bless != 0 {
		out.Bless = req.Bless
	}
	if req.Curse != 0 {
		out.Curse = req.Curse
	}
	if req.CurseCard != "" {
		out.CurseCard = req.CurseCard
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Write response: %v", err)
	}
}
