package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/amdsim/internal/config"
	"github.com/peterkuimelis/amdsim/internal/modifier"
	"github.com/peterkuimelis/amdsim/internal/scenario"
	"github.com/peterkuimelis/amdsim/internal/sim"
)

// MaxTrials bounds a single tool call so one request can't stall the server.
const MaxTrials = 1_000_000

// defaults holds the simulation defaults, set by main.
var defaults = config.Defaults{
	Trials:   100000,
	Seed:     sim.DefaultSeed,
	HandSize: sim.DefaultHandSize,
	BaseMin:  sim.DefaultBase.Min,
	BaseMax:  sim.DefaultBase.Max,
}

// SetDefaults sets the simulation defaults, including the scenarios file path.
func SetDefaults(d config.Defaults) {
	defaults = d
}

// RegisterTools adds all simulator tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(listUpgradesTool(), handleListUpgrades)
	s.AddTool(simulateTool(), handleSimulate)
	s.AddTool(compareUpgradesTool(), handleCompareUpgrades)
}

// --- Tool definitions ---

func listUpgradesTool() mcp.Tool {
	return mcp.NewTool("list_upgrades",
		mcp.WithDescription("List every deck upgrade and how many times a fresh deck can take it. Read-only."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// deckParams are shared by simulate and compare_upgrades.
func deckParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("scenario", mcp.Description("Start from scenario N (1-indexed) of the scenarios file instead of the standard deck")),
		mcp.WithArray("upgrades", mcp.WithStringItems(), mcp.Description("Upgrade names to apply, in order. Names with no slot left are skipped and reported.")),
		mcp.WithNumber("trials", mcp.Min(1), mcp.Description("Number of attacks to simulate")),
		mcp.WithNumber("seed", mcp.Min(0), mcp.Description("Random seed; the same seed gives the same result")),
		mcp.WithNumber("hand_size", mcp.Min(2), mcp.Description("Cards in hand; sets how many attacks happen before the deck is reset")),
		mcp.WithNumber("base_min", mcp.Description("Smallest base attack value (inclusive)")),
		mcp.WithNumber("base_max", mcp.Description("Largest base attack value (exclusive)")),
		mcp.WithNumber("bless", mcp.Min(0), mcp.Description("Bless cards shuffled in before the run")),
		mcp.WithNumber("curse", mcp.Min(0), mcp.Description("Curse cards shuffled in before the run")),
		mcp.WithString("curse_card", mcp.Description("Card added per curse: curse (default), null, or a modifier like -1")),
	}
}

func simulateTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Simulate an attack modifier deck and return its relative differential: " +
			"(mean resolved attack - mean base attack) / mean base attack."),
	}, deckParams()...)
	return mcp.NewTool("simulate", opts...)
}

func compareUpgradesTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Simulate the deck, then each upgrade it can still take, and rank the upgrades " +
			"by how much they raise the relative differential over the deck as it is."),
	}, deckParams()...)
	return mcp.NewTool("compare_upgrades", opts...)
}

// --- Responses ---

// UpgradeView describes one catalog entry.
type UpgradeView struct {
	Name  string `json:"name"`
	Slots int    `json:"slots"`
}

// DeckView summarizes a prepared deck.
type DeckView struct {
	Cards    []string `json:"cards"`
	Immune   bool     `json:"immune"`
	Options  []string `json:"options"`
	Skipped  []string `json:"skipped,omitempty"`
	Scenario string   `json:"scenario,omitempty"`
}

// SimulateResponse is returned by the simulate tool.
type SimulateResponse struct {
	Deck    DeckView    `json:"deck"`
	Summary sim.Summary `json:"summary"`
}

// CompareResponse is returned by the compare_upgrades tool.
type CompareResponse struct {
	Deck     DeckView           `json:"deck"`
	Baseline sim.Summary        `json:"baseline"`
	Ranked   []sim.OptionResult `json:"ranked"`
}

// --- Tool handlers ---

func handleListUpgrades(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slots := make(map[modifier.Upgrade]int)
	for _, u := range modifier.StandardOptions() {
		slots[u]++
	}
	var views []UpgradeView
	for _, u := range modifier.AllUpgrades() {
		views = append(views, UpgradeView{Name: u.String(), Slots: slots[u]})
	}
	return mcp.NewToolResultText(respondJSON(views)), nil
}

func handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	setup, errResult := prepare(request)
	if errResult != nil {
		return errResult, nil
	}

	summary, err := sim.Run(setup.deck, setup.base, setup.cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Simulation failed: %v", err), nil
	}

	return mcp.NewToolResultText(respondJSON(SimulateResponse{
		Deck:    setup.view,
		Summary: summary,
	})), nil
}

func handleCompareUpgrades(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	setup, errResult := prepare(request)
	if errResult != nil {
		return errResult, nil
	}

	cmp, err := sim.Compare(ctx, setup.deck, setup.base, setup.cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Comparison failed: %v", err), nil
	}

	return mcp.NewToolResultText(respondJSON(CompareResponse{
		Deck:     setup.view,
		Baseline: cmp.Baseline,
		Ranked:   cmp.Ranked(),
	})), nil
}

// --- Request handling ---

type simSetup struct {
	deck *modifier.Deck
	base sim.Uniform
	cfg  sim.Config
	view DeckView
}

// prepare builds the deck and config a request describes. A non-nil result
// is a tool error to return as is.
func prepare(request mcp.CallToolRequest) (simSetup, *mcp.CallToolResult) {
	var sc scenario.Scenario
	if n := request.GetInt("scenario", 0); n != 0 {
		var err error
		sc, err = scenario.ByNumber(defaults.Scenarios, n)
		if err != nil {
			return simSetup{}, mcp.NewToolResultErrorf("Failed to load scenario: %v", err)
		}
	}

	sc.Upgrades = append(sc.Upgrades, request.GetStringSlice("upgrades", nil)...)
	sc.Trials = request.GetInt("trials", sc.Trials)
	if _, ok := request.GetArguments()["trials"]; ok && sc.Trials < 1 {
		return simSetup{}, mcp.NewToolResultError("trials must be >= 1")
	}
	if sc.Trials > MaxTrials {
		return simSetup{}, mcp.NewToolResultErrorf("trials must be at most %d", MaxTrials)
	}
	if _, ok := request.GetArguments()["seed"]; ok {
		seed := request.GetInt("seed", 0)
		if seed < 0 {
			return simSetup{}, mcp.NewToolResultError("seed must be >= 0")
		}
		u := uint64(seed)
		sc.Seed = &u
	}
	sc.HandSize = request.GetInt("hand_size", sc.HandSize)
	sc.Bless = request.GetInt("bless", sc.Bless)
	sc.Curse = request.GetInt("curse", sc.Curse)
	sc.CurseCard = request.GetString("curse_card", sc.CurseCard)

	base := sc.BaseGenerator(defaults.Base())
	base.Min = request.GetInt("base_min", base.Min)
	base.Max = request.GetInt("base_max", base.Max)
	sc.Base = &scenario.BaseRange{Min: base.Min, Max: base.Max}

	p, err := sc.Prepare(defaults.SimConfig(), base)
	if err != nil {
		return simSetup{}, mcp.NewToolResultErrorf("Invalid request: %v", err)
	}

	return simSetup{
		deck: p.Deck,
		base: p.Base,
		cfg:  p.Config,
		view: buildDeckView(p, sc.Name),
	}, nil
}

func buildDeckView(p scenario.Prepared, scenarioName string) DeckView {
	view := DeckView{
		Cards:    []string{},
		Immune:   p.Deck.Immune(),
		Options:  []string{},
		Skipped:  p.Skipped,
		Scenario: scenarioName,
	}
	for _, c := range p.Deck.Cards() {
		view.Cards = append(view.Cards, c.String())
	}
	for _, u := range p.Deck.Options() {
		view.Options = append(view.Options, u.String())
	}
	return view
}

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
