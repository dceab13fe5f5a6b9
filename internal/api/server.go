// Package api provides the HTTP API for observing the simulation.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
// See design doc Section 8.4.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/persistence"
	"github.com/talgya/statecraft/internal/world"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Sim      *engine.Simulation
	Clock    *engine.Clock
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	historyLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/nations", s.handleNations)
	mux.HandleFunc("/api/v1/nation/", s.handleNationDetail)
	mux.HandleFunc("/api/v1/prices", s.handlePrices)
	mux.HandleFunc("/api/v1/prices/history", RateLimitMiddleware(historyLimiter, s.handlePriceHistory))
	mux.HandleFunc("/api/v1/commodities", s.handleCommodities)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are always
// allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
// GET requests pass through.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled (no STATECRAFT_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	wld := s.Sim.World

	bankrupt := 0
	totalPop := 0.0
	for i := range wld.Nations {
		if wld.Nations[i].InBankruptcy(wld.Day) {
			bankrupt++
		}
		totalPop += wld.NationPopulation(world.NationID(i))
	}

	factories := 0
	for i := range wld.Factories {
		if wld.Factories[i].Live {
			factories++
		}
	}

	writeJSON(w, map[string]any{
		"name":             "Statecraft",
		"day":              wld.Day,
		"date":             engine.SimDate(wld.Day).Format("2 January 2006"),
		"speed":            s.Clock.Speed,
		"running":          s.Clock.Running,
		"nations":          len(wld.Nations),
		"provinces":        len(wld.Provinces),
		"population":       totalPop,
		"world_gdp":        s.Sim.WorldGDP(),
		"price_level":      s.Sim.MeanPriceLevel(),
		"factories":        factories,
		"bankrupt_nations": bankrupt,
	})
}

func (s *Server) handleNations(w http.ResponseWriter, r *http.Request) {
	wld := s.Sim.World

	type nationSummary struct {
		ID         int     `json:"id"`
		Name       string  `json:"name"`
		Rank       int     `json:"rank"`
		Civilized  bool    `json:"civilized"`
		GreatPower bool    `json:"great_power"`
		Treasury   float64 `json:"treasury"`
		GDP        float64 `json:"gdp"`
		Population float64 `json:"population"`
		Bankrupt   bool    `json:"bankrupt"`
	}

	result := make([]nationSummary, 0, len(wld.Nations))
	for i := range wld.Nations {
		n := &wld.Nations[i]
		result = append(result, nationSummary{
			ID:         i,
			Name:       n.Name,
			Rank:       n.Rank,
			Civilized:  n.Civilized,
			GreatPower: n.GreatPower,
			Treasury:   n.Treasury,
			GDP:        n.GDP,
			Population: wld.NationPopulation(world.NationID(i)),
			Bankrupt:   n.InBankruptcy(wld.Day),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Rank < result[j].Rank })
	writeJSON(w, result)
}

func (s *Server) handleNationDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 {
		http.Error(w, "missing nation id", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(parts[4])
	if err != nil || id < 0 || id >= len(s.Sim.World.Nations) {
		http.Error(w, "invalid nation id", http.StatusBadRequest)
		return
	}

	wld := s.Sim.World
	n := &wld.Nations[id]

	writeJSON(w, map[string]any{
		"id":          id,
		"name":        n.Name,
		"rank":        n.Rank,
		"civilized":   n.Civilized,
		"great_power": n.GreatPower,
		"treasury":    n.Treasury,
		"gdp":         n.GDP,
		"population":  wld.NationPopulation(world.NationID(id)),
		"bankrupt":    n.InBankruptcy(wld.Day),
		"bad_debtor":  n.BadDebtor(wld.Day),
		"sliders": map[string]any{
			"land_spending":           n.LandSpending,
			"naval_spending":          n.NavalSpending,
			"construction_spending":   n.ConstructionSpending,
			"education_spending":      n.EducationSpending,
			"administrative_spending": n.AdministrativeSpending,
			"social_spending":         n.SocialSpending,
			"military_spending":       n.MilitarySpending,
			"domestic_investment":     n.DomesticInvestment,
			"tariff_rate":             n.TariffRate,
			"poor_tax":                n.PoorTax,
			"middle_tax":              n.MiddleTax,
			"rich_tax":                n.RichTax,
		},
		"fiscal": map[string]any{
			"tax_income":     n.TaxIncome,
			"tariff_income":  n.TariffIncome,
			"interest_paid":  n.InterestPaid,
			"spending_scale": n.SpendingScale,
			"poor_income":    n.PoorIncome,
			"middle_income":  n.MiddleIncome,
			"rich_income":    n.RichIncome,
		},
		"effective": map[string]any{
			"land_spending":         n.EffectiveLandSpending,
			"naval_spending":        n.EffectiveNavalSpending,
			"construction_spending": n.EffectiveConstructionSpending,
			"overseas_satisfaction": n.OverseasSatisfaction,
		},
	})
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	wld := s.Sim.World

	type priceEntry struct {
		Commodity string  `json:"commodity"`
		Price     float64 `json:"price"`
		BaseCost  float64 `json:"base_cost"`
		Supply    float64 `json:"supply"`
		Demand    float64 `json:"demand"`
	}

	result := make([]priceEntry, 0, len(wld.Commodities)-1)
	for c := 1; c < len(wld.Commodities); c++ {
		result = append(result, priceEntry{
			Commodity: wld.Commodities[c].Name,
			Price:     wld.CurrentPrice[c],
			BaseCost:  wld.Commodities[c].BaseCost,
			Supply:    wld.TotalProduction[c],
			Demand:    wld.TotalRealDemand[c],
		})
	}
	writeJSON(w, result)
}

// handlePriceHistory returns the bounded in-memory price ring per commodity,
// oldest first.
func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	wld := s.Sim.World

	result := make(map[string][]float64, len(wld.Commodities)-1)
	for c := 1; c < len(wld.Commodities); c++ {
		series := make([]float64, 0, world.PriceHistoryDays)
		for d := 0; d < world.PriceHistoryDays; d++ {
			slot := (wld.PriceHistoryHead + d) % world.PriceHistoryDays
			series = append(series, wld.PriceHistory[c][slot])
		}
		result[wld.Commodities[c].Name] = series
	}
	writeJSON(w, result)
}

func (s *Server) handleCommodities(w http.ResponseWriter, r *http.Request) {
	wld := s.Sim.World

	type commodityEntry struct {
		ID        int     `json:"id"`
		Name      string  `json:"name"`
		BaseCost  float64 `json:"base_cost"`
		RGOAmount float64 `json:"rgo_amount"`
		Money     bool    `json:"money"`
		Mine      bool    `json:"mine"`
		Overseas  bool    `json:"overseas"`
		Available bool    `json:"available"`
	}

	result := make([]commodityEntry, 0, len(wld.Commodities))
	for c := range wld.Commodities {
		def := &wld.Commodities[c]
		result = append(result, commodityEntry{
			ID:        c,
			Name:      def.Name,
			BaseCost:  def.BaseCost,
			RGOAmount: def.RGOAmount,
			Money:     def.Money,
			Mine:      def.Mine,
			Overseas:  def.Overseas,
			Available: def.AvailableFromStart,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := s.DB.RecentEvents(limit)
	if err != nil {
		slog.Error("events query failed", "error", err)
		writeJSON(w, []engine.Event{})
		return
	}
	if events == nil {
		events = []engine.Event{}
	}
	writeJSON(w, events)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Clock.Speed = req.Speed
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Clock.Speed})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	if err := s.DB.SaveDay(s.Sim); err != nil {
		slog.Error("snapshot failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"saved": true, "day": s.Sim.World.Day})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
