package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shamsdash/shams/internal/calc"
	"github.com/shamsdash/shams/internal/model"
	"github.com/shamsdash/shams/internal/services/explanation"
	"github.com/shamsdash/shams/internal/services/projects"
)

type calcResponse struct {
	Result      any    `json:"result"`
	Explanation string `json:"explanation"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}

// calcError maps the calculator error kinds onto HTTP statuses.
func calcError(w http.ResponseWriter, err error) string {
	switch {
	case errors.Is(err, calc.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return "invalid_input"
	case errors.Is(err, calc.ErrSizeUnavailable):
		writeError(w, http.StatusUnprocessableEntity, "size_unavailable", err.Error())
		return "size_unavailable"
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return "internal"
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "invalid_input", "POST required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body: "+err.Error())
		return false
	}
	return true
}

// ---------- calculators ----------

type financialRequest struct {
	model.SystemSpec
	Location  model.Location `json:"location"`
	CostPerKw float64        `json:"cost_per_kw"`
	KwhPrice  float64        `json:"kwh_price"`
	Source    string         `json:"source"` // "" | "climate" | "history"
	Locale    string         `json:"locale"`
}

func (a *API) handleFinancial(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req financialRequest
	if !decodeBody(w, r, &req) {
		a.metrics.observe("financial", "invalid_input", start)
		return
	}

	var (
		res *model.FinancialViabilityResult
		err error
	)
	switch req.Source {
	case "", "climate":
		res, err = calc.FinancialViability(a.cfg.Climate, req.SystemSpec, req.Location, req.CostPerKw, req.KwhPrice)
	case "history":
		res, err = a.financialFromHistory(r, req)
	default:
		writeError(w, http.StatusBadRequest, "invalid_input", "source must be climate or history")
		a.metrics.observe("financial", "invalid_input", start)
		return
	}
	if err != nil {
		if errors.Is(err, errHistoryUnavailable) {
			writeError(w, http.StatusBadGateway, "external_service_failure", err.Error())
			a.metrics.observe("financial", "external_service_failure", start)
			return
		}
		a.metrics.observe("financial", calcError(w, err), start)
		return
	}

	facts := explanation.Facts{
		Calculator: "financial",
		Locale:     req.Locale,
		Values: map[string]float64{
			"size_kw":               req.SizeKw,
			"annual_production_kwh": res.TotalAnnualProduction,
			"annual_revenue":        res.AnnualRevenue,
			"total_investment":      res.TotalInvestment,
		},
	}
	if res.PaybackPeriod.Unreachable {
		facts.Labels = map[string]string{"payback": "unreachable"}
	} else {
		facts.Values["payback_months"] = float64(res.PaybackPeriod.Months)
	}

	writeJSON(w, http.StatusOK, calcResponse{Result: res, Explanation: a.explain(r.Context(), facts)})
	a.metrics.observe("financial", "ok", start)
}

var errHistoryUnavailable = errors.New("historical irradiation unavailable")

func (a *API) financialFromHistory(r *http.Request, req financialRequest) (*model.FinancialViabilityResult, error) {
	if a.cfg.History == nil {
		return nil, errHistoryUnavailable
	}
	entry, ok := a.cfg.Climate.Lookup(req.Location)
	if !ok {
		return nil, errors.Join(calc.ErrInvalidInput, errors.New("unknown location "+string(req.Location)))
	}
	whPerDay, err := a.cfg.History.HistoricalMonthly(r.Context(), entry.Latitude, entry.Longitude)
	if err != nil {
		return nil, errors.Join(errHistoryUnavailable, err)
	}
	sunHours := make([]float64, len(whPerDay))
	for i, wh := range whPerDay {
		sunHours[i] = wh / 1000 // Wh/m²/day -> kWh/m²/day
	}
	return calc.FinancialViabilityFromSunHours(req.SystemSpec, sunHours, req.CostPerKw, req.KwhPrice)
}

func (a *API) handlePanels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req struct {
		model.PanelCountInput
		Locale string `json:"locale"`
	}
	if !decodeBody(w, r, &req) {
		a.metrics.observe("panels", "invalid_input", start)
		return
	}
	res, err := calc.PanelsFromConsumption(req.PanelCountInput)
	if err != nil {
		a.metrics.observe("panels", calcError(w, err), start)
		return
	}
	facts := explanation.Facts{
		Calculator: "panels",
		Locale:     req.Locale,
		Values: map[string]float64{
			"total_kwh":       res.TotalKwh,
			"daily_kwh":       res.DailyKwh,
			"required_panels": float64(res.RequiredPanels),
			"panel_wattage":   req.PanelWattage,
		},
	}
	writeJSON(w, http.StatusOK, calcResponse{Result: res, Explanation: a.explain(r.Context(), facts)})
	a.metrics.observe("panels", "ok", start)
}

func (a *API) handleStrings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req struct {
		model.StringConfigInput
		Locale string `json:"locale"`
	}
	if !decodeBody(w, r, &req) {
		a.metrics.observe("strings", "invalid_input", start)
		return
	}
	res, err := calc.SolveStringConfiguration(req.StringConfigInput, a.cfg.Limits)
	if err != nil {
		a.metrics.observe("strings", calcError(w, err), start)
		return
	}
	facts := explanation.Facts{
		Calculator: "strings",
		Locale:     req.Locale,
		Values: map[string]float64{
			"panels_per_string": float64(res.PanelsPerString),
			"parallel_strings":  float64(res.ParallelStrings),
			"array_voltage_v":   res.ArrayVoltageV,
			"array_current_a":   res.ArrayCurrentA,
		},
	}
	writeJSON(w, http.StatusOK, calcResponse{Result: res, Explanation: a.explain(r.Context(), facts)})
	a.metrics.observe("strings", "ok", start)
}

func (a *API) handleWire(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req struct {
		model.WireSizingInput
		Locale string `json:"locale"`
	}
	if !decodeBody(w, r, &req) {
		a.metrics.observe("wire", "invalid_input", start)
		return
	}
	res, err := calc.WireSize(req.WireSizingInput)
	if err != nil {
		a.metrics.observe("wire", calcError(w, err), start)
		return
	}
	facts := explanation.Facts{
		Calculator: "wire",
		Locale:     req.Locale,
		Values: map[string]float64{
			"recommended_wire_size_mm2": res.RecommendedWireSizeMM2,
			"actual_voltage_drop_v":     res.ActualVoltageDropV,
			"power_loss_w":              res.PowerLossW,
			"distance_m":                req.DistanceM,
		},
	}
	writeJSON(w, http.StatusOK, calcResponse{Result: res, Explanation: a.explain(r.Context(), facts)})
	a.metrics.observe("wire", "ok", start)
}

func (a *API) handleArea(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req struct {
		model.AreaSizingInput
		Locale string `json:"locale"`
	}
	if !decodeBody(w, r, &req) {
		a.metrics.observe("area", "invalid_input", start)
		return
	}
	res, err := calc.SystemFromArea(req.AreaSizingInput)
	if err != nil {
		a.metrics.observe("area", calcError(w, err), start)
		return
	}
	facts := explanation.Facts{
		Calculator: "area",
		Locale:     req.Locale,
		Values: map[string]float64{
			"area_m2":     req.AreaM2,
			"panel_count": float64(res.PanelCount),
			"size_kw":     res.SizeKw,
		},
	}
	writeJSON(w, http.StatusOK, calcResponse{Result: res, Explanation: a.explain(r.Context(), facts)})
	a.metrics.observe("area", "ok", start)
}

// ---------- auth & projects ----------

func (a *API) store(w http.ResponseWriter) *projects.Client {
	if a.cfg.Projects == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence_failure", "project store not configured")
		return nil
	}
	return a.cfg.Projects
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) handleSignUp(w http.ResponseWriter, r *http.Request) {
	store := a.store(w)
	if store == nil {
		return
	}
	var c credentials
	if !decodeBody(w, r, &c) {
		return
	}
	s, err := store.SignUp(r.Context(), c.Email, c.Password)
	if err != nil {
		writeError(w, http.StatusBadGateway, "persistence_failure", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *API) handleSignIn(w http.ResponseWriter, r *http.Request) {
	store := a.store(w)
	if store == nil {
		return
	}
	var c credentials
	if !decodeBody(w, r, &c) {
		return
	}
	s, err := store.SignIn(r.Context(), c.Email, c.Password)
	if err != nil {
		writeError(w, http.StatusBadGateway, "persistence_failure", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *API) handleSignOut(w http.ResponseWriter, r *http.Request) {
	store := a.store(w)
	if store == nil {
		return
	}
	if err := store.SignOut(r.Context(), bearerToken(r)); err != nil {
		writeError(w, http.StatusBadGateway, "persistence_failure", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleProjects(w http.ResponseWriter, r *http.Request) {
	store := a.store(w)
	if store == nil {
		return
	}
	token := bearerToken(r)
	switch r.Method {
	case http.MethodGet:
		list, err := store.ListProjects(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusBadGateway, "persistence_failure", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var rec model.ProjectRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body: "+err.Error())
			return
		}
		saved, err := store.SaveProject(r.Context(), token, rec)
		if err != nil {
			writeError(w, http.StatusBadGateway, "persistence_failure", err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	default:
		writeError(w, http.StatusMethodNotAllowed, "invalid_input", "GET or POST required")
	}
}

func (a *API) handleProjectByID(w http.ResponseWriter, r *http.Request) {
	store := a.store(w)
	if store == nil {
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "invalid_input", "DELETE required")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/projects/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "project id required")
		return
	}
	if err := store.DeleteProject(r.Context(), bearerToken(r), id); err != nil {
		writeError(w, http.StatusBadGateway, "persistence_failure", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
