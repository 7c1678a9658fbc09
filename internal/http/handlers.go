package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cuppa/internal/core"
	"cuppa/internal/derive"
	"cuppa/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.habits.BuildDashboard(r.Context()))
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	logs := s.habits.Logs(r.Context())
	if logs == nil {
		logs = []core.DrinkLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var in core.LogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := s.habits.LogDrink(r.Context(), in)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to log drink", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log drink")
		return
	}
	s.overviewCache.Purge()

	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := s.habits.ClearLogs(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear logs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear logs")
		return
	}
	s.overviewCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

// overviewRef resolves the reference instant for the overview window: an
// explicit date param wins, then year+month (first of month), then now.
func overviewRef(r *http.Request) time.Time {
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("date")); v != "" {
		if t, err := core.ParseDate(core.NormalizeDate(v)); err == nil {
			return t
		}
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if year == now.Year() && month == int(now.Month()) {
		return now
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	window := derive.ParseWindow(r.URL.Query().Get("window"))
	ref := overviewRef(r)

	key := string(window) + ":" + core.FormatDate(ref)
	if ov, ok := s.overviewCache.Get(key); ok {
		writeJSON(w, http.StatusOK, ov)
		return
	}

	ov := s.habits.BuildOverview(r.Context(), window, ref)
	s.overviewCache.Set(key, ov)
	writeJSON(w, http.StatusOK, ov)
}

type budgetResponse struct {
	HasBudget bool    `json:"hasBudget"`
	Budget    float64 `json:"budget"`
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, ok := s.habits.Budget(r.Context())
	writeJSON(w, http.StatusOK, budgetResponse{HasBudget: ok, Budget: budget})
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.habits.SetBudget(r.Context(), body.Value); err != nil {
		slog.ErrorContext(r.Context(), "Failed to set budget", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set budget")
		return
	}

	budget, ok := s.habits.Budget(r.Context())
	writeJSON(w, http.StatusOK, budgetResponse{HasBudget: ok, Budget: budget})
}

func (s *Server) handleGetCoins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"coins": s.habits.Coins(r.Context())})
}

func (s *Server) handleResetCoins(w http.ResponseWriter, r *http.Request) {
	if err := s.habits.ResetCoins(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to reset coins", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset coins")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"coins": s.habits.Coins(r.Context())})
}

func (s *Server) handleListCups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.habits.ListCups(r.Context()))
}

func (s *Server) handlePurchaseCup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cup id")
		return
	}

	switch err := s.habits.PurchaseCup(r.Context(), id); {
	case err == nil:
		writeJSON(w, http.StatusOK, s.habits.ListCups(r.Context()))
	case errors.Is(err, services.ErrUnknownCup):
		writeError(w, http.StatusNotFound, "unknown cup")
	case errors.Is(err, services.ErrCupAlreadyOwned):
		writeError(w, http.StatusConflict, "cup already owned")
	case errors.Is(err, services.ErrInsufficientCoins):
		writeError(w, http.StatusUnprocessableEntity, "insufficient coins")
	default:
		slog.ErrorContext(r.Context(), "Failed to purchase cup", "cup", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to purchase cup")
	}
}

func (s *Server) handleSelectCup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch err := s.habits.SelectCup(r.Context(), body.ID); {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]int{"currentCup": body.ID})
	case errors.Is(err, services.ErrCupNotOwned):
		writeError(w, http.StatusConflict, "cup not owned")
	default:
		slog.ErrorContext(r.Context(), "Failed to select cup", "cup", body.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to select cup")
	}
}
