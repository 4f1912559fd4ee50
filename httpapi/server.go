package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"sportsbook/domain/entities"
	"sportsbook/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Server is the thin JSON transport over the wager service. All business
// behavior lives in the service layer; this layer only decodes, authorizes
// and maps errors to status codes.
type Server struct {
	wagers interfaces.WagerService
	auth   interfaces.Authorizer
}

// NewServer creates a new API server
func NewServer(wagers interfaces.WagerService, auth interfaces.Authorizer) *Server {
	return &Server{wagers: wagers, auth: auth}
}

// Router builds the HTTP handler with authorization applied to every route
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bets", s.handleBets)           // POST place, GET list
	mux.HandleFunc("/bets/claim", s.claimBets)      // POST
	mux.HandleFunc("/bets/", s.cancelBet)           // DELETE /bets/{id}
	mux.HandleFunc("/balance", s.getBalance)        // GET
	mux.HandleFunc("/balance/deposit", s.deposit)   // POST
	mux.HandleFunc("/balance/withdraw", s.withdraw) // POST
	return s.authorize(mux)
}

// authorize verifies the bearer token grants access to act as the uid in the
// request before anything reaches the engine
func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user", "X-User-ID header is required")
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if err := s.auth.Authorize(r.Context(), token, uid); err != nil {
			writeError(w, http.StatusUnauthorized, "not_authorized", "token does not grant access to this user")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUID(r.Context(), uid)))
	})
}

func (s *Server) handleBets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.placeBet(w, r)
	case http.MethodGet:
		s.listBets(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount is not a valid decimal")
		return
	}

	wager, err := s.wagers.PlaceBet(r.Context(), uidFrom(r.Context()), amount, req.FixtureID, entities.BetType(req.BetType), req.Selection)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, PlaceBetResponse{
		WagerID: wager.ID,
		Status:  string(wager.Status),
	})
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	wagers, err := s.wagers.ListBets(r.Context(), uidFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]WagerResponse, 0, len(wagers))
	for _, wager := range wagers {
		out = append(out, toWagerResponse(wager))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) claimBets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	settled, err := s.wagers.ClaimBets(r.Context(), uidFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ClaimBetsResponse{Settled: settled})
}

func (s *Server) cancelBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/bets/"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "wager id must be an integer")
		return
	}

	if err := s.wagers.CancelBet(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	balance, err := s.wagers.GetBalance(r.Context(), uidFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{Balance: balance.String()})
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	s.fundsOp(w, r, s.wagers.Deposit)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	s.fundsOp(w, r, s.wagers.Withdraw)
}

func (s *Server) fundsOp(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, decimal.Decimal) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount is not a valid decimal")
		return
	}

	if err := op(r.Context(), uidFrom(r.Context()), amount); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps domain error kinds onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, entities.ErrInvalidSelection):
		writeError(w, http.StatusBadRequest, "invalid_selection", err.Error())
	case errors.Is(err, entities.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, entities.ErrWageringClosed):
		writeError(w, http.StatusConflict, "wagering_closed", err.Error())
	case errors.Is(err, entities.ErrNoOddsAvailable):
		writeError(w, http.StatusConflict, "no_odds_available", err.Error())
	case errors.Is(err, entities.ErrStatusAlreadyTerminal):
		writeError(w, http.StatusConflict, "already_settled", err.Error())
	case errors.Is(err, entities.ErrWagerNotFound):
		writeError(w, http.StatusNotFound, "wager_not_found", err.Error())
	case errors.Is(err, entities.ErrFixtureNotFound):
		writeError(w, http.StatusNotFound, "fixture_not_found", err.Error())
	case errors.Is(err, entities.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
	default:
		log.WithField("error", err).Error("Internal error handling request")
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

type uidKey struct{}

func withUID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, uidKey{}, uid)
}

func uidFrom(ctx context.Context) int64 {
	uid, _ := ctx.Value(uidKey{}).(int64)
	return uid
}
