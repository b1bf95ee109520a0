package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/logger"
	"github.com/jsphweid/chordex/model"
	"github.com/rs/cors"
)

// a request body never needs more than a few hundred bytes
const maxBodySize = 64 * 1024

type api struct {
	analyzer *chord.Analyzer
}

// NewRouter serves the chord API plus the websocket relay at /_ws.
func NewRouter(analyzer *chord.Analyzer, relay http.Handler, origins []string) http.Handler {
	a := &api{analyzer: analyzer}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", a.handleAnalyze).Methods("POST")
	router.HandleFunc("/catalog", a.handleCatalog).Methods("GET")
	if relay != nil {
		router.Handle("/_ws", relay).Methods("GET")
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.GetLogger().Warn("http: writing response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func (a *api) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var input model.AnalyzeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("could not parse request body: %v", err))
		return
	}

	matches := a.analyzer.Analyze(input.Notes)
	logger.GetLogger().Debug("http: analyzed", "notes", chord.CreateChordKey(input.Notes), "matches", len(matches))
	writeJSON(w, http.StatusOK, matches)
}

func (a *api) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.analyzer.Catalog())
}
