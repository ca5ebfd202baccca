package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"smartstay/internal/app"
	"smartstay/internal/domain"
	"smartstay/internal/search"
)

type Handlers struct {
	Q  *app.QueryService
	L  *app.ListingService
	AI domain.AssistClient
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/hotels/search", h.searchHotels)
	s.mux.Get("/api/hotels/{id}", h.getHotel)
	s.mux.Post("/api/hotels", h.createListing)
	s.mux.Put("/api/hotels/{id}", h.updateListing)
	s.mux.Delete("/api/hotels/{id}", h.deleteListing)
	s.mux.Post("/api/ai/plan-trip", h.forwardAI("plan-trip"))
	s.mux.Post("/api/ai/solo-trip", h.forwardAI("solo-trip"))
	s.mux.Post("/api/ai/chat", h.forwardAI("chat"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// searchHotels is the caller-facing surface of the relevance scorer:
// GET /api/hotels/search?query=&location=&maxPrice=&amenity=
func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	p := search.Params{
		Query:    strings.TrimSpace(qs.Get("query")),
		Location: strings.TrimSpace(qs.Get("location")),
		Amenity:  strings.TrimSpace(qs.Get("amenity")),
	}
	if mp := strings.TrimSpace(qs.Get("maxPrice")); mp != "" {
		f, err := strconv.ParseFloat(mp, 64)
		if err != nil || f < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid maxPrice", "maxPrice must be a non-negative number")
			return
		}
		p.MaxPrice = &f
	}

	out, err := h.Q.SearchHotels(r.Context(), p)
	if err != nil {
		log.Error().Err(err).Msg("hotel search failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "search failed",
		})
		return
	}

	hotels := out.Hotels
	if hotels == nil {
		hotels = []domain.ScoredListing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   out.Count,
		"hotels":  hotels,
	})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	resp, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}

	etag, body := calcETagAndBody(resp)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getHotel body")
	}
}

func (h *Handlers) createListing(w http.ResponseWriter, r *http.Request) {
	var l domain.Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a listing JSON object")
		return
	}
	if l.ID <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	if err := h.L.SaveListing(r.Context(), l); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid listing", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *Handlers) updateListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var l domain.Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a listing JSON object")
		return
	}
	l.ID = id // path wins over body
	if err := h.L.SaveListing(r.Context(), l); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid listing", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handlers) deleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.L.DeleteListing(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Delete failed", "could not delete listing")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// forwardAI validates the request body and relays it to the external AI
// travel service. The workflow engine behind that service is opaque here.
func (h *Handlers) forwardAI(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a non-empty JSON object")
			return
		}

		var (
			out map[string]any
			err error
		)
		switch route {
		case "plan-trip":
			if !hasStringField(body, "destination") {
				writeProblem(w, http.StatusBadRequest, "Invalid body", "destination is required")
				return
			}
			out, err = h.AI.PlanTrip(r.Context(), body)
		case "solo-trip":
			if !hasStringField(body, "destination") {
				writeProblem(w, http.StatusBadRequest, "Invalid body", "destination is required")
				return
			}
			out, err = h.AI.PlanSoloTrip(r.Context(), body)
		case "chat":
			if !hasStringField(body, "message") {
				writeProblem(w, http.StatusBadRequest, "Invalid body", "message is required")
				return
			}
			out, err = h.AI.Chat(r.Context(), body)
		}
		if err != nil {
			log.Error().Err(err).Str("route", route).Msg("AI service forward failed")
			writeProblem(w, http.StatusBadGateway, "Upstream failure", "AI service unavailable")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func hasStringField(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}
