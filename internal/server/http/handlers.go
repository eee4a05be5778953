package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBodySize bounds request bodies at 1 MB.
const maxRequestBodySize = 1 << 20

var validate = validator.New()

// decodeAndValidate reads a bounded JSON request body into dst and applies
// its validation tags. It reports whether decoding succeeded; on failure the
// error response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// getWordCloud handles GET /api/wordcloud.
func (s *Server) getWordCloud(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.WordCloud(r.Context()))
}

// getTrending handles GET /api/trending.
func (s *Server) getTrending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Trending(r.Context()))
}

// getResearchers handles GET /api/researchers. All query filters are
// optional and combine with AND semantics.
func (s *Server) getResearchers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := s.svc.Researchers(r.Context(), q.Get("topic"), q.Get("institution"), q.Get("country"))
	writeJSON(w, http.StatusOK, result)
}

// postChat handles POST /api/chat.
func (s *Server) postChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Chat(r.Context(), req.Query, req.UserBackground))
}

// postRSTIAdvisor handles POST /api/rsti-advisor.
func (s *Server) postRSTIAdvisor(w http.ResponseWriter, r *http.Request) {
	var req rstiAdvisorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	result := s.svc.Advise(r.Context(), req.RSTIType, req.Major, payloadToMessages(req.ConversationHistory), req.Choice)
	writeJSON(w, http.StatusOK, result)
}

// getLootbox handles GET /api/lootbox.
func (s *Server) getLootbox(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Lootbox(r.Context()))
}

// postLifePath handles POST /api/lifepath.
func (s *Server) postLifePath(w http.ResponseWriter, r *http.Request) {
	var req lifePathRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.svc.LifePath(r.Context(), lifePathRequestToProfile(req)))
}
