package httpapi

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check(r.Context()))
}

func (s *Server) handleUserCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.users.CheckConnection(r.Context()))
}
