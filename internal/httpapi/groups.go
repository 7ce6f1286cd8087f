package httpapi

import (
	"net/http"
	"strings"

	"vtubemusic/internal/app/groups"
)

type addGroupRequest struct {
	Name       string  `json:"name"`
	Link       *string `json:"link"`
	PlatformID *string `json:"platform_id"`
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	platformID := strings.TrimSpace(r.URL.Query().Get("platform_id"))
	writeJSON(w, http.StatusOK, s.groups.List(r.Context(), platformID))
}

func (s *Server) handleGroupCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.groups.CheckConnection(r.Context()))
}

func (s *Server) handleAddGroup(w http.ResponseWriter, r *http.Request) {
	var req addGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := s.groups.Add(r.Context(), groups.AddInput{
		Name:       req.Name,
		Link:       req.Link,
		PlatformID: req.PlatformID,
	})
	writeJSON(w, http.StatusCreated, result)
}
