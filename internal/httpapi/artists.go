package httpapi

import (
	"net/http"

	"vtubemusic/internal/app/artists"
)

type addArtistRequest struct {
	Name         string     `json:"name"`
	GroupID      flexibleID `json:"group_id"`
	PlatformLink *string    `json:"platform_link"`
	PlatformID   *string    `json:"platform_id"`
	YoutubeLink  *string    `json:"youtube_link"`
}

type thumbnailRequest struct {
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	writeJSON(w, http.StatusOK, s.artists.Get(r.Context(), name))
}

func (s *Server) handleArtistCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.artists.CheckConnection(r.Context()))
}

func (s *Server) handleAddArtist(w http.ResponseWriter, r *http.Request) {
	var req addArtistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := s.artists.Add(r.Context(), artists.AddInput{
		Name:         req.Name,
		GroupID:      string(req.GroupID),
		PlatformLink: req.PlatformLink,
		PlatformID:   req.PlatformID,
		YoutubeLink:  req.YoutubeLink,
	})
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleArtistThumbnail(w http.ResponseWriter, r *http.Request) {
	var req thumbnailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusCreated, s.artists.UpdateThumbnail(r.Context(), req.Name, req.Thumbnail))
}
