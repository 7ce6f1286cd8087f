package httpapi

import (
	"net/http"

	"vtubemusic/internal/app/songs"
)

type addSongRequest struct {
	VID        string  `json:"vId"`
	ArtistName string  `json:"artist_name"`
	UploadedAt *string `json:"uploaded_at"`
	Type       *string `json:"type"`
	Image      *string `json:"image"`
	Link       *string `json:"link"`
	Title      string  `json:"title"`
	Name       string  `json:"name"`
}

func (s *Server) handleSongCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.songs.CheckConnection(r.Context()))
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	var req addSongRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := s.songs.Add(r.Context(), songs.AddInput{
		VID:        req.VID,
		ArtistName: req.ArtistName,
		UploadedAt: req.UploadedAt,
		Type:       req.Type,
		Image:      req.Image,
		Link:       req.Link,
		Title:      req.Title,
		Name:       req.Name,
	})
	writeJSON(w, http.StatusCreated, result)
}
