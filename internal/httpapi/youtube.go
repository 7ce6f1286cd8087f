package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"vtubemusic/internal/logging"
	"vtubemusic/internal/youtube"
)

func (s *Server) handleVideoMetadata(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	videoID := strings.TrimSpace(query.Get("videoId"))
	rawURL := strings.TrimSpace(query.Get("url"))

	var (
		video youtube.Video
		err   error
	)
	switch {
	case videoID != "":
		video, err = s.resolver.Video(r.Context(), videoID)
	case rawURL != "":
		video, err = s.resolver.VideoFromURL(r.Context(), rawURL)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "videoId is required"})
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("video_id", videoID).Str("url", rawURL).Msg("video lookup failed")
		writeResolverError(w, err, "failed to fetch video metadata")
		return
	}

	writeJSON(w, http.StatusOK, video)
}

func (s *Server) handleChannelMetadata(w http.ResponseWriter, r *http.Request) {
	channelURL := strings.TrimSpace(r.URL.Query().Get("channelUrl"))
	if channelURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "channelUrl is required"})
		return
	}

	channel, err := s.resolver.Channel(r.Context(), channelURL)
	if err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Str("channel_url", channelURL).Msg("channel lookup failed")
		writeResolverError(w, err, "failed to fetch channel metadata")
		return
	}

	writeJSON(w, http.StatusOK, channel)
}

func writeResolverError(w http.ResponseWriter, err error, fetchMessage string) {
	switch {
	case errors.Is(err, youtube.ErrInvalidVideoURL):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "not a valid video url"})
	case errors.Is(err, youtube.ErrInvalidChannelURL):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "not a valid channel url"})
	case errors.Is(err, youtube.ErrVideoNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "video not found"})
	case errors.Is(err, youtube.ErrChannelNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "channel not found"})
	case errors.Is(err, youtube.ErrMissingAPIKey):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "YOUTUBE_API_KEY is not configured"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fetchMessage})
	}
}
