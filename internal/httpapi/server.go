package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"vtubemusic/internal/app/artists"
	"vtubemusic/internal/app/envelope"
	"vtubemusic/internal/app/groups"
	"vtubemusic/internal/app/health"
	"vtubemusic/internal/app/songs"
	"vtubemusic/internal/youtube"
)

// UserService captures the user table check.
type UserService interface {
	CheckConnection(ctx context.Context) envelope.Connection
}

// GroupService describes group workflows.
type GroupService interface {
	CheckConnection(ctx context.Context) envelope.Connection
	List(ctx context.Context, platformID string) groups.ListResult
	Add(ctx context.Context, in groups.AddInput) groups.AddResult
}

// ArtistService describes artist workflows.
type ArtistService interface {
	CheckConnection(ctx context.Context) envelope.Connection
	Get(ctx context.Context, name string) artists.Result
	Add(ctx context.Context, in artists.AddInput) artists.Result
	UpdateThumbnail(ctx context.Context, name, thumbnail string) artists.Result
}

// SongService describes song workflows.
type SongService interface {
	CheckConnection(ctx context.Context) envelope.Connection
	Add(ctx context.Context, in songs.AddInput) songs.Result
}

// HealthService reports database reachability.
type HealthService interface {
	Check(ctx context.Context) health.Result
}

// MetadataResolver looks up video and channel metadata.
type MetadataResolver interface {
	Video(ctx context.Context, videoID string) (youtube.Video, error)
	VideoFromURL(ctx context.Context, rawURL string) (youtube.Video, error)
	Channel(ctx context.Context, rawURL string) (youtube.Channel, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users    UserService
	groups   GroupService
	artists  ArtistService
	songs    SongService
	health   HealthService
	resolver MetadataResolver
}

// New configures a Server with the given services.
func New(
	users UserService,
	groups GroupService,
	artists ArtistService,
	songs SongService,
	health HealthService,
	resolver MetadataResolver,
) *Server {
	return &Server{
		users:    users,
		groups:   groups,
		artists:  artists,
		songs:    songs,
		health:   health,
		resolver: resolver,
	}
}

// Register mounts the JSON API on router.
func (s *Server) Register(router *mux.Router) {
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	router.HandleFunc("/user/check", s.handleUserCheck).Methods(http.MethodGet)

	router.HandleFunc("/group", s.handleListGroups).Methods(http.MethodGet)
	router.HandleFunc("/group/check", s.handleGroupCheck).Methods(http.MethodGet)
	router.HandleFunc("/group/add", s.handleAddGroup).Methods(http.MethodPost)

	router.HandleFunc("/artist", s.handleGetArtist).Methods(http.MethodGet)
	router.HandleFunc("/artist/check", s.handleArtistCheck).Methods(http.MethodGet)
	router.HandleFunc("/artist/add", s.handleAddArtist).Methods(http.MethodPost)
	router.HandleFunc("/artist/thumbnail", s.handleArtistThumbnail).Methods(http.MethodPost)

	router.HandleFunc("/song/check", s.handleSongCheck).Methods(http.MethodGet)
	router.HandleFunc("/song/add", s.handleAddSong).Methods(http.MethodPost)

	router.HandleFunc("/api/youtube", s.handleVideoMetadata).Methods(http.MethodGet)
	router.HandleFunc("/api/youtube/channel", s.handleChannelMetadata).Methods(http.MethodGet)
}

// Routes returns a router serving only the JSON API.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	s.Register(router)
	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

// flexibleID accepts an identifier sent either as a JSON string or number.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
