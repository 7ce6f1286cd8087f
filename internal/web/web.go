// Package web serves the server-rendered catalog pages and the admin forms
// used to register groups, artists, songs and thumbnails.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"vtubemusic/internal/app/artists"
	"vtubemusic/internal/app/groups"
	"vtubemusic/internal/app/songs"
	"vtubemusic/internal/logging"
	"vtubemusic/internal/youtube"
)

//go:embed templates/*.html
var templatesFS embed.FS

// GroupService is the group surface the pages use.
type GroupService interface {
	List(ctx context.Context, platformID string) groups.ListResult
	Add(ctx context.Context, in groups.AddInput) groups.AddResult
}

// ArtistService is the artist surface the pages use.
type ArtistService interface {
	Get(ctx context.Context, name string) artists.Result
	Add(ctx context.Context, in artists.AddInput) artists.Result
	UpdateThumbnail(ctx context.Context, name, thumbnail string) artists.Result
}

// SongService is the song surface the pages use.
type SongService interface {
	Add(ctx context.Context, in songs.AddInput) songs.Result
}

// Resolver fetches metadata for the admin forms.
type Resolver interface {
	Video(ctx context.Context, videoID string) (youtube.Video, error)
	Channel(ctx context.Context, rawURL string) (youtube.Channel, error)
}

var pageFiles = []string{
	"home.html",
	"artist.html",
	"admin_group.html",
	"admin_artist.html",
	"admin_song.html",
	"admin_thumbnail.html",
}

// Handler renders every page. Each request fetches its own data.
type Handler struct {
	groups   GroupService
	artists  ArtistService
	songs    SongService
	resolver Resolver
	pages    map[string]*template.Template
}

// New parses the embedded templates and returns a ready Handler.
func New(groups GroupService, artists ArtistService, songs SongService, resolver Resolver) (*Handler, error) {
	funcs := template.FuncMap{
		"platformLabel":    PlatformLabel,
		"songTypeLabel":    SongTypeLabel,
		"formatUploadDate": FormatUploadDate,
		"formatCount":      FormatCount,
		"deref":            deref,
		"initial":          initial,
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		tmpl, err := template.New(file).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		pages[file] = tmpl
	}

	return &Handler{
		groups:   groups,
		artists:  artists,
		songs:    songs,
		resolver: resolver,
		pages:    pages,
	}, nil
}

// Register mounts the pages on router.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/", h.handleHome).Methods(http.MethodGet)
	router.HandleFunc("/artists", h.handleArtist).Methods(http.MethodGet)
	router.HandleFunc("/artists/{name}", h.handleArtist).Methods(http.MethodGet)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/group", h.handleAdminGroup).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/artist", h.handleAdminArtist).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/song", h.handleAdminSong).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/thumbnail", h.handleAdminThumbnail).Methods(http.MethodGet, http.MethodPost)
}

// Notice is the inline outcome banner shown after a form submission.
type Notice struct {
	Kind    string
	Message string
}

func successNotice(format string, args ...any) *Notice {
	return &Notice{Kind: "success", Message: fmt.Sprintf(format, args...)}
}

func errorNotice(format string, args ...any) *Notice {
	return &Notice{Kind: "error", Message: fmt.Sprintf(format, args...)}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := h.pages[page]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("page", page).Msg("render page failed")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
