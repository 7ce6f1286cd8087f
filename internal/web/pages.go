package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"vtubemusic/internal/store"
)

type platformSection struct {
	Platform Platform
	Groups   []store.Group
}

type homePage struct {
	Platforms []Platform
	Selected  string
	Sections  []platformSection
	Error     string
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	selected := strings.TrimSpace(r.URL.Query().Get("platform_id"))
	data := homePage{Platforms: Platforms, Selected: selected}

	result := h.groups.List(r.Context(), selected)
	if !result.OK() {
		data.Error = result.Message
		h.render(w, r, http.StatusOK, "home.html", data)
		return
	}

	data.Sections = sectionsByPlatform(result.Groups)
	h.render(w, r, http.StatusOK, "home.html", data)
}

// sectionsByPlatform buckets groups into one carousel per platform, known
// platforms first, keeping the listing order inside each bucket.
func sectionsByPlatform(groups []store.Group) []platformSection {
	buckets := make(map[string][]store.Group)
	for _, g := range groups {
		id := deref(g.PlatformID)
		if PlatformLabel(id) == "Unknown" {
			id = ""
		}
		buckets[id] = append(buckets[id], g)
	}

	var sections []platformSection
	for _, p := range Platforms {
		if list := buckets[p.ID]; len(list) > 0 {
			sections = append(sections, platformSection{Platform: p, Groups: list})
		}
	}
	if list := buckets[""]; len(list) > 0 {
		sections = append(sections, platformSection{Platform: Platform{Label: "Unknown"}, Groups: list})
	}
	return sections
}

type artistPage struct {
	Name   string
	Artist *store.Artist
	Error  string
}

func (h *Handler) handleArtist(w http.ResponseWriter, r *http.Request) {
	// Names containing "/" only survive as a query parameter.
	name, ok := mux.Vars(r)["name"]
	if !ok {
		name = r.URL.Query().Get("name")
	}
	data := artistPage{Name: name}

	result := h.artists.Get(r.Context(), name)
	if !result.OK() || result.Artist == nil {
		data.Error = result.Message
		h.render(w, r, http.StatusNotFound, "artist.html", data)
		return
	}

	data.Artist = result.Artist
	h.render(w, r, http.StatusOK, "artist.html", data)
}
