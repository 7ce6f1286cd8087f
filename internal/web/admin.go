package web

import (
	"errors"
	"net/http"
	"strings"

	"vtubemusic/internal/app/artists"
	"vtubemusic/internal/app/groups"
	"vtubemusic/internal/app/songs"
	"vtubemusic/internal/store"
	"vtubemusic/internal/youtube"
)

type groupForm struct {
	Name       string
	Link       string
	PlatformID string
}

type adminGroupPage struct {
	Platforms []Platform
	Form      groupForm
	Notice    *Notice
}

func (h *Handler) handleAdminGroup(w http.ResponseWriter, r *http.Request) {
	data := adminGroupPage{Platforms: Platforms}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "admin_group.html", data)
		return
	}
	if err := r.ParseForm(); err != nil {
		data.Notice = errorNotice("could not read form: %v", err)
		h.render(w, r, http.StatusBadRequest, "admin_group.html", data)
		return
	}

	data.Form = groupForm{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Link:       strings.TrimSpace(r.PostFormValue("link")),
		PlatformID: strings.TrimSpace(r.PostFormValue("platform_id")),
	}
	if data.Form.PlatformID == "" {
		data.Notice = errorNotice("select a platform")
		h.render(w, r, http.StatusOK, "admin_group.html", data)
		return
	}

	result := h.groups.Add(r.Context(), groups.AddInput{
		Name:       data.Form.Name,
		Link:       optional(data.Form.Link),
		PlatformID: optional(data.Form.PlatformID),
	})
	if !result.OK() {
		data.Notice = errorNotice("%s", result.Message)
	} else {
		data.Notice = successNotice("saved group %q", result.Group.Name)
		data.Form = groupForm{}
	}
	h.render(w, r, http.StatusOK, "admin_group.html", data)
}

type artistForm struct {
	Name         string
	GroupID      string
	PlatformID   string
	PlatformLink string
	YoutubeLink  string
}

type adminArtistPage struct {
	Platforms []Platform
	Groups    []store.Group
	Form      artistForm
	Notice    *Notice
}

func (h *Handler) handleAdminArtist(w http.ResponseWriter, r *http.Request) {
	data := adminArtistPage{Platforms: Platforms}
	if list := h.groups.List(r.Context(), ""); list.OK() {
		data.Groups = list.Groups
	} else {
		data.Notice = errorNotice("could not load groups: %s", list.Message)
	}

	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "admin_artist.html", data)
		return
	}
	if err := r.ParseForm(); err != nil {
		data.Notice = errorNotice("could not read form: %v", err)
		h.render(w, r, http.StatusBadRequest, "admin_artist.html", data)
		return
	}

	data.Form = artistForm{
		Name:         strings.TrimSpace(r.PostFormValue("name")),
		GroupID:      strings.TrimSpace(r.PostFormValue("group_id")),
		PlatformID:   strings.TrimSpace(r.PostFormValue("platform_id")),
		PlatformLink: strings.TrimSpace(r.PostFormValue("platform_link")),
		YoutubeLink:  strings.TrimSpace(r.PostFormValue("youtube_link")),
	}

	result := h.artists.Add(r.Context(), artists.AddInput{
		Name:         data.Form.Name,
		GroupID:      data.Form.GroupID,
		PlatformID:   optional(data.Form.PlatformID),
		PlatformLink: optional(data.Form.PlatformLink),
		YoutubeLink:  optional(data.Form.YoutubeLink),
	})
	if !result.OK() {
		data.Notice = errorNotice("%s", result.Message)
	} else {
		data.Notice = successNotice("saved artist %q", result.Artist.Name)
		data.Form = artistForm{}
	}
	h.render(w, r, http.StatusOK, "admin_artist.html", data)
}

type songForm struct {
	URL        string
	ArtistName string
	Type       string
	VID        string
	Title      string
	Name       string
	Image      string
	UploadedAt string
}

type adminSongPage struct {
	SongTypes []SongType
	Form      songForm
	Video     *youtube.Video
	Notice    *Notice
}

func (h *Handler) handleAdminSong(w http.ResponseWriter, r *http.Request) {
	data := adminSongPage{SongTypes: SongTypes}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "admin_song.html", data)
		return
	}
	if err := r.ParseForm(); err != nil {
		data.Notice = errorNotice("could not read form: %v", err)
		h.render(w, r, http.StatusBadRequest, "admin_song.html", data)
		return
	}

	data.Form = songForm{
		URL:        strings.TrimSpace(r.PostFormValue("url")),
		ArtistName: strings.TrimSpace(r.PostFormValue("artist_name")),
		Type:       strings.TrimSpace(r.PostFormValue("type")),
		VID:        strings.TrimSpace(r.PostFormValue("vId")),
		Title:      strings.TrimSpace(r.PostFormValue("title")),
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Image:      strings.TrimSpace(r.PostFormValue("image")),
		UploadedAt: strings.TrimSpace(r.PostFormValue("uploaded_at")),
	}

	if r.PostFormValue("action") != "save" {
		h.lookupVideo(r, &data)
		h.render(w, r, http.StatusOK, "admin_song.html", data)
		return
	}

	if data.Form.VID == "" {
		data.Notice = errorNotice("look up a video before saving")
		h.render(w, r, http.StatusOK, "admin_song.html", data)
		return
	}
	if data.Form.ArtistName == "" {
		data.Notice = errorNotice("enter the artist name")
		h.render(w, r, http.StatusOK, "admin_song.html", data)
		return
	}

	result := h.songs.Add(r.Context(), songs.AddInput{
		VID:        data.Form.VID,
		ArtistName: data.Form.ArtistName,
		UploadedAt: optional(data.Form.UploadedAt),
		Type:       optional(data.Form.Type),
		Image:      optional(data.Form.Image),
		Link:       optional(data.Form.URL),
		Title:      data.Form.Title,
		Name:       data.Form.Name,
	})
	if !result.OK() {
		data.Notice = errorNotice("%s", result.Message)
	} else {
		data.Notice = successNotice("saved song %q", result.Song.Name)
		data.Form = songForm{}
	}
	h.render(w, r, http.StatusOK, "admin_song.html", data)
}

func (h *Handler) lookupVideo(r *http.Request, data *adminSongPage) {
	id := youtube.ExtractVideoID(data.Form.URL)
	if id == "" {
		data.Notice = errorNotice("not a valid YouTube URL")
		return
	}

	video, err := h.resolver.Video(r.Context(), id)
	if err != nil {
		data.Notice = errorNotice("%s", resolverMessage(err))
		return
	}

	data.Video = &video
	data.Form.VID = video.VideoID
	data.Form.Title = video.Title
	data.Form.Name = video.Title
	data.Form.Image = video.Thumbnail
	data.Form.UploadedAt = uploadDate(video.PublishedAt)
}

type thumbnailForm struct {
	ChannelURL string
	Name       string
	Thumbnail  string
}

type adminThumbnailPage struct {
	Form    thumbnailForm
	Channel *youtube.Channel
	Notice  *Notice
}

func (h *Handler) handleAdminThumbnail(w http.ResponseWriter, r *http.Request) {
	var data adminThumbnailPage
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "admin_thumbnail.html", data)
		return
	}
	if err := r.ParseForm(); err != nil {
		data.Notice = errorNotice("could not read form: %v", err)
		h.render(w, r, http.StatusBadRequest, "admin_thumbnail.html", data)
		return
	}

	data.Form = thumbnailForm{
		ChannelURL: strings.TrimSpace(r.PostFormValue("channel_url")),
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Thumbnail:  strings.TrimSpace(r.PostFormValue("thumbnail")),
	}

	if r.PostFormValue("action") != "save" {
		channel, err := h.resolver.Channel(r.Context(), data.Form.ChannelURL)
		if err != nil {
			data.Notice = errorNotice("%s", resolverMessage(err))
		} else {
			data.Channel = &channel
			data.Form.Thumbnail = channel.ChannelImageURL
		}
		h.render(w, r, http.StatusOK, "admin_thumbnail.html", data)
		return
	}

	switch {
	case data.Form.Thumbnail == "":
		data.Notice = errorNotice("look up the channel before saving")
	case data.Form.Name == "":
		data.Notice = errorNotice("enter the artist name")
	default:
		result := h.artists.UpdateThumbnail(r.Context(), data.Form.Name, data.Form.Thumbnail)
		if !result.OK() {
			data.Notice = errorNotice("%s", result.Message)
		} else {
			data.Notice = successNotice("saved thumbnail for %q", data.Form.Name)
		}
	}
	h.render(w, r, http.StatusOK, "admin_thumbnail.html", data)
}

func resolverMessage(err error) string {
	switch {
	case errors.Is(err, youtube.ErrInvalidVideoURL):
		return "not a valid YouTube URL"
	case errors.Is(err, youtube.ErrInvalidChannelURL):
		return "not a valid channel URL"
	case errors.Is(err, youtube.ErrVideoNotFound):
		return "video not found"
	case errors.Is(err, youtube.ErrChannelNotFound):
		return "channel not found"
	case errors.Is(err, youtube.ErrMissingAPIKey):
		return "YOUTUBE_API_KEY is not configured"
	default:
		return "could not reach YouTube, try again"
	}
}
