package web

import (
	"context"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtubemusic/internal/app/artists"
	"vtubemusic/internal/app/envelope"
	"vtubemusic/internal/app/groups"
	"vtubemusic/internal/app/songs"
	"vtubemusic/internal/store"
	"vtubemusic/internal/youtube"
)

func strPtr(s string) *string { return &s }

type stubGroups struct {
	list       groups.ListResult
	lastFilter string
	added      []groups.AddInput
}

func (s *stubGroups) List(_ context.Context, platformID string) groups.ListResult {
	s.lastFilter = platformID
	return s.list
}

func (s *stubGroups) Add(_ context.Context, in groups.AddInput) groups.AddResult {
	s.added = append(s.added, in)
	return groups.AddResult{Envelope: envelope.Success("group added"), Group: &store.Group{ID: 1, Name: in.Name}}
}

type stubArtists struct {
	get        artists.Result
	names      []string
	added      []artists.AddInput
	thumbnails map[string]string
}

func (s *stubArtists) Get(_ context.Context, name string) artists.Result {
	s.names = append(s.names, name)
	return s.get
}

func (s *stubArtists) Add(_ context.Context, in artists.AddInput) artists.Result {
	s.added = append(s.added, in)
	if in.GroupID == "9999" {
		return artists.Result{Envelope: envelope.Errorf("group not found: group_id=%s", in.GroupID)}
	}
	return artists.Result{Envelope: envelope.Success("artist added"), Artist: &store.Artist{ID: 1, Name: in.Name}}
}

func (s *stubArtists) UpdateThumbnail(_ context.Context, name, thumbnail string) artists.Result {
	if s.thumbnails == nil {
		s.thumbnails = map[string]string{}
	}
	s.thumbnails[name] = thumbnail
	return artists.Result{Envelope: envelope.Success("thumbnail updated")}
}

type stubSongs struct {
	added []songs.AddInput
}

func (s *stubSongs) Add(_ context.Context, in songs.AddInput) songs.Result {
	s.added = append(s.added, in)
	return songs.Result{Envelope: envelope.Success("song added"), Song: &store.Song{ID: 1, Name: in.Name}}
}

type stubResolver struct {
	video     youtube.Video
	channel   youtube.Channel
	err       error
	videoIDs  []string
	channelIn []string
}

func (s *stubResolver) Video(_ context.Context, id string) (youtube.Video, error) {
	s.videoIDs = append(s.videoIDs, id)
	return s.video, s.err
}

func (s *stubResolver) Channel(_ context.Context, rawURL string) (youtube.Channel, error) {
	s.channelIn = append(s.channelIn, rawURL)
	return s.channel, s.err
}

type fixture struct {
	router   *mux.Router
	groups   *stubGroups
	artists  *stubArtists
	songs    *stubSongs
	resolver *stubResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		groups:   &stubGroups{list: groups.ListResult{Envelope: envelope.Success(""), Groups: []store.Group{}}},
		artists:  &stubArtists{},
		songs:    &stubSongs{},
		resolver: &stubResolver{},
	}
	h, err := New(f.groups, f.artists, f.songs, f.resolver)
	require.NoError(t, err)
	f.router = mux.NewRouter()
	h.Register(f.router)
	return f
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (f *fixture) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHomeGroupsByPlatform(t *testing.T) {
	f := newFixture(t)
	f.groups.list.Groups = []store.Group{
		{ID: 1, Name: "Stellive", PlatformID: strPtr("3"), Artists: []store.Artist{{ID: 1, Name: "강지 Kanna"}}},
		{ID: 2, Name: "Honeyz", PlatformID: strPtr("1")},
	}

	rec := f.get("/?platform_id=")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Equal(t, "", f.groups.lastFilter)
	assert.Less(t, strings.Index(body, "<h2>SOOP</h2>"), strings.Index(body, "<h2>YouTube</h2>"))
	assert.Contains(t, body, `href="/artists?name=`)
	assert.Contains(t, body, "No artists yet")
}

func TestHomeFilterAndError(t *testing.T) {
	f := newFixture(t)
	f.groups.list = groups.ListResult{Envelope: envelope.Errorf("list groups failed: timeout")}

	rec := f.get("/?platform_id=2")

	assert.Equal(t, "2", f.groups.lastFilter)
	assert.Contains(t, rec.Body.String(), "list groups failed: timeout")
}

func TestArtistPage(t *testing.T) {
	f := newFixture(t)
	f.artists.get = artists.Result{
		Envelope: envelope.Success(""),
		Artist: &store.Artist{
			Name:        "Rin",
			YoutubeLink: strPtr("https://youtube.com/@rin"),
			Group:       &store.Group{Name: "Honeyz"},
			Songs: []store.Song{
				{ID: 1, Name: "Honey", Type: strPtr("2"), UploadedAt: strPtr("2024-05-01")},
				{ID: 2, Name: "Live", Type: nil},
			},
		},
	}

	rec := f.get("/artists/Rin")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<h1>Rin</h1>")
	assert.Contains(t, body, "Honeyz")
	assert.Contains(t, body, "Cover")
	assert.Contains(t, body, "Unknown")
	assert.Contains(t, body, "2024.05.01")
	assert.Contains(t, body, `<div class="avatar">R</div>`)
}

func TestArtistLinkWithSlashReachesArtistPage(t *testing.T) {
	f := newFixture(t)
	f.groups.list.Groups = []store.Group{
		{ID: 1, Name: "Duo", PlatformID: strPtr("1"), Artists: []store.Artist{{ID: 1, Name: "AC/DC 강지"}}},
	}
	f.artists.get = artists.Result{Envelope: envelope.Success(""), Artist: &store.Artist{Name: "AC/DC 강지"}}

	m := regexp.MustCompile(`href="(/artists[^"]*)"`).FindStringSubmatch(f.get("/").Body.String())
	require.NotNil(t, m)

	rec := f.get(html.UnescapeString(m[1]))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"AC/DC 강지"}, f.artists.names)
}

func TestArtistPageByPath(t *testing.T) {
	f := newFixture(t)
	f.artists.get = artists.Result{Envelope: envelope.Success(""), Artist: &store.Artist{Name: "Rin"}}

	rec := f.get("/artists/Rin")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Rin"}, f.artists.names)
}

func TestArtistPageNotFound(t *testing.T) {
	f := newFixture(t)
	f.artists.get = artists.Result{Envelope: envelope.Errorf("artist not found: name=Ghost")}

	rec := f.get("/artists/Ghost")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artist not found.")
}

func TestAdminGroupRequiresPlatform(t *testing.T) {
	f := newFixture(t)

	rec := f.post("/admin/group", url.Values{"name": {"Honeyz"}})

	assert.Contains(t, rec.Body.String(), "select a platform")
	assert.Empty(t, f.groups.added)
}

func TestAdminGroupSaves(t *testing.T) {
	f := newFixture(t)

	rec := f.post("/admin/group", url.Values{"name": {"Honeyz"}, "platform_id": {"1"}})

	require.Len(t, f.groups.added, 1)
	assert.Equal(t, "1", *f.groups.added[0].PlatformID)
	assert.Nil(t, f.groups.added[0].Link)
	assert.Contains(t, rec.Body.String(), `notice success`)
}

func TestAdminArtistShowsEnvelopeError(t *testing.T) {
	f := newFixture(t)
	f.groups.list.Groups = []store.Group{{ID: 1, Name: "Honeyz", PlatformID: strPtr("1")}}

	rec := f.post("/admin/artist", url.Values{"name": {"Rin"}, "group_id": {"9999"}})

	require.Len(t, f.artists.added, 1)
	body := rec.Body.String()
	assert.Contains(t, body, "group not found: group_id=9999")
	assert.Contains(t, body, `<option value="1"`)
}

func TestAdminSongLookup(t *testing.T) {
	f := newFixture(t)
	f.resolver.video = youtube.Video{
		VideoID:     "abc123",
		Title:       "[MV] Honey",
		Thumbnail:   "https://i.ytimg.com/abc.jpg",
		ViewCount:   1500,
		PublishedAt: "2024-05-01T09:00:00Z",
	}

	rec := f.post("/admin/song", url.Values{"url": {"https://youtu.be/abc123"}, "action": {"lookup"}})
	body := rec.Body.String()

	assert.Equal(t, []string{"abc123"}, f.resolver.videoIDs)
	assert.Contains(t, body, `name="vId" value="abc123"`)
	assert.Contains(t, body, `name="uploaded_at" value="2024-05-01"`)
	assert.Contains(t, body, "1,500")
	assert.Contains(t, body, `value="save"`)
}

func TestAdminSongRejectsInvalidURL(t *testing.T) {
	f := newFixture(t)

	rec := f.post("/admin/song", url.Values{"url": {"https://example.com/v=abc"}})

	assert.Empty(t, f.resolver.videoIDs)
	assert.Contains(t, rec.Body.String(), "not a valid YouTube URL")
}

func TestAdminSongSave(t *testing.T) {
	f := newFixture(t)

	f.post("/admin/song", url.Values{
		"action":      {"save"},
		"url":         {"https://youtu.be/abc123"},
		"artist_name": {"Rin"},
		"type":        {"1"},
		"vId":         {"abc123"},
		"title":       {"[MV] Honey"},
		"name":        {"Honey"},
		"uploaded_at": {"2024-05-01"},
	})

	require.Len(t, f.songs.added, 1)
	in := f.songs.added[0]
	assert.Equal(t, "abc123", in.VID)
	assert.Equal(t, "Rin", in.ArtistName)
	assert.Equal(t, "https://youtu.be/abc123", *in.Link)
	assert.Nil(t, in.Image)
}

func TestAdminThumbnailFlow(t *testing.T) {
	f := newFixture(t)
	f.resolver.channel = youtube.Channel{ChannelName: "Rin", ChannelImageURL: "https://yt3/rin.jpg"}

	rec := f.post("/admin/thumbnail", url.Values{"channel_url": {"https://www.youtube.com/@rin"}, "name": {"Rin"}})
	assert.Contains(t, rec.Body.String(), `name="thumbnail" value="https://yt3/rin.jpg"`)

	f.post("/admin/thumbnail", url.Values{"action": {"save"}, "name": {"Rin"}, "thumbnail": {"https://yt3/rin.jpg"}})
	assert.Equal(t, "https://yt3/rin.jpg", f.artists.thumbnails["Rin"])
}

func TestSectionsByPlatform(t *testing.T) {
	sections := sectionsByPlatform([]store.Group{
		{ID: 1, Name: "A", PlatformID: strPtr("3")},
		{ID: 2, Name: "B", PlatformID: strPtr("1")},
		{ID: 3, Name: "C"},
		{ID: 4, Name: "D", PlatformID: strPtr("3")},
	})

	require.Len(t, sections, 3)
	assert.Equal(t, "SOOP", sections[0].Platform.Label)
	assert.Equal(t, "YouTube", sections[1].Platform.Label)
	assert.Len(t, sections[1].Groups, 2)
	assert.Equal(t, "Unknown", sections[2].Platform.Label)
}
