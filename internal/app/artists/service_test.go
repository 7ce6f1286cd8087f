package artists

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtubemusic/internal/store"
)

type memoryStore struct {
	groups  map[int64]store.Group
	artists []store.Artist
	songs   map[int64][]store.Song
	failAll error
	created int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		groups: map[int64]store.Group{1: {ID: 1, Name: "Honeyz"}},
		songs:  map[int64][]store.Song{},
	}
}

func (m *memoryStore) CountArtists(context.Context) (int64, error) {
	if m.failAll != nil {
		return 0, m.failAll
	}
	return int64(len(m.artists)), nil
}

func (m *memoryStore) GetArtistByName(_ context.Context, name string) (store.Artist, error) {
	if m.failAll != nil {
		return store.Artist{}, m.failAll
	}
	for _, a := range m.artists {
		if a.Name == name {
			return a, nil
		}
	}
	return store.Artist{}, fmt.Errorf("artist %q: %w", name, store.ErrNotFound)
}

func (m *memoryStore) ListSongsByArtist(_ context.Context, artistID int64) ([]store.Song, error) {
	songs := m.songs[artistID]
	if songs == nil {
		songs = []store.Song{}
	}
	return songs, nil
}

func (m *memoryStore) GetGroup(_ context.Context, id int64) (store.Group, error) {
	if m.failAll != nil {
		return store.Group{}, m.failAll
	}
	g, ok := m.groups[id]
	if !ok {
		return store.Group{}, fmt.Errorf("group %d: %w", id, store.ErrNotFound)
	}
	return g, nil
}

func (m *memoryStore) CreateArtist(_ context.Context, artist store.Artist) (store.Artist, error) {
	m.created++
	artist.ID = int64(len(m.artists) + 1)
	m.artists = append(m.artists, artist)
	return artist, nil
}

func (m *memoryStore) UpdateArtistThumbnail(_ context.Context, id int64, thumbnail string) error {
	for i := range m.artists {
		if m.artists[i].ID == id {
			m.artists[i].Thumbnail = &thumbnail
			return nil
		}
	}
	return store.ErrNotFound
}

func strPtr(s string) *string { return &s }

func TestAddArtistWithMissingGroup(t *testing.T) {
	st := newMemoryStore()
	svc := New(st)

	res := svc.Add(context.Background(), AddInput{Name: "Rin", GroupID: "9999"})

	assert.False(t, res.OK())
	assert.Contains(t, res.Message, "9999")
	assert.Nil(t, res.Artist)
	assert.Zero(t, st.created)

	conn := svc.CheckConnection(context.Background())
	require.NotNil(t, conn.Count)
	assert.Equal(t, int64(0), *conn.Count)
}

func TestAddArtistWithUnparsableGroup(t *testing.T) {
	for _, raw := range []string{"abc", "1abc", "1.0", ""} {
		t.Run(raw, func(t *testing.T) {
			st := newMemoryStore()
			res := New(st).Add(context.Background(), AddInput{Name: "Rin", GroupID: raw})

			assert.False(t, res.OK())
			assert.Equal(t, "group not found: group_id="+raw, res.Message)
			assert.Zero(t, st.created)
		})
	}
}

func TestAddArtistTwiceCreatesTwoRows(t *testing.T) {
	st := newMemoryStore()
	svc := New(st)
	in := AddInput{Name: "Rin", GroupID: " 1 ", PlatformID: strPtr("1")}

	first := svc.Add(context.Background(), in)
	second := svc.Add(context.Background(), in)

	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.NotEqual(t, first.Artist.ID, second.Artist.ID)
	assert.Equal(t, "Honeyz", first.Artist.Group.Name)
	assert.Nil(t, first.Artist.YoutubeLink)
}

func TestGetArtistLoadsSongs(t *testing.T) {
	st := newMemoryStore()
	st.artists = []store.Artist{{ID: 3, Name: "Rin", Group: &store.Group{ID: 1, Name: "Honeyz"}}}
	st.songs[3] = []store.Song{{ID: 1, VID: "abc"}, {ID: 2, VID: "def"}}

	res := New(st).Get(context.Background(), "Rin")

	require.True(t, res.OK())
	require.NotNil(t, res.Artist)
	assert.Len(t, res.Artist.Songs, 2)
	assert.Equal(t, "Honeyz", res.Artist.Group.Name)
}

func TestGetArtistNotFound(t *testing.T) {
	res := New(newMemoryStore()).Get(context.Background(), "Nobody")

	assert.False(t, res.OK())
	assert.Equal(t, "artist not found: name=Nobody", res.Message)
}

func TestGetArtistInfrastructureFailure(t *testing.T) {
	st := newMemoryStore()
	st.failAll = errors.New("connection reset")

	res := New(st).Get(context.Background(), "Rin")

	assert.False(t, res.OK())
	assert.Contains(t, res.Message, "connection reset")
}

func TestUpdateThumbnail(t *testing.T) {
	st := newMemoryStore()
	st.artists = []store.Artist{{ID: 3, Name: "Rin"}}

	res := New(st).UpdateThumbnail(context.Background(), "Rin", "https://img/rin.jpg")

	require.True(t, res.OK())
	assert.Equal(t, "https://img/rin.jpg", *res.Artist.Thumbnail)
	assert.Equal(t, "https://img/rin.jpg", *st.artists[0].Thumbnail)

	missing := New(st).UpdateThumbnail(context.Background(), "Mio", "x")
	assert.Equal(t, "artist not found: name=Mio", missing.Message)
}

func TestCheckConnectionFailure(t *testing.T) {
	st := newMemoryStore()
	st.failAll = errors.New("dial tcp 127.0.0.1:6543: connect: connection refused")

	conn := New(st).CheckConnection(context.Background())

	assert.False(t, conn.OK())
	assert.False(t, conn.Connected)
	assert.Nil(t, conn.Count)
	assert.Contains(t, conn.Message, "connection refused")
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := newMemoryStore()
	res := New(st).Add(ctx, AddInput{Name: "Rin", GroupID: "1"})

	assert.False(t, res.OK())
	assert.Zero(t, st.created)
}
