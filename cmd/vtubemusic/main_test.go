package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtubemusic/internal/config"
	"vtubemusic/internal/store"
)

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{"vtubemusic", "migrate", "sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestResolveVideoRequiresURL(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{"vtubemusic", "resolve", "video"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "video URL is required")
}

func TestResolveVideoPrintsMetadata(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"abc123","snippet":{"title":"Honey","channelTitle":"Rin","publishedAt":"2024-05-01T09:00:00Z","thumbnails":{"high":{"url":"https://i.ytimg.com/hq.jpg"}}},"statistics":{"viewCount":"10","likeCount":"2"}}]}`))
	}))
	defer api.Close()

	t.Setenv("YOUTUBE_API_KEY", "test-key")
	t.Setenv("YOUTUBE_API_BASE_URL", api.URL)
	t.Setenv("YOUTUBE_REQUESTS_PER_SECOND", "0")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{"vtubemusic", "--env-file", "", "resolve", "video", "https://youtu.be/abc123"})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "abc123", got["videoId"])
	assert.Equal(t, "https://i.ytimg.com/hq.jpg", got["thumbnail"])
	assert.EqualValues(t, 10, got["viewCount"])
}

func TestCollectChecks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	for _, table := range []string{"User", "Group", "Artist"} {
		expectCount(mock, table, 2)
	}
	mock.ExpectQuery(`FROM "Song"`).WillReturnError(errors.New("song table missing"))

	cfg := config.DatabaseConfig{URL: "postgres://u:p@db:5432/catalog"}
	report, ok := collectChecks(context.Background(), newServices(cfg, store.New(db)))

	assert.False(t, ok)
	var buf strings.Builder
	require.NoError(t, printJSON(&buf, report))
	assert.Contains(t, buf.String(), `"database": "catalog"`)
	assert.Contains(t, buf.String(), `"message": "Group table reachable"`)
	assert.Contains(t, buf.String(), "song table missing")
	assert.NoError(t, mock.ExpectationsWereMet())
}
