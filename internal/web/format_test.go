package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabels(t *testing.T) {
	assert.Equal(t, "SOOP", PlatformLabel("1"))
	assert.Equal(t, "CHZZK", PlatformLabel("2"))
	assert.Equal(t, "YouTube", PlatformLabel("3"))
	assert.Equal(t, "Unknown", PlatformLabel(""))

	assert.Equal(t, "Original", SongTypeLabel("1"))
	assert.Equal(t, "Cover", SongTypeLabel("2"))
	assert.Equal(t, "Concert", SongTypeLabel("3"))
	assert.Equal(t, "Unknown", SongTypeLabel("7"))
}

func TestFormatUploadDate(t *testing.T) {
	assert.Equal(t, "2024.05.01", FormatUploadDate("2024-05-01"))
	assert.Equal(t, "2024.05.01", FormatUploadDate("2024-05-01T09:00:00Z"))
	assert.Equal(t, "last spring", FormatUploadDate("last spring"))
	assert.Equal(t, "", FormatUploadDate("  "))
}

func TestUploadDate(t *testing.T) {
	assert.Equal(t, "2024-05-01", uploadDate("2024-05-01T09:00:00Z"))
	assert.Equal(t, "", uploadDate(""))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "1,500", FormatCount(1500))
	assert.Equal(t, "12,345,678", FormatCount(12345678))
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "허", initial("허니즈"))
	assert.Equal(t, "?", initial(""))
}
