package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10.0 MB"},
		{1<<30 + 1<<29, "1.5 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.n))
	}
}

func TestIntegrityHash(t *testing.T) {
	h := IntegrityHash("BQACAgQAAxkBAAID")

	assert.Len(t, h, 10)
	// Stable for the same file id.
	assert.Equal(t, h, IntegrityHash("BQACAgQAAxkBAAID"))
	// Different ids must not collide on trivially related inputs.
	assert.NotEqual(t, h, IntegrityHash("BQACAgQAAxkBAAIE"))
}

func TestSyntheticName(t *testing.T) {
	tests := []struct {
		kind MediaKind
		want string
	}{
		{KindDocument, "file_uniq1"},
		{KindPhoto, "photo_uniq1.jpg"},
		{KindVideo, "video_uniq1.mp4"},
		{KindAudio, "audio_uniq1.mp3"},
		{KindVoice, "voice_uniq1.ogg"},
		{KindVideoNote, "video_note_uniq1.mp4"},
		{KindSticker, "sticker_uniq1.webp"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SyntheticName(tt.kind, "uniq1"))
	}
}

func TestMediaKindValid(t *testing.T) {
	assert.True(t, KindDocument.Valid())
	assert.True(t, KindVideoNote.Valid())
	assert.False(t, MediaKind("animation").Valid())
	assert.False(t, MediaKind("").Valid())
}

func TestTransferRecordExpired(t *testing.T) {
	now := time.Now().UTC()
	rec := TransferRecord{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, rec.Expired(now))
	assert.True(t, rec.Expired(now.Add(time.Hour)))
	assert.True(t, rec.Expired(now.Add(2*time.Hour)))
}
