package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"filerelay/internal/model"
)

func TestFileHandleFrom(t *testing.T) {
	tests := []struct {
		name     string
		msg      *tele.Message
		wantOK   bool
		wantKind model.MediaKind
		wantName string
	}{
		{
			name: "document with file name",
			msg: &tele.Message{Document: &tele.Document{
				File:     tele.File{FileID: "f1", UniqueID: "u1", FileSize: 100},
				FileName: "report.pdf",
			}},
			wantOK:   true,
			wantKind: model.KindDocument,
			wantName: "report.pdf",
		},
		{
			name: "document without file name",
			msg: &tele.Message{Document: &tele.Document{
				File: tele.File{FileID: "f2", UniqueID: "u2"},
			}},
			wantOK:   true,
			wantKind: model.KindDocument,
			wantName: "file_u2",
		},
		{
			name: "photo gets synthesized jpg name",
			msg: &tele.Message{Photo: &tele.Photo{
				File: tele.File{FileID: "f3", UniqueID: "u3", FileSize: 5000},
			}},
			wantOK:   true,
			wantKind: model.KindPhoto,
			wantName: "photo_u3.jpg",
		},
		{
			name: "video keeps its name",
			msg: &tele.Message{Video: &tele.Video{
				File:     tele.File{FileID: "f4", UniqueID: "u4"},
				FileName: "clip.mp4",
			}},
			wantOK:   true,
			wantKind: model.KindVideo,
			wantName: "clip.mp4",
		},
		{
			name: "audio from performer and title",
			msg: &tele.Message{Audio: &tele.Audio{
				File:      tele.File{FileID: "f5", UniqueID: "u5"},
				Performer: "Artist",
				Title:     "Song",
			}},
			wantOK:   true,
			wantKind: model.KindAudio,
			wantName: "Artist - Song.mp3",
		},
		{
			name: "audio without metadata",
			msg: &tele.Message{Audio: &tele.Audio{
				File: tele.File{FileID: "f6", UniqueID: "u6"},
			}},
			wantOK:   true,
			wantKind: model.KindAudio,
			wantName: "audio_u6.mp3",
		},
		{
			name: "voice note",
			msg: &tele.Message{Voice: &tele.Voice{
				File: tele.File{FileID: "f7", UniqueID: "u7"},
			}},
			wantOK:   true,
			wantKind: model.KindVoice,
			wantName: "voice_u7.ogg",
		},
		{
			name: "video note",
			msg: &tele.Message{VideoNote: &tele.VideoNote{
				File: tele.File{FileID: "f8", UniqueID: "u8"},
			}},
			wantOK:   true,
			wantKind: model.KindVideoNote,
			wantName: "video_note_u8.mp4",
		},
		{
			name: "sticker",
			msg: &tele.Message{Sticker: &tele.Sticker{
				File: tele.File{FileID: "f9", UniqueID: "u9"},
			}},
			wantOK:   true,
			wantKind: model.KindSticker,
			wantName: "sticker_u9.webp",
		},
		{
			name:   "plain text carries no media",
			msg:    &tele.Message{Text: "hello"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, ok := fileHandleFrom(tt.msg)
			if !tt.wantOK {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, handle.Kind)
			assert.Equal(t, tt.wantName, handle.Name)
			assert.NotEmpty(t, handle.FileID)
			assert.NotEmpty(t, handle.UniqueID)
		})
	}
}

func TestFileHandleFrom_SizeCarriedOver(t *testing.T) {
	msg := &tele.Message{Document: &tele.Document{
		File:     tele.File{FileID: "f", UniqueID: "u", FileSize: 123456789},
		FileName: "big.bin",
	}}

	handle, ok := fileHandleFrom(msg)

	require.True(t, ok)
	assert.Equal(t, int64(123456789), handle.Size)
}

func TestParseLookupArgs(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		wantID int
		wantOK bool
	}{
		{name: "valid", args: []string{"123456", "ab12cd34ef"}, wantID: 123456, wantOK: true},
		{name: "too few args", args: []string{"123456"}, wantOK: false},
		{name: "non numeric id", args: []string{"abc", "hash"}, wantOK: false},
		{name: "id out of range", args: []string{"1234567", "hash"}, wantOK: false},
		{name: "negative id", args: []string{"-1", "hash"}, wantOK: false},
		{name: "empty hash", args: []string{"123456", ""}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, hash, ok := parseLookupArgs(tt.args)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
				assert.NotEmpty(t, hash)
			}
		})
	}
}
