package telegram

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"filerelay/internal/model"
)

// fileHandleFrom decides the media kind exactly once and builds the immutable
// FileHandle the rest of the pipeline works with. Returns false for messages
// carrying no supported media.
func fileHandleFrom(m *tele.Message) (model.FileHandle, bool) {
	switch {
	case m.Document != nil:
		return newHandle(m.Document.File, model.KindDocument, m.Document.FileName), true
	case m.Photo != nil:
		return newHandle(m.Photo.File, model.KindPhoto, ""), true
	case m.Video != nil:
		return newHandle(m.Video.File, model.KindVideo, m.Video.FileName), true
	case m.Audio != nil:
		return newHandle(m.Audio.File, model.KindAudio, audioName(m.Audio)), true
	case m.Voice != nil:
		return newHandle(m.Voice.File, model.KindVoice, ""), true
	case m.VideoNote != nil:
		return newHandle(m.VideoNote.File, model.KindVideoNote, ""), true
	case m.Sticker != nil:
		return newHandle(m.Sticker.File, model.KindSticker, ""), true
	default:
		return model.FileHandle{}, false
	}
}

func newHandle(f tele.File, kind model.MediaKind, name string) model.FileHandle {
	if name == "" {
		name = model.SyntheticName(kind, f.UniqueID)
	}
	return model.FileHandle{
		FileID:   f.FileID,
		UniqueID: f.UniqueID,
		Name:     name,
		Size:     int64(f.FileSize),
		Kind:     kind,
	}
}

// audioName prefers the explicit file name, then performer/title metadata.
func audioName(a *tele.Audio) string {
	if a.FileName != "" {
		return a.FileName
	}
	if a.Performer != "" && a.Title != "" {
		return fmt.Sprintf("%s - %s.mp3", a.Performer, a.Title)
	}
	if a.Title != "" {
		return a.Title + ".mp3"
	}
	return ""
}
