package model

import "fmt"

// MediaKind tags the kind of inbound content. It is decided exactly once, when the
// inbound platform event is turned into a FileHandle, so the rest of the pipeline
// never inspects the raw platform message again.
type MediaKind string

const (
	KindDocument  MediaKind = "document"
	KindPhoto     MediaKind = "photo"
	KindVideo     MediaKind = "video"
	KindAudio     MediaKind = "audio"
	KindVoice     MediaKind = "voice"
	KindVideoNote MediaKind = "video_note"
	KindSticker   MediaKind = "sticker"
)

// Valid reports whether k is one of the known media kinds.
func (k MediaKind) Valid() bool {
	switch k {
	case KindDocument, KindPhoto, KindVideo, KindAudio, KindVoice, KindVideoNote, KindSticker:
		return true
	default:
		return false
	}
}

// FileHandle is an immutable reference to one piece of inbound content on the source
// platform. FileID is what the platform accepts when asked for bytes or a server path;
// UniqueID is stable across re-sends of the same content.
type FileHandle struct {
	FileID   string    `json:"file_id"`
	UniqueID string    `json:"file_unique_id"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Kind     MediaKind `json:"kind"`
}

// SyntheticName builds a display name for content the platform did not name:
// <kind>_<uniqueID> plus a kind-appropriate extension. Documents get no extension
// since their real type is unknown.
func SyntheticName(kind MediaKind, uniqueID string) string {
	ext := map[MediaKind]string{
		KindPhoto:     ".jpg",
		KindVideo:     ".mp4",
		KindAudio:     ".mp3",
		KindVoice:     ".ogg",
		KindVideoNote: ".mp4",
		KindSticker:   ".webp",
	}[kind]
	if kind == KindDocument {
		return fmt.Sprintf("file_%s", uniqueID)
	}
	return fmt.Sprintf("%s_%s%s", kind, uniqueID, ext)
}
