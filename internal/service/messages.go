package service

import (
	"fmt"

	"filerelay/internal/model"
)

// User-facing texts rendered by the pipeline. Markdown, in the voice the bot has
// always used. Failure texts stay generic: raw errors go to the log, not the chat.

const diagnosticLimit = 120

func renderProgress(handle model.FileHandle, status string) string {
	return fmt.Sprintf(
		"📄 **File:** `%s`\n📏 **Size:** `%s`\n⏳ **Status:** %s",
		handle.Name, model.FormatBytes(handle.Size), status,
	)
}

func renderOutcome(handle model.FileHandle, out model.Outcome, maxFileSize int64) string {
	switch out.Kind {
	case model.OutcomeInstantLinks:
		return fmt.Sprintf(
			"✅ **Links ready!**\n\n"+
				"📄 **File:** `%s`\n"+
				"📏 **Size:** `%s`\n\n"+
				"🔗 [**Direct Download**](%s)\n"+
				"▶️ [**Stream**](%s)\n\n"+
				"🆔 `%06d %s`\n"+
				"⏰ Links expire with the stored record.",
			handle.Name, model.FormatBytes(handle.Size),
			out.Links.Direct, out.Links.Stream,
			out.Links.ShortID, out.Links.Hash,
		)
	case model.OutcomeHostedLink:
		return fmt.Sprintf(
			"✅ **Upload Successful!**\n\n"+
				"📄 **File:** `%s`\n"+
				"📏 **Size:** `%s`\n\n"+
				"🔗 [**Download Link**](%s)",
			handle.Name, model.FormatBytes(handle.Size), out.Hosted,
		)
	case model.OutcomeFailed:
		return renderFailure(handle, out, maxFileSize)
	default:
		return "❌ Something went wrong. Please try again."
	}
}

func renderFailure(handle model.FileHandle, out model.Outcome, maxFileSize int64) string {
	switch out.Reason {
	case model.FailTooLarge:
		return fmt.Sprintf(
			"❌ **File too large!**\n\n"+
				"📏 **File size:** `%s`\n"+
				"🚫 **Maximum allowed:** `%s`\n\n"+
				"Please send a smaller file.",
			model.FormatBytes(handle.Size), model.FormatBytes(maxFileSize),
		)
	case model.FailUpload:
		return "❌ **Upload failed.**\n\nThe hosting service did not accept the file. Please try again later."
	default:
		return fmt.Sprintf(
			"❌ **Something went wrong.**\n\n`%s`\n\nPlease try again.",
			truncate(diagnostic(out), diagnosticLimit),
		)
	}
}

func diagnostic(out model.Outcome) string {
	if out.Err == nil {
		return "internal error"
	}
	return out.Err.Error()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
