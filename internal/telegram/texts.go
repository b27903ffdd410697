package telegram

const textStart = `🚀 **Welcome to the File Relay Bot!**

📁 **How to use:**
• Send me any file, photo, video or audio
• I'll generate instant links, or upload it to GoFile and give you a download link

✨ **Commands:**
• /info <id> <hash> — look up a stored file
• /cleanup — remove expired records
• /stats — storage statistics

🔒 **Privacy:** hosted uploads are anonymous

Just send me a file to get started! 📎`

const textUnsupported = `❌ **Unsupported content!**

📎 Please send a **file, photo, video or audio** for upload.

💡 **Tip:** Use 'Send as File' for anything unusual.`

const textInfoUsage = "Usage: `/info <id> <hash>`"

const textRecordNotFound = "❌ **Not found.**\n\nNo stored file matches that id and hash, or it has expired."
