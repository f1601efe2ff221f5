package version

// Set at build time with -ldflags "-X github.com/keshon/wavebot/internal/version.Version=...".
var (
	AppName        = "Wavebot"
	AppDescription = "Slash commands with paginated views for Discord"
	Version        = "dev"
)
