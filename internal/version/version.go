package version

// Version is the build version stamped into logs. Overridden at build time
// via -ldflags "-X github.com/resourcegate/resourcegate/internal/version.Version=...".
var Version = "dev"
