package version

// Set with -ldflags "-X github.com/ldksplicing/ldk-sample/pkg/version.Commit=..."
var (
	Version = "0.1.0"
	Commit  = ""
	Date    = ""
)

// VersionWithMeta is Version plus the short commit when known.
func VersionWithMeta() string {
	if len(Commit) >= 8 {
		return Version + "+" + Commit[:8]
	}
	return Version
}
