// filepath: internal/initconfig/models.go
package initconfig

// SeedConfig is the root struct for parsing the TOML seed file.
type SeedConfig struct {
	Accounts []SeedAccount `toml:"account"`
	Tracks   []SeedTrack   `toml:"track"`
}

// SeedAccount describes one listener account to register on startup.
type SeedAccount struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// SeedTrack describes one catalog row to insert on startup. The URL must
// already be reachable; seeding never moves audio bytes.
type SeedTrack struct {
	Title      string `toml:"title"`
	Artist     string `toml:"artist"`
	URL        string `toml:"url"`
	OwnerEmail string `toml:"owner_email"`
}
