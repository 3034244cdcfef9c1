// filepath: internal/initconfig/init.go
// Package initconfig runs the one-time seeding of accounts and tracks
// from a TOML file passed to 'serve --seed-config'.
package initconfig

import (
	"bytes"
	"errors"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/Popap2/forymusic/internal/repository"
	"github.com/Popap2/forymusic/internal/services"
)

// Run executes the one-time initialization from the seed file. Seeding is
// best-effort: individual failures are logged and never stop the server.
func Run(
	configPath string,
	accountSvc services.AccountService,
	trackSvc services.TrackService,
	logger *logrus.Logger,
) {
	logger.Infof("Seed config file found at: %s. Processing...", configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Errorf("Failed to read seed config file '%s': %v", configPath, err)
		return
	}

	var config SeedConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		logger.Errorf("Failed to parse TOML seed config file '%s': %v", configPath, err)
		return
	}

	logger.Infof("Found %d account(s) and %d track(s) in seed config.", len(config.Accounts), len(config.Tracks))

	processAccounts(accountSvc, config.Accounts, logger)
	processTracks(trackSvc, config.Tracks, logger)

	// After processing, try to clear passwords
	clearPasswords(&config, configPath, logger)
}

// processAccounts registers the seeded accounts, skipping ones that exist.
func processAccounts(accountSvc services.AccountService, accounts []SeedAccount, logger *logrus.Logger) {
	for _, a := range accounts {
		if a.Email == "" || a.Password == "" {
			logger.Warnf("Skipping account with empty email or password.")
			continue
		}

		_, err := accountSvc.Register(a.Email, a.Password)
		if err != nil {
			if errors.Is(err, services.ErrDuplicateAccount) {
				logger.Infof("Skipping account: '%s' already exists.", a.Email)
				continue
			}
			logger.Errorf("Failed to create account '%s': %v", a.Email, err)
			continue
		}
		logger.Infof("Successfully created account: '%s'", a.Email)
	}
}

// processTracks inserts the seeded tracks, skipping URLs already in the
// catalog so repeated starts with the same seed file stay idempotent.
func processTracks(trackSvc services.TrackService, tracks []SeedTrack, logger *logrus.Logger) {
	existing, err := trackSvc.ListTracks()
	if err != nil {
		logger.Errorf("Failed to list existing tracks, skipping track seeding: %v", err)
		return
	}
	knownURLs := make(map[string]bool, len(existing))
	for _, track := range existing {
		knownURLs[track.URL] = true
	}

	for _, seed := range tracks {
		if seed.Title == "" || seed.URL == "" {
			logger.Warnf("Skipping track with empty title or url.")
			continue
		}
		if knownURLs[seed.URL] {
			logger.Infof("Skipping track: URL '%s' already in the catalog.", seed.URL)
			continue
		}

		_, err := trackSvc.CreateTrack(repository.TrackCreateArgs{
			Title:      seed.Title,
			Artist:     seed.Artist,
			URL:        seed.URL,
			OwnerEmail: seed.OwnerEmail,
		})
		if err != nil {
			logger.Errorf("Failed to create track '%s': %v", seed.Title, err)
			continue
		}
		knownURLs[seed.URL] = true
		logger.Infof("Successfully created track: '%s'", seed.Title)
	}
}

// clearPasswords attempts to overwrite the seed file with passwords removed.
func clearPasswords(config *SeedConfig, configPath string, logger *logrus.Logger) {
	logger.Info("Attempting to clear passwords from seed config file...")

	buf := new(bytes.Buffer)

	for i := range config.Accounts {
		config.Accounts[i].Password = ""
	}

	if err := toml.NewEncoder(buf).Encode(config); err != nil {
		logger.Warnf("Could not re-encode config to clear passwords: %v", err)
		logger.Warnf("SECURITY: Please manually remove passwords from '%s'", configPath)
		return
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		logger.Warnf("Failed to write back to config file to clear passwords: %v", err)
		logger.Warnf("SECURITY: Please manually remove passwords from '%s'", configPath)
		return
	}

	logger.Info("Successfully cleared passwords from seed config file.")
}
