// filepath: internal/housekeeping/staging.go

// Package housekeeping removes staged upload files that no ledger row
// references. A crash between writing the staged file and recording it
// leaves bytes behind that the ledger sweep can never find.
package housekeeping

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Known reports whether a staged file name is still referenced by the
// pending-upload ledger.
type Known func(name string) bool

// StagingJanitor sweeps one staging directory.
type StagingJanitor struct {
	Dir    string
	Logger *logrus.Logger
}

// Sweep removes files older than the cutoff that the ledger does not
// know about. Newer files may belong to an upload whose ledger row is
// still being written, so they are left alone. Returns the number of
// files removed.
func (j *StagingJanitor) Sweep(cutoff time.Time, known Known) (int, error) {
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if known(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			j.Logger.Warnf("Housekeeping: could not stat staged file '%s': %v", name, err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(j.Dir, name)); err != nil {
			j.Logger.Warnf("Housekeeping: could not remove staged file '%s': %v", name, err)
			continue
		}
		removed++
		j.Logger.Infof("Housekeeping: removed unreferenced staged file '%s'", name)
	}
	return removed, nil
}
