// Package identity resolves the local user and the clock the engine reads.
package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// profileFile holds the generated user ID inside the data directory.
const profileFile = "profile-id"

// Identity supplies the user ID and the current instant.
type Identity struct {
	UserID string
	Now    func() time.Time
}

// Resolve returns the identity for this installation. A configured ID wins
// and must be a UUID; otherwise the ID stored in <dataDir>/profile-id is
// used, and created on first run.
func Resolve(configuredID, dataDir string) (Identity, error) {
	if id := strings.TrimSpace(configuredID); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return Identity{}, fmt.Errorf("configured user id %q: %w", id, err)
		}
		return Identity{UserID: parsed.String(), Now: time.Now}, nil
	}

	path := filepath.Join(dataDir, profileFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if parsed, perr := uuid.Parse(strings.TrimSpace(string(data))); perr == nil {
			return Identity{UserID: parsed.String(), Now: time.Now}, nil
		}
		// Unreadable contents are replaced below.
	case !errors.Is(err, fs.ErrNotExist):
		return Identity{}, fmt.Errorf("read profile id: %w", err)
	}

	id := uuid.New()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return Identity{}, fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id.String()+"\n"), 0o600); err != nil {
		return Identity{}, fmt.Errorf("write profile id: %w", err)
	}
	return Identity{UserID: id.String(), Now: time.Now}, nil
}

// Fixed returns an identity whose clock always reads at.
func Fixed(userID string, at time.Time) Identity {
	return Identity{UserID: userID, Now: func() time.Time { return at }}
}
