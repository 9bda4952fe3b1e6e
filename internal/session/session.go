// Package session persists the bits of client state that outlive a single
// command: the selected store and this install's device id.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Session is the on-disk state at ~/.mocha/session.yaml.
type Session struct {
	StoreID   string    `yaml:"store_id"`
	StoreName string    `yaml:"store_name"`
	DeviceID  string    `yaml:"device_id"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

func defaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mocha", "session.yaml"), nil
}

// Load reads the session file. A missing file is a zero session, not an
// error.
func Load() (Session, error) {
	p, err := defaultPath()
	if err != nil {
		return Session{}, err
	}
	return loadFrom(p)
}

func loadFrom(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Save writes the session, stamping the update time.
func Save(s Session) error {
	p, err := defaultPath()
	if err != nil {
		return err
	}
	return saveTo(p, s)
}

func saveTo(path string, s Session) error {
	s.UpdatedAt = time.Now().UTC()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// EnsureDeviceID loads the session and mints a device id on first use so
// every API call carries a stable one.
func EnsureDeviceID() (Session, error) {
	s, err := Load()
	if err != nil {
		return Session{}, err
	}
	if s.DeviceID == "" {
		s.DeviceID = uuid.NewString()
		if err := Save(s); err != nil {
			return Session{}, err
		}
	}
	return s, nil
}
