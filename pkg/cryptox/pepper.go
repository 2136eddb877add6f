package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const pepperSize = 32

var (
	pepperMu   sync.Mutex
	pepperPath = "pepper"
	pepper     []byte
)

// SetPepperPath points password hashing at a pepper file. The file is created
// with a fresh random pepper on first use if it does not exist yet. Changing
// the path drops any pepper already loaded.
func SetPepperPath(path string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperPath = path
	pepper = nil
}

// LoadPepper forces the pepper to be read (or generated) now so a missing or
// unreadable file is reported at startup rather than on the first login.
func LoadPepper() error {
	_, err := getPepper()
	return err
}

func getPepper() ([]byte, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != nil {
		return pepper, nil
	}

	p, err := loadOrGeneratePepper(filepath.Clean(pepperPath))
	if err != nil {
		return nil, fmt.Errorf("cryptox: pepper %s: %w", pepperPath, err)
	}
	pepper = p
	return pepper, nil
}

func loadOrGeneratePepper(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		data = []byte(strings.TrimSpace(string(data)))
		if len(data) == 0 {
			return nil, errors.New("file is empty")
		}
		return data, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	raw := make([]byte, pepperSize)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	encoded := []byte(base64.RawURLEncoding.EncodeToString(raw))

	// O_EXCL so two processes racing on first start agree on one pepper.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return loadOrGeneratePepper(path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Write(encoded); err != nil {
		return nil, err
	}
	return encoded, nil
}
