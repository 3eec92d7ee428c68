package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

// keyfile is the on-disk JSON layout of the device keyfile.
type keyfile struct {
	InstallationID string `json:"installation_id"`
	KeyMaterial    []byte `json:"key_material"`
}

// LoadDeviceKey returns the 32-byte sealing key for this installation,
// creating the keyfile on first run. The keyfile is written with mode 0600
// and is never synchronized off the device; losing it renders previously
// sealed entries unreadable (they surface as ErrCorruptEntry).
func LoadDeviceKey(path string) ([]byte, error) {
	kf, err := readKeyfile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: reading keyfile: %v", ErrStore, err)
		}
		kf, err = createKeyfile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: creating keyfile: %v", ErrStore, err)
		}
	}

	// argon2id binds the key to both the random material and the
	// installation id, so a copied keyfile fragment alone is not enough.
	key := argon2.IDKey(kf.KeyMaterial, []byte(kf.InstallationID), 1, 64*1024, 4, 32)
	return key, nil
}

func readKeyfile(path string) (*keyfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var kf keyfile
	if err := json.Unmarshal(b, &kf); err != nil {
		return nil, err
	}
	if kf.InstallationID == "" || len(kf.KeyMaterial) == 0 {
		return nil, fmt.Errorf("keyfile %s is incomplete", path)
	}
	return &kf, nil
}

func createKeyfile(path string) (*keyfile, error) {
	material := make([]byte, 32)
	if _, err := randRead(material); err != nil {
		return nil, err
	}

	kf := &keyfile{
		InstallationID: uuid.NewString(),
		KeyMaterial:    material,
	}

	b, err := json.Marshal(kf)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return nil, err
	}
	return kf, nil
}
