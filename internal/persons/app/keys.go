package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/persons/internal/persons/store"
	"github.com/aussiebroadwan/persons/pkg/cryptox"
	"github.com/aussiebroadwan/persons/pkg/jwtx"
)

// InitAuthKeys creates the KeyManager for the configured algorithm and
// storage mode.
//
// Storage modes:
//   - "ephemeral": keys are generated on startup and kept in memory only.
//     Every issued token becomes invalid when the service restarts.
//   - "persistent": keys are sealed with the master key and stored in the
//     database, so tokens survive restarts.
func InitAuthKeys(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		Audience:  cfg.AudienceList(),
		RSABits:   cfg.RSABits,
		NumKeys:   cfg.NumKeys,
	}

	if cfg.KeyStorageMode == KeyStoragePersistent {
		master, err := loadOrCreateMasterKey(cfg.MasterKeyFile, logger)
		if err != nil {
			return nil, err
		}
		opts.Store = store.NewKeyStoreAdapter(db)
		opts.Sealer = master
	}

	logger.Info("initializing key manager",
		"mode", cfg.KeyStorageMode,
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
	)

	keyManager, err := jwtx.NewKeyManager(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s key manager: %w", cfg.KeyStorageMode, err)
	}

	logger.Info("signing keys ready",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"published", keyManager.KeySet.Len(),
		"issuer", cfg.Issuer,
	)
	if cfg.KeyStorageMode != KeyStoragePersistent {
		logger.Warn("ephemeral keys: tokens issued before this start are no longer valid")
	}

	return keyManager, nil
}

// loadOrCreateMasterKey reads the master key, writing a fresh random one the
// first time the service runs.
func loadOrCreateMasterKey(path string, logger *slog.Logger) (*cryptox.MasterKey, error) {
	key, err := cryptox.LoadMasterKey(path)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create master key dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write master key: %w", err)
	}
	logger.Warn("generated new master key", "path", path)

	return cryptox.NewMasterKey([]byte(secret))
}
