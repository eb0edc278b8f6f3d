package config

import (
	"os"
	"path/filepath"
)

const (
	storageVar    = "PORTAL_STORAGE"
	dataFolderVar = "PORTAL_DATA_FOLDER"
)

// Storage backends understood by the CLI.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type StorageConfig interface {
	GetStorageBackend() string
	GetDataFolder() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStorageBackend() string {
	switch backend := GetEnv(storageVar, StorageFile); backend {
	case StorageFile, StorageSQLite, StorageMemory:
		return backend
	default:
		return StorageFile
	}
}

// GetDataFolder returns where durable client state lives (~/.portal by default).
func (Storage) GetDataFolder() string {
	if folder := os.Getenv(dataFolderVar); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".portal")
}
