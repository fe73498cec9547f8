package storage

import (
	"fmt"

	"linkedin-extractor/internal/database"
)

// DBStorage bundles the database and its repositories
type DBStorage struct {
	DB          *database.DB
	ProfileRepo *database.ProfileRepository
	RunRepo     *database.RunRepository
}

// NewDBStorage opens the database at dbPath
func NewDBStorage(dbPath string) (*DBStorage, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	return &DBStorage{
		DB:          db,
		ProfileRepo: database.NewProfileRepository(db),
		RunRepo:     database.NewRunRepository(db),
	}, nil
}

// Close closes the database connection
func (ds *DBStorage) Close() error {
	return ds.DB.Close()
}

// ImportURLsFromFile queues every URL listed in filePath and returns how
// many were read
func (ds *DBStorage) ImportURLsFromFile(filePath string) (int, error) {
	urls, err := LoadURLs(filePath)
	if err != nil {
		return 0, err
	}
	if err := ds.ProfileRepo.ImportURLs(urls); err != nil {
		return 0, fmt.Errorf("failed to import urls: %w", err)
	}
	return len(urls), nil
}
