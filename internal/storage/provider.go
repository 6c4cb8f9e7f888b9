// Package storage defines the document file-system abstraction.
package storage

import "time"

// DocumentInfo describes a JSON document found under the store root.
type DocumentInfo struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for document file operations.
type Provider interface {
	// List returns metadata for every .json file under dir (relative to the store root).
	List(dir string) ([]DocumentInfo, error)
	// Read returns the raw bytes of the file at path (relative to the store root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the store root).
	Write(path string, content []byte) error
}
