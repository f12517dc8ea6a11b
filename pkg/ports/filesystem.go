package ports

import "io"

// FileSystem abstracts file system operations.
type FileSystem interface {
	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// Create creates (or truncates) a file for writing a rendered video.
	// Parent directories are created as needed.
	Create(path string) (OutputFile, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Size returns the size of a file in bytes.
	Size(path string) (int64, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}

// OutputFile is a writable destination for a container file.
type OutputFile interface {
	io.Writer
	io.Closer
	Name() string
}
