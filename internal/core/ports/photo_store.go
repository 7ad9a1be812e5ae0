package ports

import "io"

// PhotoStore persists profile photo files outside the identity record.
// The identity record only keeps the stored file name.
type PhotoStore interface {
	Save(name string, content io.Reader) error
	Remove(name string) error
}
