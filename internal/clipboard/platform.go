package clipboard

import "github.com/atotto/clipboard"

// ReadFunc reads the platform clipboard.
type ReadFunc func() (string, error)

// WriteFunc writes the platform clipboard.
type WriteFunc func(string) error

// SystemRead reads from the system clipboard.
func SystemRead() (string, error) {
	return clipboard.ReadAll()
}

// SystemWrite writes to the system clipboard.
func SystemWrite(text string) error {
	return clipboard.WriteAll(text)
}
