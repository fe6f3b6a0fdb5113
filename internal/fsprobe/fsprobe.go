// Package fsprobe answers "does this file exist?" for shell discovery.
package fsprobe

import (
	"context"

	"github.com/spf13/afero"
)

// Prober checks whether a path exists.
type Prober interface {
	// Exists reports whether path exists. Failures are reported as false.
	Exists(ctx context.Context, path string) bool
}

// AferoProber implements Prober over an afero filesystem.
type AferoProber struct {
	fs afero.Fs
}

// NewOSProber returns a Prober backed by the host filesystem.
func NewOSProber() *AferoProber {
	return NewProber(afero.NewOsFs())
}

// NewProber returns a Prober backed by fs.
func NewProber(fs afero.Fs) *AferoProber {
	return &AferoProber{fs: fs}
}

// Exists implements Prober. The stat runs on its own goroutine so a
// cancelled context returns false without waiting for a slow filesystem.
func (p *AferoProber) Exists(ctx context.Context, path string) bool {
	if ctx.Err() != nil || path == "" {
		return false
	}

	result := make(chan bool, 1)
	go func() {
		ok, err := afero.Exists(p.fs, path)
		result <- err == nil && ok
	}()

	select {
	case ok := <-result:
		return ok
	case <-ctx.Done():
		return false
	}
}
