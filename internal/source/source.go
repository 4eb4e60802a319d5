// Package source holds the collaborators at the edge of the pipeline: where
// page markup comes from and where item pictures go.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPath = errors.New("invalid wiki path")

// PageSource returns the raw markup of one wiki page.
type PageSource interface {
	FetchPage(ctx context.Context, path string) ([]byte, error)
}

// ValidatePath checks that path is a page below prefix, like "/wiki/Tin_Sword".
func ValidatePath(path, prefix string) error {
	if !strings.HasPrefix(path, prefix) || len(path) == len(prefix) {
		return fmt.Errorf("%w: %q does not start with %q", ErrInvalidPath, path, prefix)
	}
	return nil
}
