// Package transfer copies an account/character settings pair from one
// profile to another.
package transfer

import (
	"fmt"
	"path"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/resolver"
	"github.com/google/uuid"
)

// Endpoint is a selection with its profile directory resolved.
type Endpoint struct {
	core.Selection
	ProfileDir string
}

// File returns the fs name of the settings file of kind at the endpoint.
func (e Endpoint) File(kind core.SaveKind) string {
	return path.Join(e.ProfileDir, kind.FileName(e.ID(kind)))
}

// Request is a single transfer. It is built right before execution and
// never stored.
type Request struct {
	ID   string
	From Endpoint
	To   Endpoint
}

// NewRequest validates both selections and resolves their profile
// directories against layout.
func NewRequest(layout *resolver.Layout, from, to core.Selection) (*Request, error) {
	src, err := endpoint(layout, "source", from)
	if err != nil {
		return nil, err
	}
	dst, err := endpoint(layout, "destination", to)
	if err != nil {
		return nil, err
	}
	return &Request{
		ID:   uuid.NewString(),
		From: src,
		To:   dst,
	}, nil
}

func endpoint(layout *resolver.Layout, side string, sel core.Selection) (Endpoint, error) {
	if missing := sel.Missing(); len(missing) > 0 {
		return Endpoint{}, &core.IncompleteSelectionError{Side: side, Missing: missing}
	}
	for _, kind := range core.SaveKinds {
		if id := sel.ID(kind); !core.IsNumericID(id) {
			return Endpoint{}, fmt.Errorf("%w: %s %s id %q is not numeric", core.ErrInvalidSelection, side, kind, id)
		}
	}
	dir, err := layout.ProfileDir(sel.Server, sel.Profile)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%s: %w", side, err)
	}
	return Endpoint{Selection: sel, ProfileDir: dir}, nil
}
