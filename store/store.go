// Package store holds the dashboard's key-value persistence. Every panel
// writes its whole collection under one key as a JSON document.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing was ever written under a key.
var ErrNotFound = errors.New("store: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Storage keys, one per panel collection.
const (
	KeyProfile      = "photographer_profile"
	KeyPortfolio    = "photographer_portfolio"
	KeyPackages     = "photographer_packages"
	KeyAvailability = "photographer_availability"
	KeyBookings     = "photographer_bookings"
)

// Key namespaces a collection key by photographer.
func Key(base, photographerID string) string {
	if photographerID == "" {
		return base
	}
	return base + ":" + photographerID
}
