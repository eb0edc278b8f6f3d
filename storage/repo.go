// Package storage defines the durable key/value store backing the portal
// client's session, credential and tenant state.
package storage

import (
	perrors "github.com/cunservicios/portal/internal/errors"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = perrors.ErrNotFound
	// ErrUnavailable is returned when the backing store cannot be used at all.
	ErrUnavailable = perrors.ErrUnavailable
)

// Repo is a synchronous string key/value store. Writes are last-writer-wins.
type Repo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Unavailable is a Repo that fails every operation, standing in for a
// disabled or absent store.
type Unavailable struct{}

var _ Repo = Unavailable{}

func (Unavailable) Get(string) (string, error) { return "", ErrUnavailable }
func (Unavailable) Set(string, string) error   { return ErrUnavailable }
func (Unavailable) Delete(string) error        { return ErrUnavailable }
