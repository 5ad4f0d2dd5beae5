package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDirectoryNotFound      = errors.New("directory not found")
	ErrAmbiguousDirectory     = errors.New("ambiguous directory")
	ErrProfileListUnavailable = errors.New("profile list unavailable")
	ErrMetadataUnavailable    = errors.New("metadata unavailable")
	ErrCopyFailed             = errors.New("copy failed")
	ErrPreferenceUnreadable   = errors.New("preference file unreadable")
	ErrPreferenceToggleFailed = errors.New("preference toggle failed")
	ErrIncompleteSelection    = errors.New("incomplete selection")
	ErrInvalidSelection       = errors.New("invalid selection")
	ErrUnknownServer          = errors.New("unknown server")
)

// DirectoryNotFoundError is returned when no entry under Root ends with
// Suffix. Cause is set when Root itself could not be read.
type DirectoryNotFoundError struct {
	Root   string
	Suffix string
	Cause  error
}

func (e *DirectoryNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot look for a directory ending in %q in %s: %v", e.Suffix, e.Root, e.Cause)
	}
	return fmt.Sprintf("no directory ending in %q found in %s", e.Suffix, e.Root)
}

func (e *DirectoryNotFoundError) Unwrap() error {
	return e.Cause
}

func (e *DirectoryNotFoundError) Is(target error) bool {
	return target == ErrDirectoryNotFound
}

// AmbiguousDirectoryError is returned when more than one entry ends with Suffix.
type AmbiguousDirectoryError struct {
	Root    string
	Suffix  string
	Matches []string
}

func (e *AmbiguousDirectoryError) Error() string {
	return fmt.Sprintf("%d directories ending in %q found in %s: %s",
		len(e.Matches), e.Suffix, e.Root, strings.Join(e.Matches, ", "))
}

func (e *AmbiguousDirectoryError) Is(target error) bool {
	return target == ErrAmbiguousDirectory
}

// ProfileListUnavailableError wraps a failure to read a server directory.
type ProfileListUnavailableError struct {
	Dir   string
	Cause error
}

func (e *ProfileListUnavailableError) Error() string {
	return fmt.Sprintf("cannot list profiles in %s: %v", e.Dir, e.Cause)
}

func (e *ProfileListUnavailableError) Unwrap() error {
	return e.Cause
}

func (e *ProfileListUnavailableError) Is(target error) bool {
	return target == ErrProfileListUnavailable
}

// MetadataUnavailableError wraps a failure to stat a single save file.
type MetadataUnavailableError struct {
	Path  string
	Cause error
}

func (e *MetadataUnavailableError) Error() string {
	return fmt.Sprintf("cannot read metadata of %s: %v", e.Path, e.Cause)
}

func (e *MetadataUnavailableError) Unwrap() error {
	return e.Cause
}

func (e *MetadataUnavailableError) Is(target error) bool {
	return target == ErrMetadataUnavailable
}

// CopyFailedError reports the first failing copy of a transfer.
type CopyFailedError struct {
	Kind        SaveKind
	Source      string
	Destination string
	// Path is whichever of Source or Destination the failing call touched.
	Path  string
	Cause error
}

func (e *CopyFailedError) Error() string {
	return fmt.Sprintf("copy %s %s -> %s failed at %s: %v",
		e.Kind, e.Source, e.Destination, e.Path, e.Cause)
}

func (e *CopyFailedError) Unwrap() error {
	return e.Cause
}

func (e *CopyFailedError) Is(target error) bool {
	return target == ErrCopyFailed
}

// PreferenceError reports a failed read or toggle of prefs.ini.
type PreferenceError struct {
	Op    string // "read" or "toggle"
	Path  string
	Cause error
}

func (e *PreferenceError) Error() string {
	return fmt.Sprintf("failed to %s preferences %s: %v", e.Op, e.Path, e.Cause)
}

func (e *PreferenceError) Unwrap() error {
	return e.Cause
}

func (e *PreferenceError) Is(target error) bool {
	if e.Op == "read" {
		return target == ErrPreferenceUnreadable
	}
	return target == ErrPreferenceToggleFailed
}

// IncompleteSelectionError lists the unset fields of a transfer request.
type IncompleteSelectionError struct {
	Side    string // "source" or "destination"
	Missing []string
}

func (e *IncompleteSelectionError) Error() string {
	return fmt.Sprintf("%s selection is missing %s", e.Side, strings.Join(e.Missing, ", "))
}

func (e *IncompleteSelectionError) Is(target error) bool {
	return target == ErrIncompleteSelection
}

// UnknownServerError is returned for a server name absent from the layout.
type UnknownServerError struct {
	Name  string
	Known []string
}

func (e *UnknownServerError) Error() string {
	return fmt.Sprintf("unknown server %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownServerError) Is(target error) bool {
	return target == ErrUnknownServer
}
