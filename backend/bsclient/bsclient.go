// Copyright 2023 Versity Software
// This file is licensed under the Apache License, Version 2.0
// (the "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package bsclient declares the contract the gateway backend uses to
// talk to the hierarchical backing store (BS). It deliberately mirrors
// a filesystem-like surface: paths, directories, links, and a single
// metadata header bag per node, rather than an S3-shaped API.
package bsclient

import (
	"context"
	"io"
)

// Info is the header bag the BS attaches to a path: content-length,
// content-type, content-md5, durability-level, and any sidecar m-*
// user metadata, all lowercased.
type Info struct {
	Headers     map[string]string
	ModTime     int64 // unix seconds, BS-reported mtime
	IsDirectory bool
}

// PutOptions carries everything the gateway folds into a BS write:
// the declared length and the full outbound header bag (already
// translated by MetadataCodec).
type PutOptions struct {
	ContentLength int64
	Headers       map[string]string
}

// EntryKind discriminates the event stream Ls emits.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDir
	EntryEnd
	EntryError
)

// Entry is one event in a listing stream. Parent is the absolute BS
// path of the directory the entry was found in; Name is the leaf
// name. Err is only set when Kind is EntryError, and the stream must
// not be read from after an EntryError or EntryEnd event.
type Entry struct {
	Kind    EntryKind
	Parent  string
	Name    string
	Headers map[string]string
	ModTime int64
	Err     error
}

// StatusError carries the BS's HTTP-style status code alongside a Go
// error, so callers can distinguish 404/403 from other faults without
// string matching.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "backing store error"
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusOf extracts the BS status code from err, returning 0 if err
// is nil or not a *StatusError.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	se, ok := err.(*StatusError)
	if !ok {
		return 0
	}
	return se.Status
}

// Client is the BS contract consumed by backend/gateway. Every method
// blocks; the caller's context governs cancellation.
type Client interface {
	// Info stats a path. A missing path returns a *StatusError with
	// Status 404.
	Info(ctx context.Context, path string) (Info, error)

	// Mkdir creates exactly one directory; the parent must already
	// exist. Mkdirp creates the full chain, creating parents as
	// needed.
	Mkdir(ctx context.Context, path string) error
	Mkdirp(ctx context.Context, path string) error

	// Put streams body into path, returning the BS-computed Info
	// (including the MD5 the store computed server-side).
	Put(ctx context.Context, path string, body io.Reader, opts PutOptions) (Info, error)

	// Get opens path for streaming read. The caller must close the
	// returned ReadCloser.
	Get(ctx context.Context, path string) (io.ReadCloser, Info, error)

	Unlink(ctx context.Context, path string) error

	// Ln creates a link from dst to src using the store's native
	// link primitive (used for CopyObject).
	Ln(ctx context.Context, src, dst string) error

	// Ls streams the immediate children of path. The returned channel
	// is closed by the implementation after emitting a terminal
	// EntryEnd or EntryError event; canceling ctx detaches the
	// listener and drains any in-flight entries.
	Ls(ctx context.Context, path string) (<-chan Entry, error)

	// User is the store-level identity attributed to Owner/DisplayName
	// fields in listing responses.
	User() string
}
