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

// Package fake is an in-memory backend/bsclient.Client used by
// backend/gateway's tests, standing in for a networked backing store.
package fake

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/nexusfs/s3gw/backend/bsclient"
)

type node struct {
	isDir   bool
	data    []byte
	headers map[string]string
	modTime int64
}

// Store is a thread-safe in-memory tree keyed by "/"-joined paths,
// implementing bsclient.Client for tests.
type Store struct {
	mu    sync.Mutex
	nodes map[string]*node
	user  string
	clock int64
}

var _ bsclient.Client = (*Store)(nil)

func New() *Store {
	s := &Store{
		nodes: map[string]*node{
			"": {isDir: true, headers: map[string]string{}},
		},
		user: "fakestore",
	}
	return s
}

func (s *Store) tick() int64 {
	s.clock++
	return s.clock
}

func clean(path string) string {
	return strings.Trim(path, "/")
}

func parentOf(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

func notFound() error {
	return &bsclient.StatusError{Status: 404, Err: io.ErrUnexpectedEOF}
}

func (s *Store) Info(_ context.Context, path string) (bsclient.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[clean(path)]
	if !ok {
		return bsclient.Info{}, notFound()
	}
	return n.info(), nil
}

func (n *node) info() bsclient.Info {
	h := make(map[string]string, len(n.headers))
	for k, v := range n.headers {
		h[k] = v
	}
	return bsclient.Info{Headers: h, ModTime: n.modTime, IsDirectory: n.isDir}
}

func (s *Store) Mkdir(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mkdir(clean(path))
}

func (s *Store) mkdir(path string) error {
	if _, ok := s.nodes[path]; ok {
		return nil
	}
	parent := parentOf(path)
	if _, ok := s.nodes[parent]; !ok {
		return notFound()
	}
	s.nodes[path] = &node{isDir: true, headers: map[string]string{}, modTime: s.tick()}
	return nil
}

func (s *Store) Mkdirp(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = clean(path)
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	cur := ""
	for _, p := range parts {
		if cur == "" {
			cur = p
		} else {
			cur = cur + "/" + p
		}
		if err := s.mkdir(cur); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Put(_ context.Context, path string, body io.Reader, opts bsclient.PutOptions) (bsclient.Info, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return bsclient.Info{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path = clean(path)
	parent := parentOf(path)
	if parent != "" {
		if n, ok := s.nodes[parent]; !ok || !n.isDir {
			return bsclient.Info{}, notFound()
		}
	}
	h := make(map[string]string, len(opts.Headers)+1)
	for k, v := range opts.Headers {
		h[k] = v
	}
	sum := md5.Sum(data)
	h["content-md5"] = base64.StdEncoding.EncodeToString(sum[:])
	n := &node{data: data, headers: h, modTime: s.tick()}
	s.nodes[path] = n
	return n.info(), nil
}

func (s *Store) Get(_ context.Context, path string) (io.ReadCloser, bsclient.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[clean(path)]
	if !ok {
		return nil, bsclient.Info{}, notFound()
	}
	return io.NopCloser(bytes.NewReader(n.data)), n.info(), nil
}

func (s *Store) Unlink(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = clean(path)
	if _, ok := s.nodes[path]; !ok {
		return notFound()
	}
	delete(s.nodes, path)
	return nil
}

func (s *Store) Ln(_ context.Context, src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	srcNode, ok := s.nodes[clean(src)]
	if !ok {
		return notFound()
	}
	data := make([]byte, len(srcNode.data))
	copy(data, srcNode.data)
	h := make(map[string]string, len(srcNode.headers))
	for k, v := range srcNode.headers {
		h[k] = v
	}
	s.nodes[clean(dst)] = &node{data: data, headers: h, modTime: s.tick()}
	return nil
}

func (s *Store) Ls(ctx context.Context, path string) (<-chan bsclient.Entry, error) {
	s.mu.Lock()
	cleaned := clean(path)
	dir, ok := s.nodes[cleaned]
	if !ok || !dir.isDir {
		s.mu.Unlock()
		return nil, notFound()
	}
	prefix := cleaned
	if prefix != "" {
		prefix += "/"
	}
	var names []string
	for p := range s.nodes {
		if p == cleaned {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest == p || strings.Contains(rest, "/") {
			continue
		}
		names = append(names, p)
	}
	sort.Strings(names)
	entries := make([]bsclient.Entry, 0, len(names))
	for _, p := range names {
		n := s.nodes[p]
		kind := bsclient.EntryFile
		if n.isDir {
			kind = bsclient.EntryDir
		}
		entries = append(entries, bsclient.Entry{
			Kind:    kind,
			Parent:  path,
			Name:    p[len(prefix):],
			Headers: n.info().Headers,
			ModTime: n.modTime,
		})
	}
	s.mu.Unlock()

	ch := make(chan bsclient.Entry)
	go func() {
		defer close(ch)
		for _, e := range entries {
			select {
			case ch <- e:
			case <-ctx.Done():
				return
			}
		}
		select {
		case ch <- bsclient.Entry{Kind: bsclient.EntryEnd}:
		case <-ctx.Done():
		}
	}()
	return ch, nil
}

func (s *Store) User() string { return s.user }
