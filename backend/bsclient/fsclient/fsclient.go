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

// Package fsclient implements backend/bsclient.Client against a local
// POSIX filesystem: paths map directly onto directory entries, and the
// per-node header bag is kept in extended attributes, one xattr per
// header, under the "user." namespace.
package fsclient

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/xattr"

	"github.com/nexusfs/s3gw/backend/bsclient"
)

const xattrPrefix = "user.bsgw."

// Client is a bsclient.Client backed by the local filesystem rooted at
// wherever the caller's paths point; it does not itself confine paths
// to a root, trusting backend/gateway's Sanitize/JoinObject to have
// already done so.
type Client struct {
	user string
}

// New returns a Client that attributes every listing/ACL owner field
// to user.
func New(user string) *Client {
	return &Client{user: user}
}

var _ bsclient.Client = (*Client)(nil)

func (c *Client) User() string { return c.user }

func statusErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &bsclient.StatusError{Status: 404, Err: err}
	case errors.Is(err, os.ErrPermission):
		return &bsclient.StatusError{Status: 403, Err: err}
	case errors.Is(err, os.ErrExist):
		return &bsclient.StatusError{Status: 409, Err: err}
	default:
		return err
	}
}

func readHeaders(path string) (map[string]string, error) {
	names, err := xattr.List(path)
	if err != nil {
		if errors.Is(err, xattr.ENOATTR) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	headers := make(map[string]string, len(names))
	for _, name := range names {
		if len(name) <= len(xattrPrefix) || name[:len(xattrPrefix)] != xattrPrefix {
			continue
		}
		val, err := xattr.Get(path, name)
		if err != nil {
			continue
		}
		headers[name[len(xattrPrefix):]] = string(val)
	}
	return headers, nil
}

func writeHeaders(path string, headers map[string]string) error {
	for k, v := range headers {
		if err := xattr.Set(path, xattrPrefix+k, []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) Info(ctx context.Context, path string) (bsclient.Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return bsclient.Info{}, statusErr(err)
	}
	headers, err := readHeaders(path)
	if err != nil {
		return bsclient.Info{}, statusErr(err)
	}
	if fi.IsDir() {
		headers["content-type"] = directoryContentType
	} else {
		headers["content-length"] = strconv.FormatInt(fi.Size(), 10)
	}
	return bsclient.Info{
		Headers:     headers,
		ModTime:     fi.ModTime().Unix(),
		IsDirectory: fi.IsDir(),
	}, nil
}

const directoryContentType = "application/x-json-stream; type=directory"

func (c *Client) Mkdir(ctx context.Context, path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		return statusErr(err)
	}
	return nil
}

func (c *Client) Mkdirp(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return statusErr(err)
	}
	return nil
}

func (c *Client) Put(ctx context.Context, path string, body io.Reader, opts bsclient.PutOptions) (bsclient.Info, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bsgw-upload-*")
	if err != nil {
		return bsclient.Info{}, statusErr(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	hash := md5.New()
	if _, err := io.Copy(tmp, io.TeeReader(body, hash)); err != nil {
		tmp.Close()
		return bsclient.Info{}, err
	}
	if err := tmp.Close(); err != nil {
		return bsclient.Info{}, err
	}

	headers := make(map[string]string, len(opts.Headers)+1)
	for k, v := range opts.Headers {
		headers[k] = v
	}
	headers["content-md5"] = base64.StdEncoding.EncodeToString(hash.Sum(nil))

	if err := writeHeaders(tmpName, headers); err != nil {
		return bsclient.Info{}, statusErr(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return bsclient.Info{}, statusErr(err)
	}

	return c.Info(ctx, path)
}

func (c *Client) Get(ctx context.Context, path string) (io.ReadCloser, bsclient.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, bsclient.Info{}, statusErr(err)
	}
	info, err := c.Info(ctx, path)
	if err != nil {
		f.Close()
		return nil, bsclient.Info{}, err
	}
	return f, info, nil
}

func (c *Client) Unlink(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return statusErr(err)
	}
	return nil
}

func (c *Client) Ln(ctx context.Context, src, dst string) error {
	if err := os.Link(src, dst); err != nil {
		return statusErr(err)
	}
	return nil
}

func (c *Client) Ls(ctx context.Context, path string) (<-chan bsclient.Entry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, statusErr(err)
	}

	out := make(chan bsclient.Entry)
	go func() {
		defer close(out)
		for _, e := range entries {
			select {
			case <-ctx.Done():
				return
			default:
			}

			info, err := e.Info()
			if err != nil {
				select {
				case out <- bsclient.Entry{Kind: bsclient.EntryError, Err: statusErr(err)}:
				case <-ctx.Done():
				}
				return
			}

			childPath := filepath.Join(path, e.Name())
			headers, err := readHeaders(childPath)
			if err != nil {
				select {
				case out <- bsclient.Entry{Kind: bsclient.EntryError, Err: statusErr(err)}:
				case <-ctx.Done():
				}
				return
			}

			kind := bsclient.EntryFile
			if info.IsDir() {
				kind = bsclient.EntryDir
			} else {
				headers["content-length"] = strconv.FormatInt(info.Size(), 10)
			}

			entry := bsclient.Entry{
				Kind:    kind,
				Parent:  path,
				Name:    e.Name(),
				Headers: headers,
				ModTime: info.ModTime().Unix(),
			}
			select {
			case out <- entry:
			case <-ctx.Done():
				return
			}
		}
		select {
		case out <- bsclient.Entry{Kind: bsclient.EntryEnd}:
		case <-ctx.Done():
		}
	}()
	return out, nil
}
