// Copyright 2026 Versity Software
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

package fsclient

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusfs/s3gw/backend/bsclient"
)

func TestClient_User(t *testing.T) {
	c := New("alice")
	assert.Equal(t, "alice", c.User())
}

func TestClient_MkdirAndInfo(t *testing.T) {
	root := t.TempDir()
	c := New("bob")
	ctx := context.Background()

	dir := filepath.Join(root, "bucket1")
	require.NoError(t, c.Mkdir(ctx, dir))

	info, err := c.Info(ctx, dir)
	require.NoError(t, err)
	assert.True(t, info.IsDirectory)
	assert.Equal(t, directoryContentType, info.Headers["content-type"])
}

func TestClient_Mkdirp(t *testing.T) {
	root := t.TempDir()
	c := New("bob")
	ctx := context.Background()

	dir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, c.Mkdirp(ctx, dir))

	info, err := c.Info(ctx, dir)
	require.NoError(t, err)
	assert.True(t, info.IsDirectory)
}

func TestClient_Info_NotFound(t *testing.T) {
	root := t.TempDir()
	c := New("bob")

	_, err := c.Info(context.Background(), filepath.Join(root, "missing"))
	require.Error(t, err)
	assert.Equal(t, 404, bsclient.StatusOf(err))
}

func TestClient_PutGetRoundTrip(t *testing.T) {
	root := t.TempDir()
	c := New("bob")
	ctx := context.Background()

	path := filepath.Join(root, "obj")
	body := []byte("hello world")
	info, err := c.Put(ctx, path, bytes.NewReader(body), bsclient.PutOptions{
		ContentLength: int64(len(body)),
		Headers:       map[string]string{"content-type": "text/plain", "x-durability-level": "2"},
	})
	require.NoError(t, err)
	assert.False(t, info.IsDirectory)
	assert.Equal(t, "text/plain", info.Headers["content-type"])
	assert.Equal(t, "2", info.Headers["x-durability-level"])
	assert.NotEmpty(t, info.Headers["content-md5"])

	rc, getInfo, err := c.Get(ctx, path)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, "text/plain", getInfo.Headers["content-type"])
}

func TestClient_Unlink(t *testing.T) {
	root := t.TempDir()
	c := New("bob")
	ctx := context.Background()

	path := filepath.Join(root, "obj")
	_, err := c.Put(ctx, path, bytes.NewReader([]byte("x")), bsclient.PutOptions{})
	require.NoError(t, err)

	require.NoError(t, c.Unlink(ctx, path))

	_, err = c.Info(ctx, path)
	assert.Equal(t, 404, bsclient.StatusOf(err))
}

func TestClient_Ln(t *testing.T) {
	root := t.TempDir()
	c := New("bob")
	ctx := context.Background()

	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	_, err := c.Put(ctx, src, bytes.NewReader([]byte("linked")), bsclient.PutOptions{})
	require.NoError(t, err)

	require.NoError(t, c.Ln(ctx, src, dst))

	rc, _, err := c.Get(ctx, dst)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "linked", string(got))
}

func TestClient_Ls(t *testing.T) {
	root := t.TempDir()
	c := New("bob")
	ctx := context.Background()

	require.NoError(t, c.Mkdir(ctx, filepath.Join(root, "subdir")))
	_, err := c.Put(ctx, filepath.Join(root, "file1"), bytes.NewReader([]byte("1")), bsclient.PutOptions{})
	require.NoError(t, err)

	entries, err := c.Ls(ctx, root)
	require.NoError(t, err)

	var kinds []bsclient.EntryKind
	var names []string
	for e := range entries {
		if e.Kind == bsclient.EntryEnd {
			break
		}
		require.NotEqual(t, bsclient.EntryError, e.Kind)
		kinds = append(kinds, e.Kind)
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"subdir", "file1"}, names)
	assert.Len(t, kinds, 2)
}

func TestClient_Ls_CancelStopsEarly(t *testing.T) {
	root := t.TempDir()
	c := New("bob")
	ctx, cancel := context.WithCancel(context.Background())

	for i := 0; i < 10; i++ {
		_, err := c.Put(ctx, filepath.Join(root, "f"+string(rune('a'+i))), bytes.NewReader([]byte("x")), bsclient.PutOptions{})
		require.NoError(t, err)
	}

	entries, err := c.Ls(ctx, root)
	require.NoError(t, err)

	<-entries
	cancel()

	for range entries {
	}
}
