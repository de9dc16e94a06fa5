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

package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutObject(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	req := httptest.NewRequest("PUT", "/bk1/key1", stringBody("hello"))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("ETag"))
}

func TestPutObject_NestedKey(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	req := httptest.NewRequest("PUT", "/bk1/a/b/c", stringBody("nested"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestPutObject_PathTraversalRejected(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	req := httptest.NewRequest("PUT", "/bk1/../../etc/passwd", stringBody("pwned"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, 200, resp.StatusCode)
}

func TestPutObject_NoSuchBucket(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("PUT", "/nope/key1", stringBody("hello"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCopyObject(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	req := httptest.NewRequest("PUT", "/bk1/src", stringBody("copy-me"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("PUT", "/bk1/dst", nil)
	req.Header.Set("X-Amz-Copy-Source", "/bk1/src")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/bk1/dst", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestPutObjectAcl(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	req := httptest.NewRequest("PUT", "/bk1/key1", stringBody("hello"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("PUT", "/bk1/key1?acl", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
