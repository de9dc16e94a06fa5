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

func TestHeadObject(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	req := httptest.NewRequest("PUT", "/bk1/key1", stringBody("hello"))
	req.Header.Set("x-amz-meta-env", "prod")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("HEAD", "/bk1/key1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "5", resp.Header.Get("Content-Length"))
	assert.Equal(t, "prod", resp.Header.Get("x-amz-meta-env"))
}

func TestHeadObject_NotFound(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	resp, err := app.Test(httptest.NewRequest("HEAD", "/bk1/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
