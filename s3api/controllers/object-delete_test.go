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

func TestDeleteObject(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	resp, err := app.Test(httptest.NewRequest("PUT", "/bk1/key1", stringBody("hello")))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/bk1/key1", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, "false", resp.Header.Get("x-amz-delete-marker"))

	resp, err = app.Test(httptest.NewRequest("HEAD", "/bk1/key1", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteObject_Missing(t *testing.T) {
	app := newTestApp()
	mustCreateBucket(t, app, "bk1")

	resp, err := app.Test(httptest.NewRequest("DELETE", "/bk1/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
