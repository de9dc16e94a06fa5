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
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/nexusfs/s3gw/backend/bsclient/fake"
	"github.com/nexusfs/s3gw/backend/gateway"
)

// stringBody wraps a literal string as the io.Reader httptest.NewRequest
// wants for a request body.
func stringBody(s string) *strings.Reader { return strings.NewReader(s) }

// newTestApp wires a fresh Gateway over an in-memory fake backing
// store onto a minimal fiber.App exercising this gateway's HTTP
// surface, without depending on the s3api package (which imports
// controllers and would create an import cycle).
func newTestApp() *fiber.App {
	be := gateway.New(fake.New(), gateway.Options{
		Root:              "",
		MaxPathLength:     4096,
		MaxSegmentLength:  255,
		DefaultDurability: 2,
	})
	ctrl := New(be, nil, false, "2006-03-01", false)

	app := fiber.New()
	pr := func(h Handler) fiber.Handler { return ProcessResponse(h, nil, false, false) }

	app.Get("/", pr(ctrl.ListBuckets))

	bucketRouter := app.Group("/:bucket")
	bucketRouter.Put("", pr(ctrl.CreateBucket))
	bucketRouter.Head("", pr(ctrl.HeadBucket))
	bucketRouter.Delete("", pr(ctrl.DeleteBucket))
	bucketRouter.Get("", pr(ctrl.ListObjects))

	objectRouter := app.Group("/:bucket/*")
	objectRouter.Put("", pr(ctrl.PutObject))
	objectRouter.Get("", pr(ctrl.GetObject))
	objectRouter.Head("", pr(ctrl.HeadObject))
	objectRouter.Delete("", pr(ctrl.DeleteObject))

	return app
}

// mustCreateBucket is a shared setup step for tests that need an
// existing bucket before exercising object-level handlers.
func mustCreateBucket(t *testing.T, app *fiber.App, bucket string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("PUT", "/"+bucket, nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}
