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

package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/s3err"
)

// ListBuckets handles GET /.
func (c S3ApiController) ListBuckets(ctx *fiber.Ctx) (*Response, error) {
	res, err := c.be.ListBuckets(ctx.Context(), "")
	res.XMLName.Space = c.namespace()
	return &Response{
		Data:     res,
		MetaOpts: &MetaOptions{Action: "ListBuckets"},
	}, err
}

// ListObjects handles GET /{bucket}, with or without ?prefix=&max-keys=.
// A request carrying the ?uploads query dispatches to
// ListMultipartUploads instead.
func (c S3ApiController) ListObjects(ctx *fiber.Ctx) (*Response, error) {
	bucket := ctx.Params("bucket")

	if ctx.Request().URI().QueryArgs().Has("uploads") {
		return c.ListMultipartUploads(ctx)
	}

	prefix := ctx.Query("prefix")
	delimiter := ctx.Query("delimiter")
	maxKeysStr := ctx.Query("max-keys")

	in := &backend.ListObjectsInput{
		Bucket:    bucket,
		Prefix:    prefix,
		Delimiter: delimiter,
	}
	if maxKeysStr != "" {
		n, err := strconv.Atoi(maxKeysStr)
		if err != nil || n < 0 {
			return &Response{
				MetaOpts: &MetaOptions{Action: "ListObjects", BucketOwner: bucket},
			}, s3err.GetAPIError(s3err.ErrInvalidArgument)
		}
		in.HasMaxKeys = true
		in.MaxKeys = n
	}

	res, err := c.be.ListObjects(ctx.Context(), in)
	res.XMLName.Space = c.namespace()
	return &Response{
		Data:     res,
		MetaOpts: &MetaOptions{Action: "ListObjects", BucketOwner: bucket},
	}, err
}

// ListMultipartUploads handles GET /{bucket}?uploads. This gateway
// never supports true multipart upload; the response is always the
// fixed empty listing.
func (c S3ApiController) ListMultipartUploads(ctx *fiber.Ctx) (*Response, error) {
	bucket := ctx.Params("bucket")
	res, err := c.be.ListMultipartUploads(ctx.Context(), bucket)
	res.XMLName.Space = c.namespace()
	return &Response{
		Data:     res,
		MetaOpts: &MetaOptions{Action: "ListMultipartUploads", BucketOwner: bucket},
	}, err
}
