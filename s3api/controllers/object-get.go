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
	"github.com/gofiber/fiber/v2"
)

// GetObject handles GET /{bucket}/{key}. A request carrying the ?acl
// query dispatches to GetObjectAcl instead.
func (c S3ApiController) GetObject(ctx *fiber.Ctx) (*Response, error) {
	bucket := ctx.Params("bucket")
	key := objectKey(ctx, bucket)

	if ctx.Request().URI().QueryArgs().Has("acl") {
		return c.getObjectAcl(ctx, bucket, key)
	}

	meta, err := c.be.GetObject(ctx.Context(), bucket, key, ctx.Response().BodyWriter())
	if err != nil {
		return &Response{
			MetaOpts: &MetaOptions{Action: "GetObject", BucketOwner: bucket},
		}, err
	}

	headers := map[string]string{
		"Content-Type":        meta.ContentType,
		"ETag":                `"` + meta.ETag + `"`,
		"Last-Modified":       meta.LastModified,
		"x-amz-storage-class": meta.StorageClass,
	}
	for k, v := range meta.UserMetadata {
		headers["x-amz-meta-"+k] = v
	}

	return &Response{
		Headers: headers,
		MetaOpts: &MetaOptions{
			Action:      "GetObject",
			BucketOwner: bucket,
			ObjectSize:  meta.ContentLength,
		},
	}, nil
}

func (c S3ApiController) getObjectAcl(ctx *fiber.Ctx, bucket, key string) (*Response, error) {
	res, err := c.be.GetObjectAcl(ctx.Context(), bucket, key)
	res.XMLName.Space = c.namespace()
	return &Response{
		Data:     res,
		MetaOpts: &MetaOptions{Action: "GetObjectAcl", BucketOwner: bucket},
	}, err
}
