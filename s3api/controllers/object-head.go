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
)

// HeadObject handles HEAD /{bucket}/{key}.
func (c S3ApiController) HeadObject(ctx *fiber.Ctx) (*Response, error) {
	bucket := ctx.Params("bucket")
	key := objectKey(ctx, bucket)

	meta, err := c.be.HeadObject(ctx.Context(), bucket, key)
	if err != nil {
		return &Response{
			MetaOpts: &MetaOptions{Action: "HeadObject", BucketOwner: bucket},
		}, err
	}

	headers := map[string]string{
		"Content-Type":        meta.ContentType,
		"Content-Length":      strconv.FormatInt(meta.ContentLength, 10),
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
			Action:      "HeadObject",
			BucketOwner: bucket,
			ObjectSize:  meta.ContentLength,
		},
	}, nil
}
