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
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nexusfs/s3gw/backend"
)

func objectKey(ctx *fiber.Ctx, bucket string) string {
	return strings.TrimPrefix(ctx.Path(), fmt.Sprintf("/%s/", bucket))
}

// PutObject handles PUT /{bucket}/{key}. When the request carries
// X-Amz-Copy-Source it dispatches to CopyObject instead; when it
// carries the ?acl query it dispatches to PutObjectAcl.
func (c S3ApiController) PutObject(ctx *fiber.Ctx) (*Response, error) {
	bucket := ctx.Params("bucket")
	key := objectKey(ctx, bucket)

	if ctx.Request().URI().QueryArgs().Has("acl") {
		return c.putObjectAcl(ctx, bucket, key)
	}
	if copySource := ctx.Get("X-Amz-Copy-Source"); copySource != "" {
		return c.copyObject(ctx, bucket, key, copySource)
	}

	headers := make(http.Header, len(ctx.Request().Header.Header()))
	ctx.Request().Header.VisitAll(func(k, v []byte) {
		headers.Add(string(k), string(v))
	})

	etag, err := c.be.PutObject(ctx.Context(), &backend.PutObjectInput{
		Bucket:        bucket,
		Key:           key,
		Body:          ctx.Request().BodyStream(),
		ContentLength: int64(ctx.Request().Header.ContentLength()),
		Headers:       headers,
	})
	return &Response{
		Headers: map[string]string{"ETag": `"` + etag + `"`},
		MetaOpts: &MetaOptions{
			Action:      "PutObject",
			BucketOwner: bucket,
			ObjectSize:  int64(ctx.Request().Header.ContentLength()),
		},
	}, err
}

func (c S3ApiController) copyObject(ctx *fiber.Ctx, dstBucket, dstKey, copySource string) (*Response, error) {
	srcBucket, srcKey, _, err := backend.ParseCopySource(copySource)
	if err != nil {
		return nil, err
	}

	res, err := c.be.CopyObject(ctx.Context(), &backend.CopyObjectInput{
		SrcBucket: srcBucket,
		SrcKey:    srcKey,
		DstBucket: dstBucket,
		DstKey:    dstKey,
	})
	res.XMLName.Space = c.namespace()
	return &Response{
		Data:     res,
		MetaOpts: &MetaOptions{Action: "CopyObject", BucketOwner: dstBucket},
	}, err
}

func (c S3ApiController) putObjectAcl(ctx *fiber.Ctx, bucket, key string) (*Response, error) {
	err := c.be.PutObjectAcl(ctx.Context(), bucket, key)
	return &Response{
		MetaOpts: &MetaOptions{Action: "PutObjectAcl", BucketOwner: bucket},
	}, err
}
