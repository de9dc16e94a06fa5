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
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// DeleteObject handles DELETE /{bucket}/{key}.
func (c S3ApiController) DeleteObject(ctx *fiber.Ctx) (*Response, error) {
	bucket := ctx.Params("bucket")
	key := objectKey(ctx, bucket)

	err := c.be.DeleteObject(ctx.Context(), bucket, key)
	return &Response{
		Headers: map[string]string{"x-amz-delete-marker": "false"},
		MetaOpts: &MetaOptions{
			Action:      "DeleteObject",
			BucketOwner: bucket,
			Status:      http.StatusNoContent,
		},
	}, err
}
