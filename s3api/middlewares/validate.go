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

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/s3err"
)

// ValidateBucketName rejects requests against DNS-incompatible bucket
// names before they reach a controller. Mounted with app.Use there is
// no :bucket route param, so the bucket is taken from the first path
// segment.
func ValidateBucketName() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		bucket := ctx.Params("bucket")
		if bucket == "" {
			bucket, _, _ = strings.Cut(strings.TrimPrefix(ctx.Path(), "/"), "/")
		}
		if bucket != "" && !backend.IsValidBucketName(bucket) {
			return s3err.GetAPIError(s3err.ErrInvalidBucketName)
		}
		return ctx.Next()
	}
}
