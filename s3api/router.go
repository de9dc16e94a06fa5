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

package s3api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/s3api/controllers"
	"github.com/nexusfs/s3gw/s3api/middlewares"
	"github.com/nexusfs/s3gw/s3log"
)

// S3ApiRouter wires the translation engine's HTTP surface onto a
// fiber.App: one route per S3 verb/resource pair. Query-parameter
// dispatch (?acl, ?uploads, X-Amz-Copy-Source) is handled inside the
// controller itself, since a single path shape answers more than one
// S3 operation.
type S3ApiRouter struct {
	app         *fiber.App
	be          backend.Backend
	logger      s3log.AuditLogger
	debug       bool
	s3Version   string
	prettyPrint bool

	Ctrl controllers.S3ApiController
}

func (sa *S3ApiRouter) Init() {
	version := sa.s3Version
	if version == "" {
		version = "2006-03-01"
	}
	ctrl := controllers.New(sa.be, sa.logger, sa.debug, version, sa.prettyPrint)
	sa.Ctrl = ctrl

	pr := func(h controllers.Handler) fiber.Handler {
		return controllers.ProcessResponse(h, sa.logger, sa.prettyPrint, sa.debug)
	}

	sa.app.Use(controllers.WrapMiddleware(middlewares.ValidateBucketName(), sa.logger))

	sa.app.Get("/", pr(ctrl.ListBuckets))

	bucketRouter := sa.app.Group("/:bucket")
	bucketRouter.Put("", pr(ctrl.CreateBucket))
	bucketRouter.Head("", pr(ctrl.HeadBucket))
	bucketRouter.Delete("", pr(ctrl.DeleteBucket))
	bucketRouter.Get("", pr(ctrl.ListObjects))

	objectRouter := sa.app.Group("/:bucket/*")
	objectRouter.Put("", pr(ctrl.PutObject))
	objectRouter.Get("", pr(ctrl.GetObject))
	objectRouter.Head("", pr(ctrl.HeadObject))
	objectRouter.Delete("", pr(ctrl.DeleteObject))

	sa.app.Use(pr(ctrl.HandleUnmatch))
}
