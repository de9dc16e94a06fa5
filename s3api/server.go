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
	"crypto/tls"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/s3log"
)

type S3ApiServer struct {
	app         *fiber.App
	backend     backend.Backend
	router      *S3ApiRouter
	port        string
	cert        *tls.Certificate
	quiet       bool
	debug       bool
	health      string
	s3Version   string
	prettyPrint bool
}

func New(
	app *fiber.App,
	be backend.Backend,
	port string,
	l s3log.AuditLogger,
	opts ...Option,
) (*S3ApiServer, error) {
	server := &S3ApiServer{
		app:       app,
		backend:   be,
		router:    &S3ApiRouter{app: app, be: be, logger: l},
		port:      port,
		s3Version: "2006-03-01",
	}

	for _, opt := range opts {
		opt(server)
	}
	server.router.debug = server.debug
	server.router.s3Version = server.s3Version
	server.router.prettyPrint = server.prettyPrint

	if !server.quiet {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error} | ${queryParams}\n",
		}))
	}

	if server.health != "" {
		app.Get(server.health, func(ctx *fiber.Ctx) error {
			return ctx.SendStatus(http.StatusOK)
		})
	}

	server.router.Init()

	return server, nil
}

// Option sets various options for New()
type Option func(*S3ApiServer)

// WithTLS sets TLS Credentials
func WithTLS(cert tls.Certificate) Option {
	return func(s *S3ApiServer) { s.cert = &cert }
}

// WithDebug sets debug output
func WithDebug() Option {
	return func(s *S3ApiServer) { s.debug = true }
}

// WithQuiet silences default logging output
func WithQuiet() Option {
	return func(s *S3ApiServer) { s.quiet = true }
}

// WithHealth sets up a GET health endpoint
func WithHealth(health string) Option {
	return func(s *S3ApiServer) { s.health = health }
}

// WithS3Version overrides the xmlns document version stamped onto
// every XML response body.
func WithS3Version(version string) Option {
	return func(s *S3ApiServer) { s.s3Version = version }
}

// WithPrettyPrint indents every XML response body for readability.
func WithPrettyPrint() Option {
	return func(s *S3ApiServer) { s.prettyPrint = true }
}

func (sa *S3ApiServer) Serve() (err error) {
	if sa.cert != nil {
		return sa.app.ListenTLSWithCertificate(sa.port, *sa.cert)
	}
	return sa.app.Listen(sa.port)
}
