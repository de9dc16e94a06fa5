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

// Package controllers translates fiber requests into backend.Backend
// calls and XML/header responses. Each handler returns a *Response
// (or an error) and leaves encoding, header flushing, and audit
// logging to ProcessResponse.
package controllers

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/s3api/debuglogger"
	"github.com/nexusfs/s3gw/s3err"
	"github.com/nexusfs/s3gw/s3log"
	"github.com/nexusfs/s3gw/s3response"
)

type S3ApiController struct {
	be          backend.Backend
	logger      s3log.AuditLogger
	debug       bool
	s3Version   string
	prettyPrint bool
}

const maxXMLBodyLen = 4 * 1024 * 1024

var xmlhdr = []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

func New(be backend.Backend, logger s3log.AuditLogger, debug bool, s3Version string, prettyPrint bool) S3ApiController {
	if debug {
		debuglogger.SetDebugEnabled()
	}
	return S3ApiController{be: be, logger: logger, debug: debug, s3Version: s3Version, prettyPrint: prettyPrint}
}

// namespace returns the xmlns value this controller stamps onto every
// XML response body's XMLName.Space.
func (c S3ApiController) namespace() string {
	return s3response.Namespace(c.s3Version)
}

// MetaOptions carries everything ProcessResponse needs to log and
// report a completed request beyond the response body itself.
type MetaOptions struct {
	Action      string
	BucketOwner string
	ObjectSize  int64
	Status      int
}

type Response struct {
	Data     any
	Headers  map[string]string
	MetaOpts *MetaOptions
}

type Handler func(ctx *fiber.Ctx) (*Response, error)

// ProcessResponse wraps a Handler into a fiber.Handler: it flushes
// custom headers, stamps x-amz-request-id/x-amz-id-2 on every
// response for SDK fidelity, encodes the XML body when Data is set,
// and audits the outcome. When prettyPrint is set, the XML body is
// indented for readability at the cost of a few extra bytes per
// response.
func ProcessResponse(handler Handler, logger s3log.AuditLogger, prettyPrint, debug bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestID := uuid.New().String()
		ctx.Response().Header.Set("x-amz-request-id", requestID)
		ctx.Response().Header.Set("x-amz-id-2", uuid.New().String())

		if debug {
			debuglogger.LogFiberRequestDetails(ctx)
			defer debuglogger.LogFiberResponseDetails(ctx)
		}

		response, err := handler(ctx)

		opts := &MetaOptions{}
		if response != nil && response.MetaOpts != nil {
			opts = response.MetaOpts
		}
		if response != nil {
			SetResponseHeaders(ctx, response.Headers)
		}

		if err != nil {
			if logger != nil {
				logger.Log(ctx, err, nil, s3log.LogMeta{
					Action:      opts.Action,
					BucketOwner: opts.BucketOwner,
					ObjectSize:  opts.ObjectSize,
				})
			}
			serr, ok := err.(s3err.APIError)
			if !ok {
				debuglogger.Logf("internal error: %v", err)
				serr = s3err.GetAPIError(s3err.ErrInternalError)
			}
			ctx.Status(serr.HTTPStatusCode)
			return ctx.Send(s3err.GetAPIErrorResponse(serr, "", requestID, requestID))
		}

		if opts.Status == 0 {
			opts.Status = http.StatusOK
		}

		if response.Data == nil {
			ctx.Status(opts.Status)
			if logger != nil {
				logger.Log(ctx, nil, nil, s3log.LogMeta{
					Action:      opts.Action,
					BucketOwner: opts.BucketOwner,
					ObjectSize:  opts.ObjectSize,
				})
			}
			return nil
		}

		if encoded, ok := response.Data.([]byte); ok {
			if logger != nil {
				logger.Log(ctx, nil, encoded, s3log.LogMeta{
					Action:      opts.Action,
					BucketOwner: opts.BucketOwner,
					ObjectSize:  opts.ObjectSize,
				})
			}
			ctx.Status(opts.Status)
			return ctx.Send(encoded)
		}

		var body []byte
		var merr error
		if prettyPrint {
			body, merr = xml.MarshalIndent(response.Data, "", "  ")
		} else {
			body, merr = xml.Marshal(response.Data)
		}
		if merr != nil {
			return merr
		}

		msglen := len(xmlhdr) + len(body)
		if msglen > maxXMLBodyLen {
			debuglogger.Logf("XML body len %v exceeds max len %v", msglen, maxXMLBodyLen)
			ctx.Status(http.StatusInternalServerError)
			return ctx.Send(s3err.GetAPIErrorResponse(
				s3err.GetAPIError(s3err.ErrInternalError), "", requestID, requestID))
		}

		res := make([]byte, 0, msglen)
		res = append(res, xmlhdr...)
		res = append(res, body...)

		ctx.Response().Header.SetContentType(fiber.MIMEApplicationXML)
		ctx.Response().Header.Set("Content-Length", fmt.Sprint(len(res)))
		ctx.Status(opts.Status)

		if logger != nil {
			logger.Log(ctx, nil, res, s3log.LogMeta{
				Action:      opts.Action,
				BucketOwner: opts.BucketOwner,
				ObjectSize:  opts.ObjectSize,
			})
		}
		return ctx.Send(res)
	}
}

// WrapMiddleware adapts a plain fiber.Handler (one that returns a
// bare error rather than a *Response) into the same XML error
// rendering ProcessResponse gives controller handlers, so a
// validation failure before routing still comes back as S3-shaped
// XML instead of fiber's default plaintext error body. The wrapped
// handler advances the chain itself with ctx.Next on success, so a nil
// error is returned as is; only failures are audited here.
func WrapMiddleware(handler fiber.Handler, logger s3log.AuditLogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := handler(ctx)
		if err == nil {
			return nil
		}
		if logger != nil {
			logger.Log(ctx, err, nil, s3log.LogMeta{Action: "Unmatched"})
		}

		serr, ok := err.(s3err.APIError)
		if !ok {
			debuglogger.Logf("internal error: %v", err)
			serr = s3err.GetAPIError(s3err.ErrInternalError)
		}
		ctx.Status(serr.HTTPStatusCode)
		return ctx.Send(s3err.GetAPIErrorResponse(serr, "", "", ""))
	}
}

func SetResponseHeaders(ctx *fiber.Ctx, headers map[string]string) {
	for key, val := range headers {
		if val == "" {
			continue
		}
		ctx.Response().Header.Set(key, val)
	}
}

// HandleUnmatch answers MethodNotAllowed for any route shape this
// engine doesn't translate.
func (c S3ApiController) HandleUnmatch(ctx *fiber.Ctx) (*Response, error) {
	return &Response{MetaOpts: &MetaOptions{Action: "Unmatched"}}, s3err.GetAPIError(s3err.ErrMethodNotAllowed)
}
