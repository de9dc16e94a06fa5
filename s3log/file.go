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

package s3log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexusfs/s3gw/s3err"
)

const (
	logFileMode = 0600
	timeFormat  = "02/January/2006:15:04:05 -0700"
)

type FileLogger struct {
	LogFields
	path string
	mu   sync.Mutex
}

var _ AuditLogger = &FileLogger{}

func InitFileLogger(path string) (AuditLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return nil, err
	}
	f.Close()
	return &FileLogger{path: path}, nil
}

func (f *FileLogger) Log(ctx *fiber.Ctx, err error, body []byte, meta LogMeta) {
	f.mu.Lock()
	defer f.mu.Unlock()

	access := "-"
	reqURI := ctx.Request().URI().String()
	path := strings.Split(ctx.Path(), "/")
	bucket, object := "", ""
	if len(path) > 1 {
		bucket = path[1]
	}
	if len(path) > 2 {
		object = strings.Join(path[2:], "/")
	}
	errorCode := ""
	httpStatus := 200

	if err != nil {
		serr, ok := err.(s3err.APIError)
		if ok {
			errorCode = serr.Code
			httpStatus = serr.HTTPStatusCode
		} else {
			errorCode = err.Error()
			httpStatus = 500
		}
	}

	if v, ok := ctx.Locals("access").(string); ok {
		access = v
	}

	f.BucketOwner = meta.BucketOwner
	f.Bucket = bucket
	f.Time = time.Now()
	f.RemoteIP = ctx.IP()
	f.Requester = access
	f.RequestID = genID()
	f.Operation = meta.Action
	f.Key = object
	f.RequestURI = reqURI
	f.HTTPStatus = httpStatus
	f.ErrorCode = errorCode
	f.BytesSent = len(body)
	f.ObjectSize = meta.ObjectSize
	if startTime, ok := ctx.Locals("startTime").(time.Time); ok {
		f.TotalTime = time.Since(startTime).Milliseconds()
	}
	f.Referer = ctx.Get("Referer")
	f.UserAgent = ctx.Get("User-Agent")
	f.HostID = ctx.Get("X-Amz-Id-2")

	f.writeLog()
}

func (f *FileLogger) writeLog() {
	dash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}

	line := fmt.Sprintf("\n%v %v %v %v %v %v %v %v %v %v %v %v %v %v %v %v %v",
		dash(f.BucketOwner),
		dash(f.Bucket),
		fmt.Sprintf("[%v]", f.Time.Format(timeFormat)),
		dash(f.RemoteIP),
		dash(f.Requester),
		f.RequestID,
		dash(f.Operation),
		dash(f.Key),
		dash(f.RequestURI),
		f.HTTPStatus,
		dash(f.ErrorCode),
		f.BytesSent,
		f.ObjectSize,
		f.TotalTime,
		dash(f.Referer),
		dash(f.UserAgent),
		dash(f.HostID),
	)

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		fmt.Printf("error opening the log file: %v", err.Error())
		return
	}
	defer file.Close()
	if _, err := file.WriteString(line); err != nil {
		fmt.Printf("error writing in log file: %v", err.Error())
	}
}

func (f *FileLogger) Shutdown() error { return nil }
