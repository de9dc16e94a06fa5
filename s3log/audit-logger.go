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
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AuditLogger records one line per request for every gateway handler.
type AuditLogger interface {
	Log(ctx *fiber.Ctx, err error, body []byte, meta LogMeta)
	Shutdown() error
}

type LogMeta struct {
	BucketOwner string
	ObjectSize  int64
	Action      string
}

type LogConfig struct {
	LogFile string
}

type LogFields struct {
	BucketOwner string
	Bucket      string
	Time        time.Time
	RemoteIP    string
	Requester   string
	RequestID   string
	Operation   string
	Key         string
	RequestURI  string
	HTTPStatus  int
	ErrorCode   string
	BytesSent   int
	ObjectSize  int64
	TotalTime   int64
	Referer     string
	UserAgent   string
	HostID      string
}

func InitLogger(cfg *LogConfig) (AuditLogger, error) {
	if cfg == nil || cfg.LogFile == "" {
		return nil, nil
	}
	fmt.Printf("initializing S3 access logs with '%v' file\n", cfg.LogFile)
	return InitFileLogger(cfg.LogFile)
}

func genID() string {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, 8)

	if _, err := src.Read(b); err != nil {
		panic(err)
	}

	return strings.ToUpper(hex.EncodeToString(b))
}
