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

package backend

import (
	"net/url"
	"strings"

	"github.com/nexusfs/s3gw/s3err"
	"github.com/nexusfs/s3gw/s3response"
)

// IsValidBucketName enforces the S3 DNS-style bucket name rules: 3-63
// characters, lowercase letters/digits/hyphens/dots, must start and
// end with a letter or digit.
func IsValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	if name[0] == '.' || name[0] == '-' || name[len(name)-1] == '.' || name[len(name)-1] == '-' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-':
		default:
			return false
		}
	}
	return !strings.Contains(name, "..")
}

// ParseCopySource splits an x-amz-copy-source header value (URL
// encoded, optionally carrying a leading slash and a ?versionId=
// query) into bucket, object key, and version id.
func ParseCopySource(header string) (bucket, object, versionID string, err error) {
	header = strings.TrimPrefix(header, "/")

	path := header
	if i := strings.IndexByte(header, '?'); i >= 0 {
		path = header[:i]
		q, qerr := url.ParseQuery(header[i+1:])
		if qerr == nil {
			versionID = q.Get("versionId")
		}
	}

	i := strings.IndexByte(path, '/')
	if i < 0 {
		return "", "", "", s3err.GetAPIError(s3err.ErrInvalidRequest)
	}

	rawBucket, rawObject := path[:i], path[i+1:]
	if rawObject == "" {
		return "", "", "", s3err.GetAPIError(s3err.ErrInvalidRequest)
	}

	bucket, err = url.QueryUnescape(rawBucket)
	if err != nil {
		return "", "", "", s3err.GetAPIError(s3err.ErrInvalidRequest)
	}
	object, err = url.QueryUnescape(rawObject)
	if err != nil {
		return "", "", "", s3err.GetAPIError(s3err.ErrInvalidRequest)
	}

	return bucket, object, versionID, nil
}

type ByBucketName []s3response.Bucket

func (d ByBucketName) Len() int           { return len(d) }
func (d ByBucketName) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }
func (d ByBucketName) Less(i, j int) bool { return d[i].Name < d[j].Name }

