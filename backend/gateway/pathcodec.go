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

package gateway

import (
	"strings"

	"github.com/nexusfs/s3gw/s3err"
)

// Sanitize trims a leading slash, rejects an embedded NUL byte, a "."
// or ".." segment, a segment longer than the BS filename limit, and a
// total length over maxLen.
func Sanitize(key string, maxLen, maxSegmentLen int) (string, error) {
	key = strings.TrimPrefix(key, "/")

	if strings.IndexByte(key, 0) >= 0 {
		return "", s3err.GetAPIError(s3err.ErrInvalidKey)
	}

	if len(key) > maxLen {
		return "", s3err.GetAPIError(s3err.ErrKeyTooLong)
	}

	for _, seg := range strings.Split(key, "/") {
		if seg == "." || seg == ".." {
			return "", s3err.GetAPIError(s3err.ErrInvalidKey)
		}
		if maxSegmentLen > 0 && len(seg) > maxSegmentLen {
			return "", s3err.GetAPIError(s3err.ErrKeyTooLong)
		}
	}

	return key, nil
}

// JoinObject concatenates root, bucket, and key with a single slash
// between each non-empty part.
func JoinObject(root, bucket, key string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{root, bucket, key} {
		p = strings.Trim(p, "/")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return "/" + strings.Join(parts, "/")
}

// SplitPrefix partitions a listing prefix into the deepest ancestor
// subdirectory and the remaining search-prefix tail, so listing can
// start at subdir and filter only the tail locally.
func SplitPrefix(prefix string) (subdir, searchPrefix string) {
	if prefix == "" {
		return "", ""
	}
	i := strings.LastIndex(prefix, "/")
	if i < 0 {
		return "", prefix
	}
	return prefix[:i], prefix[i+1:]
}

// Relativize returns the object key of name relative to bucket, given
// the absolute BS path of the directory it was found in. When
// parentPath is the bucket root, the relative key is simply name;
// otherwise it is the portion of parentPath below the bucket segment,
// joined with name.
func Relativize(bucket, parentPath, name string) string {
	marker := "/" + bucket
	i := strings.LastIndex(parentPath, marker)
	if i < 0 {
		return name
	}
	below := parentPath[i+len(marker):]
	below = strings.Trim(below, "/")
	if below == "" {
		return name
	}
	return below + "/" + name
}
