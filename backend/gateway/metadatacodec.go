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
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	amzMetaPrefix       = "x-amz-meta-"
	bsMetaPrefix        = "m-"
	headerDurability    = "x-durability-level"
	headerDurabilityBS  = "durability-level"
	headerStorageClass  = "x-amz-storage-class"

	// DirectoryContentType is the BS sentinel content-type that marks
	// a node as a directory rather than a retrievable object.
	DirectoryContentType = "application/x-json-stream; type=directory"
)

// DurabilityMap is the pair of bijective-where-possible lookup tables
// between S3 storage-class strings and BS integer durability levels.
// An unknown storage class maps to the configured default durability;
// an unknown durability level reports as STANDARD.
type DurabilityMap struct {
	ClassToDurability map[string]int
	DurabilityToClass map[int]string
	DefaultDurability int
}

// DefaultDurabilityMap is the out-of-the-box table used when no
// -durability-map configuration file is supplied.
func DefaultDurabilityMap(defaultDurability int) DurabilityMap {
	return DurabilityMap{
		ClassToDurability: map[string]int{
			string(types.StorageClassStandard):         2,
			string(types.StorageClassReducedRedundancy): 1,
			string(types.StorageClassStandardIa):        2,
			string(types.StorageClassOnezoneIa):         1,
			string(types.StorageClassGlacier):           3,
			string(types.StorageClassDeepArchive):       3,
			string(types.StorageClassIntelligentTiering): 2,
		},
		DurabilityToClass: map[int]string{
			1: string(types.StorageClassReducedRedundancy),
			2: string(types.StorageClassStandard),
			3: string(types.StorageClassGlacier),
		},
		DefaultDurability: defaultDurability,
	}
}

func (d DurabilityMap) durabilityFor(class string) int {
	if class == "" {
		return d.DefaultDurability
	}
	if v, ok := d.ClassToDurability[class]; ok {
		return v
	}
	return d.DefaultDurability
}

func (d DurabilityMap) classFor(durability int) string {
	if v, ok := d.DurabilityToClass[durability]; ok {
		return v
	}
	return string(types.StorageClassStandard)
}

// RequestHeadersToBSHeaders extracts x-amz-meta-* into m-* verbatim
// (case of the suffix preserved), resolves x-amz-storage-class via the
// DurabilityMap, and emits x-durability-level.
func (d DurabilityMap) RequestHeadersToBSHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for key, vals := range h {
		if len(vals) == 0 {
			continue
		}
		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, amzMetaPrefix) {
			suffix := key[len(amzMetaPrefix):]
			out[bsMetaPrefix+suffix] = vals[0]
		}
	}

	durability := d.durabilityFor(h.Get(headerStorageClass))
	out[headerDurability] = strconv.Itoa(durability)

	if v := h.Get("Content-Type"); v != "" {
		out["content-type"] = v
	}
	if v := h.Get("Content-MD5"); v != "" {
		out["content-md5"] = v
	}
	return out
}

// BSHeadersToResponseHeaders is the inverse of
// RequestHeadersToBSHeaders: m-* -> x-amz-meta-*, durability-level ->
// x-amz-storage-class, and it derives ETag from content-md5. A stored
// x-durability-level header (as written on upload) is read the same
// way as durability-level.
func (d DurabilityMap) BSHeadersToResponseHeaders(h map[string]string) map[string]string {
	out := make(map[string]string)
	for key, val := range h {
		lower := strings.ToLower(key)
		switch {
		case strings.HasPrefix(lower, bsMetaPrefix):
			out[amzMetaPrefix+key[len(bsMetaPrefix):]] = val
		case lower == headerDurabilityBS, lower == headerDurability:
			n, err := strconv.Atoi(val)
			if err != nil {
				out[headerStorageClass] = string(types.StorageClassStandard)
			} else {
				out[headerStorageClass] = d.classFor(n)
			}
		case lower == "content-length", lower == "content-type":
			out[lower] = val
		case lower == "content-md5":
			if etag, err := MD5Base64ToETag(val); err == nil {
				out["etag"] = etag
			}
		}
	}
	return out
}

// MD5Base64ToETag base64-decodes a Content-MD5 header value and
// hex-encodes the result. Round trip: hex-decoding the result and
// re-base64-encoding reproduces the input exactly.
func MD5Base64ToETag(b64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// ETagToMD5Base64 is the inverse of MD5Base64ToETag.
func ETagToMD5Base64(etag string) (string, error) {
	etag = strings.Trim(etag, `"`)
	raw, err := hex.DecodeString(etag)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
