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
	"context"
	"strings"
	"time"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/backend/bsclient"
	"github.com/nexusfs/s3gw/s3err"
	"github.com/nexusfs/s3gw/s3response"
)

// ListObjects runs the prefix/delimiter streamed-listing algorithm.
// Two consecutive slashes in the prefix are unrepresentable in the BS
// path space and produce an empty result rather than an error.
func (g *Gateway) ListObjects(ctx context.Context, in *backend.ListObjectsInput) (s3response.ListBucketResult, error) {
	result := s3response.ListBucketResult{
		Name:      in.Bucket,
		Prefix:    in.Prefix,
		Delimiter: in.Delimiter,
	}

	if strings.Contains(in.Prefix, "//") {
		result.MaxKeys = in.MaxKeys
		return result, nil
	}

	subdir, searchPrefix := SplitPrefix(in.Prefix)
	listRoot := pathJoin(g.root, in.Bucket)
	if subdir != "" {
		listRoot = listRoot + "/" + subdir
	}

	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries, err := g.bs.Ls(lctx, listRoot)
	if err != nil {
		if bsclient.StatusOf(err) == 404 {
			return s3response.ListBucketResult{}, s3err.GetAPIError(s3err.ErrAllAccessDisabled)
		}
		return s3response.ListBucketResult{}, s3err.GetInternalErrWithDetail(err.Error())
	}

	var (
		objectCount   int
		resultSetSize int
		contents      []s3response.Object
		prefixes      []s3response.CommonPrefix
	)

	user := g.bs.User()

	for e := range entries {
		switch e.Kind {
		case bsclient.EntryEnd:

		case bsclient.EntryError:
			if bsclient.StatusOf(e.Err) == 404 {
				return s3response.ListBucketResult{}, s3err.GetAPIError(s3err.ErrAllAccessDisabled)
			}
			return s3response.ListBucketResult{}, s3err.GetInternalErrWithDetail(e.Err.Error())

		case bsclient.EntryFile:
			resultSetSize++
			relKey := Relativize(in.Bucket, e.Parent, e.Name)
			if searchPrefix != "" && !strings.HasPrefix(relKey, searchPrefix) {
				continue
			}
			objectCount++
			// '>' flags truncation only once a MaxKeys+1-th match is
			// seen; that entry itself is not returned, so at most
			// MaxKeys entries come back.
			if in.HasMaxKeys && objectCount > in.MaxKeys {
				cancel()
				result.IsTruncated = true
				result.MaxKeys = in.MaxKeys
				result.Contents = contents
				result.CommonPrefixes = prefixes
				return result, nil
			}

			resp := g.durability.BSHeadersToResponseHeaders(e.Headers)
			contents = append(contents, s3response.Object{
				Key:          relKey,
				LastModified: time.Unix(e.ModTime, 0).UTC().Format(iso8601),
				Size:         sizeOf(resp),
				Owner:        s3response.Owner{ID: user, DisplayName: user},
				StorageClass: resp[headerStorageClass],
			})

		case bsclient.EntryDir:
			resultSetSize++
			relKey := Relativize(in.Bucket, e.Parent, e.Name)
			if searchPrefix != "" && !strings.HasPrefix(relKey, searchPrefix) {
				continue
			}
			objectCount++
			if in.HasMaxKeys && objectCount > in.MaxKeys {
				cancel()
				result.IsTruncated = true
				result.MaxKeys = in.MaxKeys
				result.Contents = contents
				result.CommonPrefixes = prefixes
				return result, nil
			}
			prefixes = append(prefixes, s3response.CommonPrefix{Prefix: relKey + "/"})
		}
	}

	result.Contents = contents
	result.CommonPrefixes = prefixes

	if in.HasMaxKeys {
		result.MaxKeys = in.MaxKeys
		return result, nil
	}

	maxKeys := DefaultMaxKeys
	if objectCount > maxKeys {
		maxKeys = objectCount
	}
	result.MaxKeys = maxKeys
	result.IsTruncated = resultSetSize > objectCount && searchPrefix == ""
	return result, nil
}

func sizeOf(headers map[string]string) int64 {
	v := headers["content-length"]
	if v == "" {
		return 0
	}
	var n int64
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int64(c-'0')
	}
	return n
}
