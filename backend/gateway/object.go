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
	"io"
	"strconv"
	"time"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/backend/bsclient"
	"github.com/nexusfs/s3gw/s3err"
	"github.com/nexusfs/s3gw/s3response"
)

func (g *Gateway) objectPath(bucket, key string) (string, error) {
	clean, err := Sanitize(key, g.maxPathLength, g.maxSegmentLength)
	if err != nil {
		return "", err
	}
	return JoinObject(g.root, bucket, clean), nil
}

// PutObject streams the request body directly into the BS Put call;
// the parent chain is created with Mkdirp first if the parent is
// missing, and a missing bucket surfaces as NoSuchBucket rather than
// being silently created.
func (g *Gateway) PutObject(ctx context.Context, in *backend.PutObjectInput) (string, error) {
	path, err := g.objectPath(in.Bucket, in.Key)
	if err != nil {
		return "", err
	}

	bucketPath := pathJoin(g.root, in.Bucket)
	if _, err := g.bs.Info(ctx, bucketPath); err != nil {
		if bsclient.StatusOf(err) == 404 {
			return "", s3err.GetAPIError(s3err.ErrNoSuchBucket)
		}
		return "", s3err.GetInternalErrWithDetail(err.Error())
	}

	parent := parentPath(path)
	if parent != bucketPath {
		if _, err := g.bs.Info(ctx, parent); err != nil && bsclient.StatusOf(err) == 404 {
			if err := g.bs.Mkdirp(ctx, parent); err != nil {
				if bsclient.StatusOf(err) == 403 {
					return "", s3err.GetAPIError(s3err.ErrAllAccessDisabled)
				}
				return "", s3err.GetInternalErrWithDetail(err.Error())
			}
		}
	}

	bsHeaders := g.durability.RequestHeadersToBSHeaders(in.Headers)

	info, err := g.bs.Put(ctx, path, in.Body, bsclient.PutOptions{
		ContentLength: in.ContentLength,
		Headers:       bsHeaders,
	})
	if err != nil {
		if bsclient.StatusOf(err) == 403 {
			return "", s3err.GetAPIError(s3err.ErrAllAccessDisabled)
		}
		return "", s3err.GetInternalErrWithDetail(err.Error())
	}

	etag, err := MD5Base64ToETag(info.Headers["content-md5"])
	if err != nil {
		return "", s3err.GetInternalErrWithDetail("BS did not return a usable content-md5")
	}
	return etag, nil
}

// HeadObject stats the BS path and runs its header bag through
// MetadataCodec. A directory sentinel content-type is treated as
// not-found: directories are not retrievable as objects.
func (g *Gateway) HeadObject(ctx context.Context, bucket, key string) (*backend.ObjectMeta, error) {
	path, err := g.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}

	info, err := g.bs.Info(ctx, path)
	if err != nil {
		if bsclient.StatusOf(err) == 404 {
			return nil, s3err.GetAPIError(s3err.ErrNoSuchKey)
		}
		return nil, s3err.GetInternalErrWithDetail(err.Error())
	}
	if info.Headers["content-type"] == DirectoryContentType {
		return nil, s3err.GetAPIError(s3err.ErrNoSuchKey)
	}

	return g.toObjectMeta(info), nil
}

func (g *Gateway) toObjectMeta(info bsclient.Info) *backend.ObjectMeta {
	respHeaders := g.durability.BSHeadersToResponseHeaders(info.Headers)

	meta := &backend.ObjectMeta{
		ContentType:  respHeaders["content-type"],
		ETag:         respHeaders["etag"],
		StorageClass: respHeaders[headerStorageClass],
		LastModified: time.Unix(info.ModTime, 0).UTC().Format(iso8601),
		UserMetadata: map[string]string{},
	}
	if n, err := strconv.ParseInt(respHeaders["content-length"], 10, 64); err == nil {
		meta.ContentLength = n
	}
	for k, v := range respHeaders {
		if len(k) > len(amzMetaPrefix) && k[:len(amzMetaPrefix)] == amzMetaPrefix {
			meta.UserMetadata[k[len(amzMetaPrefix):]] = v
		}
	}
	return meta
}

// GetObject pipes the BS body stream directly to w. It returns the
// same metadata HeadObject would, so the caller can flush headers
// before the body starts.
func (g *Gateway) GetObject(ctx context.Context, bucket, key string, w io.Writer) (*backend.ObjectMeta, error) {
	path, err := g.objectPath(bucket, key)
	if err != nil {
		return nil, err
	}

	if _, err := g.bs.Info(ctx, pathJoin(g.root, bucket)); err != nil && bsclient.StatusOf(err) == 404 {
		return nil, s3err.GetAPIError(s3err.ErrNoSuchBucket)
	}

	body, info, err := g.bs.Get(ctx, path)
	if err != nil {
		if bsclient.StatusOf(err) == 404 {
			return nil, s3err.GetAPIError(s3err.ErrNoSuchKey)
		}
		return nil, s3err.GetInternalErrWithDetail(err.Error())
	}
	defer body.Close()

	if info.Headers["content-type"] == DirectoryContentType {
		return nil, s3err.GetAPIError(s3err.ErrNoSuchKey)
	}

	meta := g.toObjectMeta(info)

	if w != nil {
		if _, err := io.Copy(w, body); err != nil {
			return nil, s3err.GetInternalErrWithDetail(err.Error())
		}
	}

	return meta, nil
}

// DeleteObject unlinks the BS path; a missing key is NoSuchKey.
func (g *Gateway) DeleteObject(ctx context.Context, bucket, key string) error {
	path, err := g.objectPath(bucket, key)
	if err != nil {
		return err
	}

	if err := g.bs.Unlink(ctx, path); err != nil {
		if bsclient.StatusOf(err) == 404 {
			return s3err.GetAPIError(s3err.ErrNoSuchKey)
		}
		return s3err.GetInternalErrWithDetail(err.Error())
	}
	return nil
}

// CopyObject HEADs the source first; a missing source is terminal, with
// no link attempt and no partial writes.
func (g *Gateway) CopyObject(ctx context.Context, in *backend.CopyObjectInput) (s3response.CopyObjectResult, error) {
	srcPath, err := g.objectPath(in.SrcBucket, in.SrcKey)
	if err != nil {
		return s3response.CopyObjectResult{}, err
	}
	dstPath, err := g.objectPath(in.DstBucket, in.DstKey)
	if err != nil {
		return s3response.CopyObjectResult{}, err
	}

	srcInfo, err := g.bs.Info(ctx, srcPath)
	if err != nil {
		if bsclient.StatusOf(err) == 404 {
			return s3response.CopyObjectResult{}, s3err.GetAPIError(s3err.ErrNoSuchKey)
		}
		return s3response.CopyObjectResult{}, s3err.GetInternalErrWithDetail(err.Error())
	}

	parent := parentPath(dstPath)
	bucketPath := pathJoin(g.root, in.DstBucket)
	if parent != bucketPath {
		if _, err := g.bs.Info(ctx, parent); err != nil && bsclient.StatusOf(err) == 404 {
			if err := g.bs.Mkdirp(ctx, parent); err != nil {
				return s3response.CopyObjectResult{}, s3err.GetInternalErrWithDetail(err.Error())
			}
		}
	}

	if err := g.bs.Ln(ctx, srcPath, dstPath); err != nil {
		return s3response.CopyObjectResult{}, s3err.GetInternalErrWithDetail(err.Error())
	}

	etag, err := MD5Base64ToETag(srcInfo.Headers["content-md5"])
	if err != nil {
		etag = ""
	}

	return s3response.CopyObjectResult{
		LastModified: time.Unix(srcInfo.ModTime, 0).UTC().Format(iso8601),
		ETag:         `"` + etag + `"`,
	}, nil
}

// GetObjectAcl returns the fixed full-control-to-owner policy; this
// gateway has no ACL model of its own.
func (g *Gateway) GetObjectAcl(ctx context.Context, bucket, key string) (s3response.AccessControlPolicy, error) {
	user := g.bs.User()
	return s3response.AccessControlPolicy{
		Owner: s3response.Owner{ID: user, DisplayName: user},
		AccessControlList: s3response.AccessControlList{
			Grant: []s3response.Grant{
				{
					Grantee: s3response.Grantee{
						XMLNSXsi:    "http://www.w3.org/2001/XMLSchema-instance",
						Type:        "CanonicalUser",
						ID:          user,
						DisplayName: user,
					},
					Permission: "FULL_CONTROL",
				},
			},
		},
	}, nil
}

// PutObjectAcl is a no-op; replying 200 is the whole contract.
func (g *Gateway) PutObjectAcl(ctx context.Context, bucket, key string) error {
	return nil
}

// ListMultipartUploads always returns the fixed, empty result: this
// gateway never supports true multipart upload.
func (g *Gateway) ListMultipartUploads(ctx context.Context, bucket string) (s3response.ListMultipartUploadsResult, error) {
	return s3response.ListMultipartUploadsResult{
		Bucket:      bucket,
		IsTruncated: false,
		MaxUploads:  1000,
	}, nil
}

func parentPath(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	if i <= 0 {
		return "/"
	}
	return path[:i]
}
