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
	"sort"
	"time"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/backend/bsclient"
	"github.com/nexusfs/s3gw/s3err"
	"github.com/nexusfs/s3gw/s3response"
)

// ListBuckets recursively lists the immediate children of the
// configured root and emits one <Bucket> per child, tolerating BS-side
// pagination transparently by consuming the entire Ls stream before
// responding.
func (g *Gateway) ListBuckets(ctx context.Context, owner string) (s3response.ListAllMyBucketsResult, error) {
	entries, err := g.bs.Ls(ctx, g.root)
	if err != nil {
		return s3response.ListAllMyBucketsResult{}, translateListError(err)
	}

	var buckets []s3response.Bucket
	for e := range entries {
		switch e.Kind {
		case bsclient.EntryEnd:
		case bsclient.EntryError:
			return s3response.ListAllMyBucketsResult{}, translateListError(e.Err)
		case bsclient.EntryDir:
			buckets = append(buckets, s3response.Bucket{
				Name:         e.Name,
				CreationDate: time.Unix(e.ModTime, 0).UTC().Format(iso8601),
			})
		}
	}

	sort.Sort(backend.ByBucketName(buckets))

	return s3response.ListAllMyBucketsResult{
		Owner: s3response.Owner{ID: g.bs.User(), DisplayName: g.bs.User()},
		Buckets: s3response.ListAllMyBucketsEntry{
			Bucket: buckets,
		},
	}, nil
}

// CreateBucket mkdirs the bucket directory idempotently: a BS that
// reports the directory already exists on Mkdir is treated as
// success, matching the gateway's idempotent-create fallback.
func (g *Gateway) CreateBucket(ctx context.Context, bucket string) error {
	if !backend.IsValidBucketName(bucket) {
		return s3err.GetAPIError(s3err.ErrInvalidBucketName)
	}

	path := pathJoin(g.root, bucket)
	err := g.bs.Mkdir(ctx, path)
	if err == nil {
		return nil
	}
	if bsclient.StatusOf(err) == 409 {
		return nil
	}
	if bsclient.StatusOf(err) == 403 {
		return s3err.GetAPIError(s3err.ErrAllAccessDisabled)
	}
	return s3err.GetInternalErrWithDetail(err.Error())
}

// DeleteBucket rejects with BucketNotEmpty if a bounded listing probe
// returns any child; otherwise rmdirs via Unlink.
func (g *Gateway) DeleteBucket(ctx context.Context, bucket string) error {
	path := pathJoin(g.root, bucket)

	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries, err := g.bs.Ls(lctx, path)
	if err != nil {
		if bsclient.StatusOf(err) == 404 {
			return s3err.GetAPIError(s3err.ErrNoSuchBucket)
		}
		return s3err.GetInternalErrWithDetail(err.Error())
	}

	for e := range entries {
		switch e.Kind {
		case bsclient.EntryFile, bsclient.EntryDir:
			cancel()
			return s3err.GetAPIError(s3err.ErrBucketNotEmpty)
		case bsclient.EntryError:
			return translateListError(e.Err)
		case bsclient.EntryEnd:
		}
	}

	if err := g.bs.Unlink(ctx, path); err != nil {
		if bsclient.StatusOf(err) == 404 {
			return s3err.GetAPIError(s3err.ErrNoSuchBucket)
		}
		return s3err.GetInternalErrWithDetail(err.Error())
	}
	return nil
}

// HeadBucket reports NoSuchBucket when the bucket directory's Info
// call 404s.
func (g *Gateway) HeadBucket(ctx context.Context, bucket string) error {
	path := pathJoin(g.root, bucket)
	_, err := g.bs.Info(ctx, path)
	if err != nil {
		if bsclient.StatusOf(err) == 404 {
			return s3err.GetAPIError(s3err.ErrNoSuchBucket)
		}
		return s3err.GetInternalErrWithDetail(err.Error())
	}
	return nil
}

func translateListError(err error) error {
	if err == nil {
		return nil
	}
	if bsclient.StatusOf(err) == 404 {
		return s3err.GetAPIError(s3err.ErrAllAccessDisabled)
	}
	return s3err.GetInternalErrWithDetail(err.Error())
}
