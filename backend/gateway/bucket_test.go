// Copyright 2026 Versity Software
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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/nexusfs/s3gw/backend/bsclient/fake"
	"github.com/nexusfs/s3gw/s3err"
)

func newTestGateway() *Gateway {
	return New(fake.New(), Options{
		Root:              "",
		MaxPathLength:     1024,
		MaxSegmentLength:  255,
		DefaultDurability: 2,
	})
}

func TestListBuckets_Empty(t *testing.T) {
	g := newTestGateway()
	result, err := g.ListBuckets(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, result.Buckets.Bucket)
}

func TestCreateThenListBucket(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()

	require.NoError(t, g.CreateBucket(ctx, "bk1"))

	result, err := g.ListBuckets(ctx, "")
	require.NoError(t, err)
	require.Len(t, result.Buckets.Bucket, 1)
	assert.Equal(t, "bk1", result.Buckets.Bucket[0].Name)
}

func TestCreateBucket_IdempotentTwice(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()
	require.NoError(t, g.CreateBucket(ctx, "bk1"))
	require.NoError(t, g.CreateBucket(ctx, "bk1"))
}

func TestCreateBucket_InvalidName(t *testing.T) {
	g := newTestGateway()
	err := g.CreateBucket(context.Background(), "ab")
	require.Error(t, err)
	assert.ErrorIs(t, err, s3err.GetAPIError(s3err.ErrInvalidBucketName))
}

func TestHeadBucket_NotFound(t *testing.T) {
	g := newTestGateway()
	err := g.HeadBucket(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, s3err.GetAPIError(s3err.ErrNoSuchBucket))
}

func TestDeleteBucket_NonEmpty(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()
	require.NoError(t, g.CreateBucket(ctx, "bk1"))
	_, err := g.PutObject(ctx, putInput("bk1", "obj", "hi"))
	require.NoError(t, err)

	err = g.DeleteBucket(ctx, "bk1")
	require.Error(t, err)
	assert.ErrorIs(t, err, s3err.GetAPIError(s3err.ErrBucketNotEmpty))
}

func TestDeleteBucket_Empty(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()
	require.NoError(t, g.CreateBucket(ctx, "bk1"))
	require.NoError(t, g.DeleteBucket(ctx, "bk1"))

	err := g.HeadBucket(ctx, "bk1")
	assert.ErrorIs(t, err, s3err.GetAPIError(s3err.ErrNoSuchBucket))
}

// TestListBuckets_1200Concurrent mirrors the "1,200 buckets" scenario:
// bounded-parallelism creation followed by a single listing that must
// see every bucket.
func TestListBuckets_1200Concurrent(t *testing.T) {
	g := newTestGateway()
	ctx := context.Background()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(20)
	for i := 1; i <= 1200; i++ {
		name := fmt.Sprintf("b%04d", i)
		eg.Go(func() error {
			return g.CreateBucket(egCtx, name)
		})
	}
	require.NoError(t, eg.Wait())

	result, err := g.ListBuckets(ctx, "")
	require.NoError(t, err)
	assert.Len(t, result.Buckets.Bucket, 1200)
}
