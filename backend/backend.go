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
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nexusfs/s3gw/s3err"
	"github.com/nexusfs/s3gw/s3response"
)

// PutObjectInput carries everything PutObject needs. Headers are the
// raw inbound S3 request headers (x-amz-meta-*, x-amz-storage-class,
// Content-Type, Content-MD5); the backend is responsible for running
// them through its own MetadataCodec.
type PutObjectInput struct {
	Bucket        string
	Key           string
	Body          io.Reader
	ContentLength int64
	Headers       http.Header
}

// ObjectMeta is the S3-shaped view of a BS node's attributes, already
// run through MetadataCodec.
type ObjectMeta struct {
	ContentLength int64
	ContentType   string
	ETag          string
	StorageClass  string
	LastModified  string
	// UserMetadata keys are the x-amz-meta-* suffix with the prefix
	// already stripped.
	UserMetadata map[string]string
}

type CopyObjectInput struct {
	SrcBucket, SrcKey string
	DstBucket, DstKey string
}

type ListObjectsInput struct {
	Bucket    string
	Prefix    string
	Delimiter string
	MaxKeys   int
	HasMaxKeys bool
}

// Backend is the contract the S3 API surface drives. It is
// deliberately narrow: this gateway has exactly one real
// implementation (backend/gateway), and BackendUnsupported exists so
// every method has a safe NotImplemented default while a backend is
// under construction or partially wired.
type Backend interface {
	fmt.Stringer
	Shutdown()

	ListBuckets(ctx context.Context, owner string) (s3response.ListAllMyBucketsResult, error)
	CreateBucket(ctx context.Context, bucket string) error
	DeleteBucket(ctx context.Context, bucket string) error
	HeadBucket(ctx context.Context, bucket string) error

	PutObject(ctx context.Context, input *PutObjectInput) (etag string, err error)
	HeadObject(ctx context.Context, bucket, key string) (*ObjectMeta, error)
	GetObject(ctx context.Context, bucket, key string, w io.Writer) (*ObjectMeta, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	CopyObject(ctx context.Context, input *CopyObjectInput) (s3response.CopyObjectResult, error)
	ListObjects(ctx context.Context, input *ListObjectsInput) (s3response.ListBucketResult, error)

	GetObjectAcl(ctx context.Context, bucket, key string) (s3response.AccessControlPolicy, error)
	PutObjectAcl(ctx context.Context, bucket, key string) error
	ListMultipartUploads(ctx context.Context, bucket string) (s3response.ListMultipartUploadsResult, error)
}

type BackendUnsupported struct{}

var _ Backend = &BackendUnsupported{}

func New() Backend {
	return &BackendUnsupported{}
}

func (BackendUnsupported) Shutdown()        {}
func (BackendUnsupported) String() string { return "Unsupported" }

func (BackendUnsupported) ListBuckets(context.Context, string) (s3response.ListAllMyBucketsResult, error) {
	return s3response.ListAllMyBucketsResult{}, s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) CreateBucket(context.Context, string) error {
	return s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) DeleteBucket(context.Context, string) error {
	return s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) HeadBucket(context.Context, string) error {
	return s3err.GetAPIError(s3err.ErrNotImplemented)
}

func (BackendUnsupported) PutObject(context.Context, *PutObjectInput) (string, error) {
	return "", s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) HeadObject(context.Context, string, string) (*ObjectMeta, error) {
	return nil, s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) GetObject(context.Context, string, string, io.Writer) (*ObjectMeta, error) {
	return nil, s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) DeleteObject(context.Context, string, string) error {
	return s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) CopyObject(context.Context, *CopyObjectInput) (s3response.CopyObjectResult, error) {
	return s3response.CopyObjectResult{}, s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) ListObjects(context.Context, *ListObjectsInput) (s3response.ListBucketResult, error) {
	return s3response.ListBucketResult{}, s3err.GetAPIError(s3err.ErrNotImplemented)
}

func (BackendUnsupported) GetObjectAcl(context.Context, string, string) (s3response.AccessControlPolicy, error) {
	return s3response.AccessControlPolicy{}, s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) PutObjectAcl(context.Context, string, string) error {
	return s3err.GetAPIError(s3err.ErrNotImplemented)
}
func (BackendUnsupported) ListMultipartUploads(context.Context, string) (s3response.ListMultipartUploadsResult, error) {
	return s3response.ListMultipartUploadsResult{}, s3err.GetAPIError(s3err.ErrNotImplemented)
}
