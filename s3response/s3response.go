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

// Package s3response declares the XML response schemas the gateway
// hands back to S3 clients. The xmlns namespace is version-dependent
// (the configured s3Version), so it is stamped onto XMLName.Space at
// construction time via Namespace, rather than fixed in a struct tag.
package s3response

import "encoding/xml"

// Namespace builds the xmlns value for a configured S3 API version.
func Namespace(s3Version string) string {
	return "http://s3.amazonaws.com/doc/" + s3Version + "/"
}

// ListAllMyBucketsResult is the response body for GET /.
type ListAllMyBucketsResult struct {
	XMLName xml.Name              `xml:"ListAllMyBucketsResult"`
	Owner   Owner                 `xml:"Owner"`
	Buckets ListAllMyBucketsEntry `xml:"Buckets"`
}

// ListAllMyBucketsEntry wraps the repeated <Bucket> children; S3 uses
// a <Buckets> wrapper element around a flat list.
type ListAllMyBucketsEntry struct {
	Bucket []Bucket `xml:"Bucket"`
}

// Bucket container for bucket metadata.
type Bucket struct {
	Name         string
	CreationDate string // "2006-01-02T15:04:05.000Z"
}

// Owner - bucket/object owner, always the BS's single configured user
// since this gateway has no ACL model of its own.
type Owner struct {
	ID          string
	DisplayName string
}

// ListBucketResult is the response body for the bucket listing
// endpoint. It is deliberately the V1 (Marker, not ContinuationToken)
// shape: listings here are always single-shot.
type ListBucketResult struct {
	XMLName        xml.Name       `xml:"ListBucketResult"`
	Name           string         `xml:"Name"`
	Prefix         string         `xml:"Prefix"`
	Marker         string         `xml:"Marker"`
	MaxKeys        int            `xml:"MaxKeys"`
	Delimiter      string         `xml:"Delimiter,omitempty"`
	IsTruncated    bool           `xml:"IsTruncated"`
	Contents       []Object       `xml:"Contents,omitempty"`
	CommonPrefixes []CommonPrefix `xml:"CommonPrefixes,omitempty"`
}

// CommonPrefix container for prefix response in ListBucketResult.
type CommonPrefix struct {
	Prefix string
}

// Object container for one <Contents> entry.
type Object struct {
	Key          string
	LastModified string // "2006-01-02T15:04:05.000Z"
	ETag         string
	Size         int64
	Owner        Owner
	StorageClass string
}

// CopyObjectResult is the response body for CopyObject.
type CopyObjectResult struct {
	XMLName      xml.Name `xml:"CopyObjectResult"`
	LastModified string
	ETag         string
}

// AccessControlPolicy is the fixed GetObjectAcl response: full control
// granted to the BS's single owner.
type AccessControlPolicy struct {
	XMLName           xml.Name          `xml:"AccessControlPolicy"`
	Owner             Owner             `xml:"Owner"`
	AccessControlList AccessControlList `xml:"AccessControlList"`
}

type AccessControlList struct {
	Grant []Grant `xml:"Grant"`
}

type Grant struct {
	Grantee    Grantee
	Permission string
}

type Grantee struct {
	XMLName     xml.Name `xml:"Grantee"`
	XMLNSXsi    string   `xml:"xmlns:xsi,attr"`
	Type        string   `xml:"xsi:type,attr"`
	ID          string   `xml:"ID,omitempty"`
	DisplayName string   `xml:"DisplayName,omitempty"`
}

// ListMultipartUploadsResult is the fixed, always-empty response for
// ListMultipartUploads: this gateway never supports true multipart
// upload.
type ListMultipartUploadsResult struct {
	XMLName            xml.Name `xml:"ListMultipartUploadsResult"`
	Bucket             string
	KeyMarker          string
	UploadIDMarker     string `xml:"UploadIdMarker"`
	NextKeyMarker      string
	NextUploadIDMarker string `xml:"NextUploadIdMarker"`
	MaxUploads         int
	IsTruncated        bool
}
