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

// Package gateway implements backend.Backend against a hierarchical
// backing store (BS) reached through backend/bsclient. It is the
// translation engine: bucket <-> top-level directory, object key <->
// nested path with implicit parent creation, prefix/delimiter listing
// <-> streamed directory walk, storage class <-> durability level,
// and the streaming upload/download pipes.
package gateway

import (
	"strings"

	"github.com/nexusfs/s3gw/backend"
	"github.com/nexusfs/s3gw/backend/bsclient"
)

const (
	iso8601 = "2006-01-02T15:04:05.000Z"

	// DefaultMaxKeys is the listing page size assumed when the client
	// does not supply max-keys.
	DefaultMaxKeys = 1000
)

// Options configures a Gateway at construction time. All fields are
// read-only after New returns; no ambient globals are introduced.
type Options struct {
	Root              string
	MaxPathLength     int
	MaxSegmentLength  int
	DefaultDurability int
	Durability        DurabilityMap
}

// Gateway implements backend.Backend by translating S3 operations
// into calls against a bsclient.Client.
type Gateway struct {
	bs   bsclient.Client
	root string

	maxPathLength    int
	maxSegmentLength int
	durability       DurabilityMap
}

var _ backend.Backend = &Gateway{}

func New(bs bsclient.Client, opts Options) *Gateway {
	durability := opts.Durability
	if durability.ClassToDurability == nil {
		durability = DefaultDurabilityMap(opts.DefaultDurability)
	}
	return &Gateway{
		bs:               bs,
		root:             strings.TrimSuffix(opts.Root, "/"),
		maxPathLength:    opts.MaxPathLength,
		maxSegmentLength: opts.MaxSegmentLength,
		durability:       durability,
	}
}

func (g *Gateway) String() string { return "gateway" }
func (g *Gateway) Shutdown()      {}

func pathJoin(root, bucket string) string {
	return JoinObject(root, bucket, "")
}
