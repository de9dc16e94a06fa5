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

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCopySource(t *testing.T) {
	tests := []struct {
		name             string
		copySourceHeader string
		wantBucket       string
		wantObject       string
		wantVersionID    string
		wantErr          bool
	}{
		{
			name:             "simple path",
			copySourceHeader: "mybucket/myobject",
			wantBucket:       "mybucket",
			wantObject:       "myobject",
		},
		{
			name:             "path with leading slash",
			copySourceHeader: "/mybucket/myobject",
			wantBucket:       "mybucket",
			wantObject:       "myobject",
		},
		{
			name:             "path with versionId",
			copySourceHeader: "mybucket/myobject?versionId=abc123",
			wantBucket:       "mybucket",
			wantObject:       "myobject",
			wantVersionID:    "abc123",
		},
		{
			name:             "URL-encoded space",
			copySourceHeader: "mybucket/my%20object",
			wantBucket:       "mybucket",
			wantObject:       "my object",
		},
		{
			name:             "URL-encoded special chars",
			copySourceHeader: "mybucket/obj%23%24%25%26",
			wantBucket:       "mybucket",
			wantObject:       "obj#$%&",
		},
		{
			name:             "URL-encoded path with versionId",
			copySourceHeader: "mybucket/my%20folder/my%20object?versionId=xyz789",
			wantBucket:       "mybucket",
			wantObject:       "my folder/my object",
			wantVersionID:    "xyz789",
		},
		{
			name:             "missing object",
			copySourceHeader: "mybucket",
			wantErr:          true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotBucket, gotObject, gotVersionID, err := ParseCopySource(tt.copySourceHeader)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, gotBucket)
			assert.Equal(t, tt.wantObject, gotObject)
			assert.Equal(t, tt.wantVersionID, gotVersionID)
		})
	}
}

func TestIsValidBucketName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"abc", true},
		{"my-bucket.1", true},
		{"ab", false},
		{"-leading-hyphen", false},
		{"trailing-hyphen-", false},
		{"Has-Upper", false},
		{"has..dots", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, IsValidBucketName(tt.name))
		})
	}
}
