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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDurabilityMap_DefaultWhenPathEmpty(t *testing.T) {
	m, err := loadDurabilityMap("", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, m.DefaultDurability)
	assert.Equal(t, 2, m.ClassToDurability["STANDARD"])
	assert.Equal(t, "STANDARD", m.DurabilityToClass[2])
}

func TestLoadDurabilityMap_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durability.json")
	contents := `{
		"storageClassMappingToDurability": {"STANDARD": 2, "GLACIER": 4},
		"durabilityMappingToStorageClass": {"2": "STANDARD", "4": "GLACIER"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	m, err := loadDurabilityMap(path, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, m.ClassToDurability["STANDARD"])
	assert.Equal(t, 4, m.ClassToDurability["GLACIER"])
	assert.Equal(t, "GLACIER", m.DurabilityToClass[4])
	assert.Equal(t, 2, m.DefaultDurability)
}

func TestLoadDurabilityMap_BadDurabilityKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durability.json")
	contents := `{
		"storageClassMappingToDurability": {"STANDARD": 2},
		"durabilityMappingToStorageClass": {"not-a-number": "STANDARD"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := loadDurabilityMap(path, 2)
	assert.Error(t, err)
}

func TestLoadDurabilityMap_MissingFile(t *testing.T) {
	_, err := loadDurabilityMap(filepath.Join(t.TempDir(), "nope.json"), 2)
	assert.Error(t, err)
}
