/*
 * Copyright 2025 Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package driver

import (
	"strings"

	"github.com/datazip-inc/tap-persona/types"
)

// normalizeRecord flattens a JSON:API row: id and type stay at the
// root, attributes are lifted beside them with hyphenated names
// rewritten to underscores, relationships survive as a nested object.
func normalizeRecord(resource Resource) types.Record {
	record := types.Record{
		"id":   resource.ID,
		"type": resource.Type,
	}

	for key, value := range resource.Attributes {
		record[normalizeFieldName(key)] = value
	}

	if len(resource.Relationships) > 0 {
		record["relationships"] = resource.Relationships
	}

	return record
}

// Persona follows the JSON:API convention of hyphenated field names
// (created-at); downstream schemas use underscores (created_at).
func normalizeFieldName(field string) string {
	return strings.ReplaceAll(field, "-", "_")
}
