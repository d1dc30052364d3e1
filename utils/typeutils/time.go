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

package typeutils

import (
	"fmt"
	"strings"
	"time"
)

// layouts accepted for replication-key values; the Persona API emits
// RFC3339, the rest cover hand-written start dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type Time struct {
	time.Time
}

// UnmarshalJSON overrides the default unmarshalling for Time
func (ct *Time) UnmarshalJSON(b []byte) error {
	str := strings.Trim(string(b), "\"")
	parsed, err := ParseTimestamp(str)
	if err != nil {
		return err
	}

	*ct = Time{parsed}
	return nil
}

func (ct Time) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", ct.UTC().Format(time.RFC3339Nano))), nil
}

func (ct Time) Before(u Time) bool {
	return ct.Time.Before(u.Time)
}

func (ct Time) After(u Time) bool {
	return ct.Time.After(u.Time)
}

func (ct Time) Equal(u Time) bool {
	return ct.Time.Equal(u.Time)
}

// Compare returns -1 if ct is before u, +1 if after, 0 if equal.
func (ct Time) Compare(u Time) int {
	if ct.Before(u) {
		return -1
	}
	if ct.After(u) {
		return 1
	}
	return 0
}

// ParseTimestamp parses a timestamp string against the known layouts.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("value [%s] is not a parseable timestamp", value)
}

// FormatCursorValue normalizes a cursor value for state serialization;
// time values always serialize as RFC3339 UTC strings.
func FormatCursorValue(value any) any {
	switch typed := value.(type) {
	case time.Time:
		return typed.UTC().Format(time.RFC3339Nano)
	case Time:
		return typed.UTC().Format(time.RFC3339Nano)
	default:
		return value
	}
}
