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

package destination

import (
	"context"
)

// Writer serializes protocol messages for one downstream consumer.
// Flush forces buffered messages out; records count as delivered only
// after Flush returns, so state checkpoints must flush first.
type Writer interface {
	Type() string
	Setup(ctx context.Context, config *WriterConfig) error
	Write(message any) error
	Flush() error
	Close() error
}

type WriterConfig struct {
	Type string `json:"type"`
}

type NewFunc func() Writer

// RegisteredWriters maps writer type to constructor
var RegisteredWriters = map[string]NewFunc{}
