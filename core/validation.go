// Copyright 2026 Acroforms Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Path must not be empty
//
// NOT validated (populated during indexing):
//   - Sparse (empty until the document is vectorized)
//   - Dense (optional, empty unless an embedding provider ran)
//   - Id (derived from Path on store)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyPath)
	}

	return nil
}

// ValidateHistoryEntry validates a HistoryEntry according to domain rules.
//
// Validation rules:
//   - Path must not be empty
//   - Host must not be empty
//   - UploadedAt must not be in the future
func ValidateHistoryEntry(entry *HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidHistoryEntry)
	}

	if entry.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyPath)
	}

	if entry.Host == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyHost)
	}

	if !IsValidTimestamp(entry.UploadedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateVocabularySnapshot checks positional correspondence between the
// snapshot's term and IDF lists.
func ValidateVocabularySnapshot(snapshot *VocabularySnapshot) error {
	if snapshot == nil {
		return nil
	}
	if len(snapshot.Terms) != len(snapshot.IDF) {
		return fmt.Errorf("%w: %d terms, %d idf values",
			ErrSnapshotMismatch, len(snapshot.Terms), len(snapshot.IDF))
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
