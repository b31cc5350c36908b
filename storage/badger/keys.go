package badger

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/acroforms/formrank/core"
)

// Key prefixes for different data types
const (
	documentPrefix = "docrec"
	vocabularyKey  = "vocsnap"
	historyPrefix  = "histrec"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeVocabularyKey generates the singleton vocabulary snapshot key.
func makeVocabularyKey() []byte {
	return []byte(vocabularyKey)
}

// makeHistoryKey generates a composite key for a history entry.
// Format: prefix:hostHash:invertedTimestamp:pathHash
// The timestamp is inverted so a forward prefix scan yields newest first.
func makeHistoryKey(host string, uploadedAt time.Time, path string) []byte {
	prefix := historyPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 24 // 8 bytes host hash + 8 bytes timestamp + 8 bytes path hash
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(host)))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], math.MaxUint64-uint64(uploadedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(path)))
	return buf
}

// makePartialHistoryKey generates the scan prefix for one host's entries.
// Format: prefix:hostHash
func makePartialHistoryKey(host string) []byte {
	prefix := historyPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes host hash
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.IDFromContent(host)))
	return buf
}
