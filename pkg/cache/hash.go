package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key of the form "prefix:digest". The parts (content
// hash, format and whichever render options change the artifact's bytes) are
// JSON-encoded together and digested with SHA-256.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the 64-character hex SHA-256 of data. The pipeline hashes a
// dashboard's canonical JSON with it to address the dashboard's artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
