package types

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ContentHash identifies file content by a git-style SHA-1 blob hash,
// so stored results can be matched to `git hash-object` output.
type ContentHash [20]byte

// HashContent computes SHA-1("blob {len}\0{content}").
func HashContent(content []byte) ContentHash {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(content))
	h.Write(content)

	var id ContentHash
	copy(id[:], h.Sum(nil))
	return id
}

// Hex returns the 40-character hex form.
func (id ContentHash) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ContentHash) String() string {
	return id.Hex()
}

// ParseContentHash parses the 40-character hex form.
func ParseContentHash(hexStr string) (ContentHash, error) {
	if len(hexStr) != 40 {
		return ContentHash{}, fmt.Errorf("invalid content hash length: expected 40, got %d", len(hexStr))
	}

	decoded, err := hex.DecodeString(hexStr)
	if err != nil {
		return ContentHash{}, fmt.Errorf("invalid hex string: %w", err)
	}

	var id ContentHash
	copy(id[:], decoded)
	return id, nil
}

// MarshalJSON implements json.Marshaler.
func (id ContentHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ContentHash) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}

	parsed, err := ParseContentHash(hexStr)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
