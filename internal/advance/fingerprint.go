package advance

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Fingerprint returns a stable identifier for an advance request: the sha-256
// of its canonical (RFC 8785) JSON form. Two submissions with the same field
// values always produce the same fingerprint, so a replayed request maps to
// the already-recorded loan instead of minting a duplicate.
func Fingerprint(req AdvanceRequest) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize request: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
