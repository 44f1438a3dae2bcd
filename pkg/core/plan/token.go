package plan

import (
	"encoding/base64"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/calgal7-del/1040-paydays/pkg/core/projection"
)

// SharePayload is what a share link carries: the form snapshot plus an
// optional display name. No identity and no timestamps; the link IS the
// plan.
type SharePayload struct {
	Name string `json:"name,omitempty"`
	projection.FormValues
}

// maxTokenLen bounds decoded share tokens. A legitimate payload is a few
// hundred bytes; anything larger is garbage or abuse.
const maxTokenLen = 8 * 1024

// EncodeShareToken serializes a payload into a URL-safe, unpadded base64
// token suitable for a path segment.
func EncodeShareToken(p SharePayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("TOKEN_ENCODE_FAILED: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeShareToken reverses EncodeShareToken. Padding is tolerated (links
// get copied through tools that re-pad base64) and the embedded JSON goes
// through the lenient parse chain.
func DecodeShareToken(token string) (SharePayload, error) {
	token = strings.TrimRight(strings.TrimSpace(token), "=")
	if token == "" {
		return SharePayload{}, fmt.Errorf("TOKEN_DECODE_FAILED: empty token")
	}
	if len(token) > maxTokenLen {
		return SharePayload{}, fmt.Errorf("TOKEN_DECODE_FAILED: token exceeds %d bytes", maxTokenLen)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return SharePayload{}, fmt.Errorf("TOKEN_DECODE_FAILED: %v", err)
	}

	var p SharePayload
	if err := ParseLenient(raw, &p); err != nil {
		return SharePayload{}, err
	}
	return p, nil
}
