package finalpoint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"strings"

	"github.com/bytedance/sonic"
)

func hashToken(token string) string {
	if token == "" {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// envelopeMessage pulls the server message out of an error body, if it is an envelope.
func envelopeMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var decoded envelope
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return ""
	}
	return decoded.text()
}

func isNullData(raw []byte) bool {
	text := strings.TrimSpace(string(raw))
	return text == "" || text == "null"
}
