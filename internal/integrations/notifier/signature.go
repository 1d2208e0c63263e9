package notifier

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign возвращает hex HMAC-SHA256 тела запроса для заголовка X-Signature
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify проверяет подпись тела запроса
func Verify(secret string, body []byte, provided string) bool {
	expected, err := hex.DecodeString(provided)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
