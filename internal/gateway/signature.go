package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature computes the callback signature the gateway sends alongside
// a completed payment: hex(HMAC-SHA256(secret, orderRef + "|" + paymentRef)).
func Signature(secret []byte, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret []byte, orderRef, paymentRef, signature string) bool {
	expected := Signature(secret, orderRef, paymentRef)
	return hmac.Equal([]byte(expected), []byte(signature))
}
