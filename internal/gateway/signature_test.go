package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureRoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("gateway-secret")
	sig := Signature(secret, "order_abc", "pay_xyz")
	require.Len(t, sig, 64)

	assert.True(t, VerifySignature(secret, "order_abc", "pay_xyz", sig))
}

func TestVerifySignature_Rejections(t *testing.T) {
	t.Parallel()

	secret := []byte("gateway-secret")
	sig := Signature(secret, "order_abc", "pay_xyz")

	assert.False(t, VerifySignature(secret, "order_abc", "pay_other", sig))
	assert.False(t, VerifySignature(secret, "order_other", "pay_xyz", sig))
	assert.False(t, VerifySignature([]byte("wrong-secret"), "order_abc", "pay_xyz", sig))
	assert.False(t, VerifySignature(secret, "order_abc", "pay_xyz", ""))
}

// The payload is orderRef|paymentRef; shifting the separator must not
// produce a colliding signature.
func TestSignature_SeparatorUnambiguous(t *testing.T) {
	t.Parallel()

	secret := []byte("gateway-secret")
	a := Signature(secret, "order_a", "b_pay")
	b := Signature(secret, "order_a|b", "pay")
	assert.NotEqual(t, a, b)
}
