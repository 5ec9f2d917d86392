package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret, data string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := NewRazorpayService("key", "secret", "whsecret", nil)

	valid := sign("secret", "order_1|pay_1")
	if !svc.verifySignature("order_1", "pay_1", valid) {
		t.Error("verifySignature() rejected a valid signature")
	}
	if svc.verifySignature("order_1", "pay_1", sign("wrong", "order_1|pay_1")) {
		t.Error("verifySignature() accepted a signature from the wrong secret")
	}
	if svc.verifySignature("order_2", "pay_1", valid) {
		t.Error("verifySignature() accepted a signature for a different order")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	svc := NewRazorpayService("key", "secret", "whsecret", nil)

	body := []byte(`{"event":"payment.captured"}`)
	if !svc.VerifyWebhookSignature(body, sign("whsecret", string(body))) {
		t.Error("VerifyWebhookSignature() rejected a valid signature")
	}
	if svc.VerifyWebhookSignature(body, sign("other", string(body))) {
		t.Error("VerifyWebhookSignature() accepted a bad signature")
	}

	// Without a configured secret nothing can be verified
	unconfigured := NewRazorpayService("key", "secret", "", nil)
	if unconfigured.VerifyWebhookSignature(body, sign("whsecret", string(body))) {
		t.Error("VerifyWebhookSignature() accepted a delivery with no secret configured")
	}
}
