package elevenlabs

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the header carrying the post-call webhook signature.
const SignatureHeader = "ElevenLabs-Signature"

// SignatureTolerance bounds how old a signed webhook may be.
const SignatureTolerance = 30 * time.Minute

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleSignature   = errors.New("webhook signature timestamp outside tolerance")
)

// Sign builds a header value of the form t=<unix>,v0=<hex hmac>.
func Sign(payload []byte, secret string, timestamp time.Time) string {
	ts := timestamp.Unix()
	return fmt.Sprintf("t=%d,v0=%s", ts, computeSignature(payload, secret, ts))
}

// VerifySignature checks a signature header against the raw request body.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	if header == "" {
		return ErrMissingSignature
	}

	var (
		timestamp  int64
		signatures []string
		err        error
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			if timestamp, err = strconv.ParseInt(value, 10, 64); err != nil {
				return ErrInvalidSignature
			}
		case "v0":
			signatures = append(signatures, value)
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return ErrInvalidSignature
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > SignatureTolerance || age < -SignatureTolerance {
		return ErrStaleSignature
	}

	expected := computeSignature(payload, secret, timestamp)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

func computeSignature(payload []byte, secret string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", timestamp, payload)))
	return hex.EncodeToString(mac.Sum(nil))
}
