package credentials_test

import (
	"strings"
	"testing"

	"github.com/CovertCollective/CC-Backend/internal/credentials"
)

func TestHashVerify(t *testing.T) {
	digest, err := credentials.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if digest == "hunter2" || !strings.HasPrefix(digest, "$2") {
		t.Errorf("expected a bcrypt digest, got %q", digest)
	}
	if !credentials.Verify("hunter2", digest) {
		t.Error("expected matching password to verify")
	}
	if credentials.Verify("hunter3", digest) {
		t.Error("expected non-matching password to fail")
	}
}

// Two hashes of the same password must differ (per-hash salt).
func TestHashIsSalted(t *testing.T) {
	a, err := credentials.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := credentials.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("expected salted digests to differ")
	}
}
