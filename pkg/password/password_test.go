package password

import "testing"

func TestHashAndCheck(t *testing.T) {
	hashed, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !Check("s3cret", hashed) {
		t.Fatal("expected matching password to verify")
	}
	if Check("wrong", hashed) {
		t.Fatal("expected mismatching password to fail")
	}
}
