package queue

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	tokens := []JobToken{
		{PatientID: 1, ActionID: 2, VideoID: 3},
		{PatientID: 0, ActionID: 0, VideoID: 0},
		{PatientID: 4294967295, ActionID: 1, VideoID: 99},
		{PatientID: ^uint(0), ActionID: ^uint(0) - 1, VideoID: ^uint(0)},
	}
	for _, tok := range tokens {
		parsed, err := ParseToken(tok.Encode())
		if err != nil {
			t.Fatalf("parse %q: %v", tok.Encode(), err)
		}
		if parsed != tok {
			t.Fatalf("round trip mismatch: %+v != %+v", parsed, tok)
		}
	}
}

func TestEncodeWireFormat(t *testing.T) {
	got := JobToken{PatientID: 12, ActionID: 34, VideoID: 56}.Encode()
	if got != "12-34-56" {
		t.Fatalf("wire format changed: %q", got)
	}
}

func TestParseTokenRejectsMalformedInput(t *testing.T) {
	for _, s := range []string{"", "1-2", "1-2-3-4", "a-b-c", "1--3", "-1-2-3"} {
		if _, err := ParseToken(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}
