package queue

import (
	"fmt"
	"strconv"
	"strings"
)

// JobToken identifies one analysis job on the waiting/running lists. Its
// encoded form "<patient_id>-<action_id>-<video_id>" is a compatibility
// contract with the external pose-analysis worker and must be preserved
// byte-for-byte.
type JobToken struct {
	PatientID uint
	ActionID  uint
	VideoID   uint
}

// Encode renders the wire form of the token.
func (t JobToken) Encode() string {
	return fmt.Sprintf("%d-%d-%d", t.PatientID, t.ActionID, t.VideoID)
}

// ParseToken is the strict inverse of Encode.
func ParseToken(s string) (JobToken, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return JobToken{}, fmt.Errorf("queue: malformed job token %q", s)
	}
	ids := make([]uint64, 3)
	for i, part := range parts {
		id, err := strconv.ParseUint(part, 10, strconv.IntSize)
		if err != nil {
			return JobToken{}, fmt.Errorf("queue: malformed job token %q: %w", s, err)
		}
		ids[i] = id
	}
	return JobToken{
		PatientID: uint(ids[0]),
		ActionID:  uint(ids[1]),
		VideoID:   uint(ids[2]),
	}, nil
}
