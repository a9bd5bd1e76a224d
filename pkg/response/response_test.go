package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestNewMetaRoundsPagesUp(t *testing.T) {
	cases := []struct {
		page, pageSize int
		total          int64
		wantPages      int
	}{
		{1, 10, 0, 0},
		{1, 10, 10, 1},
		{1, 10, 11, 2},
		{2, 3, 7, 3},
		{1, 0, 5, 0},
	}
	for _, c := range cases {
		meta := NewMeta(c.page, c.pageSize, c.total)
		if meta.TotalPages != c.wantPages {
			t.Fatalf("NewMeta(%d, %d, %d): expected %d pages, got %d", c.page, c.pageSize, c.total, c.wantPages, meta.TotalPages)
		}
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "Patient not found")

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Message != "Patient not found" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}
