package docparse

import "testing"

func TestPDFText_InvalidData(t *testing.T) {
	if _, err := PDFText([]byte("not a pdf at all")); err == nil {
		t.Error("PDFText() error = nil, want non-nil for invalid data")
	}
}

func TestPDFText_Empty(t *testing.T) {
	if _, err := PDFText(nil); err == nil {
		t.Error("PDFText() error = nil, want non-nil for empty data")
	}
}
