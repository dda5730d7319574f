package render

import (
	"bytes"
	"strings"
	"testing"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><circle cx="5" cy="5" r="4"/></svg>`

func TestToPDF(t *testing.T) {
	pdf, err := ToPDF([]byte(testSVG))
	if !Available() {
		if err == nil || !strings.Contains(err.Error(), "librsvg") {
			t.Errorf("without rsvg-convert: err = %v, want install hint", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", pdf[:min(len(pdf), 16)])
	}
}

func TestToPDFInvalidSVG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	if _, err := ToPDF([]byte("not svg")); err == nil {
		t.Error("invalid SVG should fail")
	}
}
