package logging

import "testing"

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		log, err := New(format, true)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", format, err)
		}
		log.Debug("probe")
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, err := New("xml", false); err == nil {
		t.Fatal("New(\"xml\") = nil, want error")
	}
}
