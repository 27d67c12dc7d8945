package util

import "testing"

func TestNamespaceDir(t *testing.T) {
	got := NamespaceDir("job:7f9c")
	if len(got) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("directory contains non-hex character: %c", ch)
		}
	}
	if NamespaceDir(" JOB:7F9C ") != got {
		t.Fatal("expected case and space to be ignored")
	}
	if NamespaceDir("job:7f9d") == got {
		t.Fatal("different jobs must not share a directory")
	}
}
