package service

import "testing"

func TestExtractFileID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{
			name:   "file link with viewer suffix",
			input:  "https://drive.google.com/file/d/1A2b_3C-xyz/view?usp=sharing",
			wantID: "1A2b_3C-xyz",
			wantOK: true,
		},
		{
			name:   "open link with id query",
			input:  "https://drive.google.com/open?id=XyZ789_-",
			wantID: "XyZ789_-",
			wantOK: true,
		},
		{
			name:   "docs document link",
			input:  "https://docs.google.com/document/d/1aBcDeFgHiJ/edit",
			wantID: "1aBcDeFgHiJ",
			wantOK: true,
		},
		{
			name:   "plain http scheme",
			input:  "http://drive.google.com/file/d/abc123",
			wantID: "abc123",
			wantOK: true,
		},
		{
			name:   "link embedded in surrounding text",
			input:  "see https://drive.google.com/file/d/q_W-e4/view for details",
			wantID: "q_W-e4",
			wantOK: true,
		},
		{
			name:  "unrelated URL",
			input: "https://example.com/not-a-drive-link",
		},
		{
			name:  "drive host without recognized path",
			input: "https://drive.google.com/drive/folders/1A2b3C",
		},
		{
			name:  "missing scheme",
			input: "drive.google.com/file/d/abc123",
		},
		{
			name:  "empty string",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractFileID(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractFileID(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Fatalf("ExtractFileID(%q) id = %q, want %q", tt.input, id, tt.wantID)
			}
		})
	}
}

func TestExtractFileID_MaximalRun(t *testing.T) {
	// The ID stops at the first character outside [A-Za-z0-9_-].
	id, ok := ExtractFileID("https://drive.google.com/file/d/abc-DEF_123/view")
	if !ok {
		t.Fatal("expected a match")
	}
	if id != "abc-DEF_123" {
		t.Fatalf("id = %q, want %q", id, "abc-DEF_123")
	}
}

func TestDirectDownloadURL(t *testing.T) {
	got := DirectDownloadURL("1A2b_3C-xyz")
	want := "https://drive.google.com/uc?export=download&id=1A2b_3C-xyz"
	if got != want {
		t.Fatalf("DirectDownloadURL = %q, want %q", got, want)
	}
}
