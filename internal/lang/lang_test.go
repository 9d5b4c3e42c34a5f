package lang

import "testing"

func TestForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Language
	}{
		{".c", C},
		{".h", C},
		{".hpp", CPP},
		{".py", Python},
		{".pyw", Python},
		{".jsx", JavaScript},
		{".ts", TypeScript},
		{".tsx", TSX},
		{".java", Java},
		{".kt", Kotlin},
		{".rs", Rust},
		{".go", Go},
		{".lua", Lua},
	}
	for _, tt := range tests {
		spec := ForExtension(tt.ext)
		if spec == nil {
			t.Fatalf("no spec for %s", tt.ext)
		}
		if spec.Language != tt.want {
			t.Errorf("%s -> %s, want %s", tt.ext, spec.Language, tt.want)
		}
	}
}

func TestUnsupportedExtension(t *testing.T) {
	for _, ext := range []string{".md", ".json", ".txt", ""} {
		if Supported(ext) {
			t.Errorf("%q should not be supported", ext)
		}
	}
}
