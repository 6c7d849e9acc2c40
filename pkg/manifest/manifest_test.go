package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/argwheel/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr errors.Code
	}{
		{"array", `["a.json", "b.json"]`, []string{"a.json", "b.json"}, ""},
		{"object", `{"files": ["b.json", "a.json"]}`, []string{"b.json", "a.json"}, ""},
		{"duplicates", `["a.json", "a.json", "b.json"]`, []string{"a.json", "b.json"}, ""},
		{"empty", `[]`, []string{}, ""},
		{"traversal", `["../secret.json"]`, nil, errors.ErrCodeInvalidPath},
		{"wrong extension", `["notes.txt"]`, nil, errors.ErrCodeInvalidPath},
		{"not json", `files: a.json`, nil, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, FileName, `["z.json", "a.json"]`)
	write(t, dir, "other.json", `{}`)

	got, err := Read(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"z.json", "a.json"}; !slices.Equal(got, want) {
		t.Errorf("Read() = %v, want manifest order %v", got, want)
	}
}

func TestReadScansWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.json", `{}`)
	write(t, dir, "a.json", `{}`)
	write(t, dir, "readme.md", ``)
	write(t, dir, ".hidden.json", `{}`)
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a.json", "b.json"}; !slices.Equal(got, want) {
		t.Errorf("Read() = %v, want %v", got, want)
	}
}

func TestReadMissingDir(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Read() error = %v, want NOT_FOUND", err)
	}
}

func TestResolve(t *testing.T) {
	if got, err := Resolve("/data", "a.json"); err != nil || got != filepath.Join("/data", "a.json") {
		t.Errorf("Resolve() = %q, %v", got, err)
	}
	if _, err := Resolve("/data", "../../etc/passwd.json"); err == nil {
		t.Error("Resolve() should reject traversal")
	}
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
