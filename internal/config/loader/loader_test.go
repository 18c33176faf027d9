package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

type settings struct {
	Ring struct {
		Capacity int  `toml:"capacity" yaml:"capacity"`
		Enabled  bool `toml:"enabled" yaml:"enabled"`
	} `toml:"ring" yaml:"ring"`
	Name string `toml:"name" yaml:"name"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"config.toml", FormatTOML, false},
		{"/etc/KILLRING.TOML", FormatTOML, false},
		{"config.yaml", FormatYAML, false},
		{"config.yml", FormatYAML, false},
		{"config.json", 0, true},
		{"config", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) err = %v", tt.path, err)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) err = %v, want ErrUnsupportedFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadFileTOML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
name = "main"

[ring]
capacity = 10
`)

	var s settings
	s.Ring.Enabled = true
	if err := LoadFile(memfs, "/config.toml", &s); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if s.Name != "main" || s.Ring.Capacity != 10 {
		t.Errorf("settings = %+v", s)
	}
	if !s.Ring.Enabled {
		t.Error("absent key overwrote the preset value")
	}
}

func TestLoadFileYAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", "ring:\n  capacity: 7\n  enabled: false\n")

	var s settings
	s.Ring.Enabled = true
	if err := LoadFile(memfs, "/config.yaml", &s); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if s.Ring.Capacity != 7 || s.Ring.Enabled {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadFileEmptyYAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yml", "")

	var s settings
	if err := LoadFile(memfs, "/empty.yml", &s); err != nil {
		t.Errorf("empty YAML file: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	var s settings
	err := LoadFile(NewMemFS(), "/nope.toml", &s)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestTOMLParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int // 0 skips the check
		wantMsg  string
	}{
		{"syntax", "name = \"x\"\n[ring\n", 2, ""},
		{"unknown key", "[ring]\ncapacty = 3\n", 2, "unknown key ring.capacty"},
		{"wrong type", "[ring]\ncapacity = \"many\"\n", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := NewMemFS()
			memfs.AddFile("/bad.toml", tt.content)

			var s settings
			err := LoadFile(memfs, "/bad.toml", &s)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Path != "/bad.toml" || (tt.wantLine > 0 && pe.Line != tt.wantLine) {
				t.Errorf("ParseError = %+v", pe)
			}
			if tt.wantMsg != "" && pe.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", pe.Message, tt.wantMsg)
			}
		})
	}
}

func TestYAMLUnknownField(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "ring:\n  capacty: 3\n")

	var s settings
	err := LoadFile(memfs, "/bad.yaml", &s)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if !strings.Contains(pe.Error(), "capacty") {
		t.Errorf("error = %q", pe.Error())
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 3, Column: 4, Message: "bad"}, "parse error in a.toml at line 3, column 4: bad"},
		{&ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{&ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
