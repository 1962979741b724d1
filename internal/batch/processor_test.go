package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Item
		wantErr     bool
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "terms with notes",
			fileContent: `manzana = apple
gato = cat
perro = dog`,
			want: []Item{
				{Term: "manzana", Note: "apple"},
				{Term: "gato", Note: "cat"},
				{Term: "perro", Note: "dog"},
			},
		},
		{
			name: "mixed format",
			fileContent: `manzana
gato = cat
¿Qué tal?
pan = bread`,
			want: []Item{
				{Term: "manzana"},
				{Term: "gato", Note: "cat"},
				{Term: "¿Qué tal?"},
				{Term: "pan", Note: "bread"},
			},
		},
		{
			name: "empty lines, comments and whitespace",
			fileContent: `
# food
manzana

gato = cat

  perro
#pets
`,
			want: []Item{
				{Term: "manzana"},
				{Term: "gato", Note: "cat"},
				{Term: "perro"},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "manzana\r\ngato = cat\r\nperro",
			want: []Item{
				{Term: "manzana"},
				{Term: "gato", Note: "cat"},
				{Term: "perro"},
			},
		},
		{
			name:        "multiple equals signs",
			fileContent: `test = word = with = equals`,
			want: []Item{
				{Term: "test", Note: "word = with = equals"},
			},
		},
		{
			name: "note without term is ignored",
			fileContent: `= apple
gato`,
			want: []Item{
				{Term: "gato"},
			},
		},
		{
			name:        "multi-word phrases and other scripts",
			fileContent: "buenos días\nありがとう = thanks\nспасибо",
			want: []Item{
				{Term: "buenos días"},
				{Term: "ありがとう", Note: "thanks"},
				{Term: "спасибо"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp file
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "test.txt")
			err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadBatchFile(tmpFile)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadBatchFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_FileNotFound(t *testing.T) {
	_, err := ReadBatchFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		input string
		want  Item
		ok    bool
	}{
		{"hola", Item{Term: "hola"}, true},
		{"  hola = hi  ", Item{Term: "hola", Note: "hi"}, true},
		{"hola =", Item{Term: "hola"}, true},
		{"# comment", Item{}, false},
		{"   ", Item{}, false},
		{"= only note", Item{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseLine(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseLine(%q) = %+v, %v; want %+v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
