package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"two-mirrors", "Two Mirrors"},
		{"glass_ball", "Glass Ball"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"éclair-über", "Éclair Über"},
		{"ÅSA_ñandú", "Åsa Ñandú"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:     "complete.yaml",
			content:  "# Scene: Hall of Mirrors\n# Description: Two facing mirrors\nbackground: \"#000000\"\n",
			expected: SceneInfo{Name: "Hall of Mirrors", Description: "Two facing mirrors"},
		},
		{
			name:     "no-metadata.yaml",
			content:  "background: \"#000000\"\n",
			expected: SceneInfo{Name: "No Metadata"},
		},
		{
			name:     "late_comment.yml",
			content:  "depth: 2\n# Scene: Ignored\n",
			expected: SceneInfo{Name: "Late Comment"},
		},
		{
			name:     "plain-comments.yaml",
			content:  "# just a note\n#Description:Tight\n",
			expected: SceneInfo{Name: "Plain Comments", Description: "Tight"},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("Failed to write scene: %v", err)
			}

			info, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata failed: %v", err)
			}

			tc.expected.Path = path
			if info != tc.expected {
				t.Errorf("Expected %+v, got %+v", tc.expected, info)
			}
		})
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":    "# Scene: Beta\n",
		"a.yml":     "# Scene: Alpha\n",
		"notes.txt": "# Scene: Not a scene\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles failed: %v", err)
	}

	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scene files, got %d: %+v", len(scenes), scenes)
	}
	if scenes[0].Name != "Alpha" || scenes[1].Name != "Beta" {
		t.Errorf("Expected scenes sorted by name, got %q, %q", scenes[0].Name, scenes[1].Name)
	}
}

func TestListSceneFiles_MissingDir(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Expected no error for a missing directory, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}
