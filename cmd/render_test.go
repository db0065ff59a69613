package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli"

	"github.com/kazijawad/bonsai/pkg/scene"
)

func testContext(t *testing.T, args map[string]string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.Int("width", 0, "")
	set.Int("height", 0, "")
	set.Int("spp", 0, "")
	set.Int("depth", 0, "")
	set.Int("workers", 0, "")
	set.Int64("seed", 42, "")

	for key, value := range args {
		if err := set.Set(key, value); err != nil {
			t.Fatalf("Failed to set flag %s: %v", key, err)
		}
	}
	return cli.NewContext(nil, set, nil)
}

func TestLoadScene(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		sceneName string
		wantErr   bool
	}{
		{"cornell by name", "cornell", "cornell", false},
		{"spheres by name", "spheres", "spheres", false},
		{"empty name falls back to cornell", "", "cornell", false},
		{"unknown name", "voxels", "", true},
		{"missing json file", "no-such-scene.json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := loadScene(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %q", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if sc.Name != tt.sceneName {
				t.Errorf("Expected scene %q, got %q", tt.sceneName, sc.Name)
			}
		})
	}
}

func TestLoadScene_FromJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.json")
	data := `{
		"name": "from-file",
		"camera": {
			"position": {"x": 0, "y": 1, "z": 5},
			"look_at": {"x": 0, "y": 0, "z": 0},
			"vfov": 45
		},
		"settings": {"width": 100, "height": 80, "samples_per_pixel": 8, "max_depth": 5},
		"materials": [
			{"id": "white", "type": "matte", "albedo": {"r": 0.7, "g": 0.7, "b": 0.7}}
		],
		"objects": [
			{"type": "sphere", "material": "white", "center": {"x": 0, "y": 0, "z": 0}, "radius": 1}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := loadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sc.Name != "from-file" {
		t.Errorf("Expected scene name from the file, got %q", sc.Name)
	}
	if sc.SamplingConfig.Width != 100 || sc.SamplingConfig.Height != 80 {
		t.Errorf("Expected 100x80 from the file settings, got %dx%d",
			sc.SamplingConfig.Width, sc.SamplingConfig.Height)
	}
}

func TestRenderConfig(t *testing.T) {
	sc := scene.NewScene("test")
	sc.SamplingConfig = scene.SamplingConfig{
		Width:              640,
		Height:             360,
		SamplesPerPixel:    128,
		AdaptiveMinSamples: 0.2,
		AdaptiveThreshold:  0.05,
	}

	// Scene settings apply when no flags are given
	config := renderConfig(sc, testContext(t, nil))
	if config.Width != 640 || config.Height != 360 || config.SamplesPerPixel != 128 {
		t.Errorf("Expected the scene's settings, got %dx%d spp %d",
			config.Width, config.Height, config.SamplesPerPixel)
	}
	if config.AdaptiveMinSamples != 0.2 || config.AdaptiveThreshold != 0.05 {
		t.Errorf("Expected the scene's adaptive settings, got %+v", config)
	}
	if config.Seed != 42 {
		t.Errorf("Expected the default seed, got %d", config.Seed)
	}

	// Flags win over scene settings
	config = renderConfig(sc, testContext(t, map[string]string{
		"width":   "100",
		"spp":     "7",
		"workers": "3",
		"seed":    "7",
	}))
	if config.Width != 100 || config.Height != 360 {
		t.Errorf("Expected only the width overridden, got %dx%d", config.Width, config.Height)
	}
	if config.SamplesPerPixel != 7 || config.NumWorkers != 3 || config.Seed != 7 {
		t.Errorf("Expected flag overrides applied, got %+v", config)
	}
}

func TestMaxDepth(t *testing.T) {
	sc := scene.NewScene("test")
	sc.SamplingConfig.MaxDepth = 10

	if got := maxDepth(sc, testContext(t, nil)); got != 10 {
		t.Errorf("Expected the scene's depth, got %d", got)
	}
	if got := maxDepth(sc, testContext(t, map[string]string{"depth": "3"})); got != 3 {
		t.Errorf("Expected the flag's depth, got %d", got)
	}

	sc.SamplingConfig.MaxDepth = 0
	if got := maxDepth(sc, testContext(t, nil)); got != 25 {
		t.Errorf("Expected the fallback depth, got %d", got)
	}
}
