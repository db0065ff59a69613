package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/kazijawad/bonsai/pkg/integrator"
	"github.com/kazijawad/bonsai/pkg/renderer"
	"github.com/kazijawad/bonsai/pkg/scene"
)

// RenderScene renders a scene to a PNG file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx.String("scene"))
	if err != nil {
		return err
	}
	sc.Preprocess()

	config := renderConfig(sc, ctx)
	integ := integrator.NewPathTracer(maxDepth(sc, ctx), sc.SamplingConfig.RussianRouletteMinBounces)
	r := renderer.NewRenderer(sc, sc.CameraConfig, integ, config)

	logger.Noticef("rendering %q at %dx%d, %d samples per pixel",
		sc.Name, config.Width, config.Height, config.SamplesPerPixel)

	start := time.Now()
	passChan, errChan := r.RenderProgressive(context.Background())

	var final *image.RGBA
	var stats renderer.RenderStats
	for result := range passChan {
		final = result.Image
		stats = result.Stats
	}
	if renderErr, ok := <-errChan; ok {
		return renderErr
	}
	elapsed := time.Since(start)

	out := ctx.String("out")
	if err := writePNG(out, final); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	displayRenderStats(sc, stats, elapsed)
	return nil
}

// loadScene resolves a scene argument, either a built-in name or a path to a
// scene JSON file
func loadScene(name string) (*scene.Scene, error) {
	if name == "" {
		name = "cornell"
	}
	if strings.HasSuffix(name, ".json") {
		return scene.Load(name)
	}
	return scene.NewSceneByID(name)
}

// renderConfig merges the scene's preferred settings with flag overrides
func renderConfig(sc *scene.Scene, ctx *cli.Context) renderer.Config {
	config := renderer.DefaultConfig()

	sampling := sc.SamplingConfig
	if sampling.Width > 0 {
		config.Width = sampling.Width
	}
	if sampling.Height > 0 {
		config.Height = sampling.Height
	}
	if sampling.SamplesPerPixel > 0 {
		config.SamplesPerPixel = sampling.SamplesPerPixel
	}
	config.AdaptiveMinSamples = sampling.AdaptiveMinSamples
	config.AdaptiveThreshold = sampling.AdaptiveThreshold

	if v := ctx.Int("width"); v > 0 {
		config.Width = v
	}
	if v := ctx.Int("height"); v > 0 {
		config.Height = v
	}
	if v := ctx.Int("spp"); v > 0 {
		config.SamplesPerPixel = v
	}
	if v := ctx.Int("workers"); v > 0 {
		config.NumWorkers = v
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}

	return config
}

// maxDepth picks the bounce depth, preferring the flag over the scene
func maxDepth(sc *scene.Scene, ctx *cli.Context) int {
	if v := ctx.Int("depth"); v > 0 {
		return v
	}
	if sc.SamplingConfig.MaxDepth > 0 {
		return sc.SamplingConfig.MaxDepth
	}
	return 25
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func displayRenderStats(sc *scene.Scene, stats renderer.RenderStats, elapsed time.Duration) {
	bvhStats := sc.BVH.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples", "Avg spp", "Min spp", "Max spp", "Shapes", "BVH nodes", "BVH depth", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%d", stats.MinSamples),
		fmt.Sprintf("%d", stats.MaxSamplesUsed),
		fmt.Sprintf("%d", bvhStats.TotalShapes),
		fmt.Sprintf("%d", bvhStats.TotalNodes),
		fmt.Sprintf("%d", bvhStats.MaxDepth),
		fmt.Sprintf("%s", elapsed.Round(time.Millisecond)),
	})
	table.Render()

	logger.Noticef("render statistics\n%s", buf.String())
}
