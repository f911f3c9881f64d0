package stamp

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/quidome/datestamp-go/pkg/capturedate"
	"github.com/quidome/datestamp-go/pkg/plan"
	"github.com/quidome/datestamp-go/pkg/watermark"
)

func testWatermarkConfig() watermark.Config {
	return watermark.Config{
		Position:    watermark.RightBottom,
		FontSize:    12,
		Color:       color.NRGBA{0xff, 0xff, 0xff, 0xff},
		Opacity:     220,
		Margin:      4,
		StrokeWidth: 1,
		StrokeColor: color.NRGBA{0x00, 0x00, 0x00, 0xff},
	}
}

func writeTestImage(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	img := imaging.New(120, 80, color.NRGBA{R: 10, G: 60, B: 110, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save test image: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func TestExecute_StampsWithMtimeFallback(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "output")

	mtime := time.Date(2022, 1, 15, 12, 0, 0, 0, time.Local)
	writeTestImage(t, filepath.Join(in, "a.jpg"), mtime)
	writeTestImage(t, filepath.Join(in, "b.png"), mtime)

	originalA, err := os.ReadFile(filepath.Join(in, "a.jpg"))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}

	ops := plan.Plan(out, []string{"a.jpg", "b.png"})
	results, err := Execute(os.DirFS(in), ops, Options{
		Watermark: testWatermarkConfig(),
		Date:      capturedate.Options{FallbackMtime: true},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	for _, r := range results {
		if !r.Success {
			t.Fatalf("%s: expected success, got %v", r.Operation.SourcePath, r.Error)
		}
		if r.Date != "2022-01-15" {
			t.Fatalf("%s: unexpected date %q", r.Operation.SourcePath, r.Date)
		}
	}

	for _, name := range []string{"a_wm.jpg", "b_wm.png"} {
		stamped, err := imaging.Open(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("open output %s: %v", name, err)
		}
		if stamped.Bounds().Dx() != 120 || stamped.Bounds().Dy() != 80 {
			t.Fatalf("%s: canvas resized to %v", name, stamped.Bounds())
		}
	}

	// The original input is never touched.
	after, err := os.ReadFile(filepath.Join(in, "a.jpg"))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	if string(after) != string(originalA) {
		t.Fatalf("original file was modified")
	}
}

func TestExecute_StampsGIF(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "output")

	writeTestImage(t, filepath.Join(in, "a.gif"), time.Date(2022, 1, 15, 12, 0, 0, 0, time.Local))

	ops := plan.Plan(out, []string{"a.gif"})
	results, err := Execute(os.DirFS(in), ops, Options{
		Watermark: testWatermarkConfig(),
		Date:      capturedate.Options{FallbackMtime: true},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !results[0].Success {
		t.Fatalf("expected success, got %v", results[0].Error)
	}

	stamped, err := imaging.Open(filepath.Join(out, "a_wm.gif"))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if stamped.Bounds().Dx() != 120 || stamped.Bounds().Dy() != 80 {
		t.Fatalf("canvas resized to %v", stamped.Bounds())
	}
}

func TestExecute_ExplicitJPEGQuality(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "output")

	writeTestImage(t, filepath.Join(in, "a.jpg"), time.Date(2022, 1, 15, 12, 0, 0, 0, time.Local))

	ops := plan.Plan(out, []string{"a.jpg"})
	results, err := Execute(os.DirFS(in), ops, Options{
		Watermark: testWatermarkConfig(),
		Date:      capturedate.Options{FallbackMtime: true},
		Quality:   25,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !results[0].Success {
		t.Fatalf("expected success, got %v", results[0].Error)
	}

	if _, err := imaging.Open(filepath.Join(out, "a_wm.jpg")); err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
}

func TestExecute_SkipsFilesWithoutDate(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "output")

	writeTestImage(t, filepath.Join(in, "a.jpg"), time.Now())

	ops := plan.Plan(out, []string{"a.jpg"})
	results, err := Execute(os.DirFS(in), ops, Options{
		Watermark: testWatermarkConfig(),
		Date:      capturedate.Options{FallbackMtime: false},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if results[0].Success {
		t.Fatalf("expected skip, got success")
	}
	if !results[0].Skipped {
		t.Fatalf("expected Skipped, got error %v", results[0].Error)
	}

	if _, err := os.Stat(filepath.Join(out, "a_wm.jpg")); !os.IsNotExist(err) {
		t.Fatalf("skipped file must not appear in the output directory")
	}
}

func TestExecute_UndecodableFileContinuesBatch(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "output")

	if err := os.WriteFile(filepath.Join(in, "broken.jpg"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	writeTestImage(t, filepath.Join(in, "ok.jpg"), time.Date(2022, 1, 15, 12, 0, 0, 0, time.Local))

	ops := plan.Plan(out, []string{"broken.jpg", "ok.jpg"})
	results, err := Execute(os.DirFS(in), ops, Options{
		Watermark: testWatermarkConfig(),
		Date:      capturedate.Options{FallbackMtime: true},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if results[0].Error == nil || results[0].Success || results[0].Skipped {
		t.Fatalf("expected decode failure for broken.jpg, got %+v", results[0])
	}
	if !results[1].Success {
		t.Fatalf("expected ok.jpg to succeed, got %v", results[1].Error)
	}
}

func TestExecute_UncreatableOutputDirIsFatal(t *testing.T) {
	in := t.TempDir()
	tmp := t.TempDir()

	writeTestImage(t, filepath.Join(in, "a.jpg"), time.Now())

	// A regular file where the output directory should go.
	blocked := filepath.Join(tmp, "output")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	ops := plan.Plan(blocked, []string{"a.jpg"})
	_, err := Execute(os.DirFS(in), ops, Options{
		Watermark: testWatermarkConfig(),
		Date:      capturedate.Options{FallbackMtime: true},
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}
