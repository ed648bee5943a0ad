package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeCover(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 24, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRunHideAndDig(t *testing.T) {
	t.Setenv("STEG_KEY", "")
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	writeCover(t, cover)
	stego := filepath.Join(dir, "stego.png")
	recovered := filepath.Join(dir, "recovered.txt")

	if code := run([]string{"-img", cover, "-text", "hello", "-key", "k", "-out", stego, "-v", "none", "-config", ""}, io.Discard); code != 0 {
		t.Fatalf("hide exited with %d", code)
	}
	if code := run([]string{"-dig", "-img", stego, "-key", "k", "-out", recovered, "-v", "none", "-config", ""}, io.Discard); code != 0 {
		t.Fatalf("dig exited with %d", code)
	}
	got, err := os.ReadFile(recovered)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("recovered %q", got)
	}
}

func TestRunKeyFromConfigFile(t *testing.T) {
	t.Setenv("STEG_KEY", "")
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	writeCover(t, cover)
	cfgPath := filepath.Join(dir, "steg.yml")
	if err := os.WriteFile(cfgPath, []byte("key: from-config\noutput: none\nout_dir: "+dir+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := run([]string{"-img", cover, "-text", "configured", "-config", cfgPath}, io.Discard); code != 0 {
		t.Fatalf("hide exited with %d", code)
	}
	recovered := filepath.Join(dir, "recovered.txt")
	stego := filepath.Join(dir, "stego_cover.png")
	if code := run([]string{"-dig", "-img", stego, "-out", recovered, "-config", cfgPath}, io.Discard); code != 0 {
		t.Fatalf("dig exited with %d", code)
	}
	got, err := os.ReadFile(recovered)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "configured" {
		t.Fatalf("recovered %q", got)
	}
}

func TestRunUsageErrors(t *testing.T) {
	t.Setenv("STEG_ALGO", "")
	if code := run([]string{"-config", ""}, io.Discard); code != 2 {
		t.Errorf("missing -img exited with %d, want 2", code)
	}
	if code := run([]string{"-img", "x.png", "-algo", "zigzag", "-config", ""}, io.Discard); code != 2 {
		t.Errorf("unknown algorithm exited with %d, want 2", code)
	}
	if code := run([]string{"-version"}, io.Discard); code != 0 {
		t.Errorf("-version exited with %d", code)
	}
}

func TestRunCapacityFailure(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	writeCover(t, cover)
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	if code := run([]string{"-img", cover, "-text", string(long), "-out", filepath.Join(dir, "o.png"), "-v", "none", "-config", ""}, io.Discard); code != 1 {
		t.Fatalf("exited with %d, want 1", code)
	}
}

func TestRunDigPrintsOnlyTheMessage(t *testing.T) {
	t.Setenv("STEG_KEY", "")
	t.Setenv("STEG_OUTPUT", "")
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	writeCover(t, cover)
	stego := filepath.Join(dir, "stego.png")

	if code := run([]string{"-img", cover, "-text", "quiet please", "-key", "k", "-out", stego, "-config", ""}, io.Discard); code != 0 {
		t.Fatalf("hide exited with %d", code)
	}

	var stdout bytes.Buffer
	if code := run([]string{"-dig", "-img", stego, "-key", "k", "-v", "info", "-config", ""}, &stdout); code != 0 {
		t.Fatalf("dig exited with %d", code)
	}
	if got := stdout.String(); got != "quiet please\n" {
		t.Fatalf("stdout = %q, want only the recovered message", got)
	}
}

func TestRunExplicitEmptyKey(t *testing.T) {
	t.Setenv("STEG_KEY", "")
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	writeCover(t, cover)
	cfgPath := filepath.Join(dir, "steg.yml")
	if err := os.WriteFile(cfgPath, []byte("key: from-config\noutput: none\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stego := filepath.Join(dir, "stego.png")

	if code := run([]string{"-img", cover, "-text", "no key", "-key=", "-out", stego, "-config", cfgPath}, io.Discard); code != 0 {
		t.Fatalf("hide exited with %d", code)
	}

	var withEmpty, withConfig bytes.Buffer
	if code := run([]string{"-dig", "-img", stego, "-key=", "-config", cfgPath}, &withEmpty); code != 0 {
		t.Fatalf("dig exited with %d", code)
	}
	if got := withEmpty.String(); got != "no key\n" {
		t.Fatalf("explicit empty key recovered %q", got)
	}
	if code := run([]string{"-dig", "-img", stego, "-config", cfgPath}, &withConfig); code != 0 {
		t.Fatalf("dig exited with %d", code)
	}
	if withConfig.String() == "no key\n" {
		t.Fatal("omitting -key should fall back to the configured key")
	}
}
