// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nithit136/vwm-semantic-related/design"
)

func writePNG(t *testing.T, root, path string) {
	t.Helper()
	fp := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(fp)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAll(t *testing.T) {
	root := t.TempDir()
	p1 := design.StimPath(design.Size2, "dog", "obj1", design.S1)
	p2 := design.StimPath(design.Size2, "dog", "obj1", design.S2)
	missing := design.StimPath(design.Size6, "car", "obj5", design.S1)
	writePNG(t, root, p1)
	writePNG(t, root, p2)

	ac := NewCache(root)
	ac.LoadAll([]string{p1, p2, missing})
	if len(ac.Images) != 2 {
		t.Errorf("loaded %d images, want 2", len(ac.Images))
	}
	if _, ok := ac.Image(p1); !ok {
		t.Errorf("image %s not in cache", p1)
	}
	if len(ac.Failed) != 1 || ac.Failed[0] != missing {
		t.Errorf("failed list %v, want just %s", ac.Failed, missing)
	}
	if ac.Bytes <= 0 {
		t.Errorf("byte count %d", ac.Bytes)
	}
	rep := ac.SizeReport()
	if !strings.Contains(rep, "2 images") || !strings.Contains(rep, "1 failed") {
		t.Errorf("size report %q", rep)
	}
}

func TestLoadUndecodable(t *testing.T) {
	root := t.TempDir()
	p := design.StimPath(design.Size2, "dog", "obj2", design.S1)
	fp := filepath.Join(root, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fp, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	ac := NewCache(root)
	ac.LoadAll([]string{p})
	if len(ac.Failed) != 1 {
		t.Errorf("failed list %v", ac.Failed)
	}
	if len(ac.Images) != 0 {
		t.Errorf("cached %d images from bad data", len(ac.Images))
	}
}

func TestAllStimPathsLoadable(t *testing.T) {
	// spot-check the enumerated path set round-trips through the cache
	root := t.TempDir()
	paths := design.AllStimPaths()
	for _, p := range paths[:6] {
		writePNG(t, root, p)
	}
	ac := NewCache(root)
	ac.LoadAll(paths)
	if len(ac.Images) != 6 {
		t.Errorf("loaded %d images, want 6", len(ac.Images))
	}
	if len(ac.Failed) != len(paths)-6 {
		t.Errorf("failed %d, want %d", len(ac.Failed), len(paths)-6)
	}
}
