// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets preloads the stimulus images from disk into memory so
// trial displays never block on file IO mid-session.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/c2h5oh/datasize"
)

// Cache holds the decoded stimulus images, keyed by their asset path
// relative to Root.  Paths that failed to load are listed in Failed;
// the corresponding display slot is simply left blank at trial time.
type Cache struct {
	Root   string                 `desc:"directory the asset paths are resolved against"`
	Images map[string]image.Image `view:"-" desc:"decoded images by asset path"`
	Failed []string               `desc:"asset paths that could not be loaded"`
	Bytes  int64                  `inactive:"+" desc:"total bytes of encoded image data read"`
}

func NewCache(root string) *Cache {
	return &Cache{Root: root, Images: make(map[string]image.Image)}
}

// LoadAll attempts to load every given asset path.  A missing or
// undecodable file is recorded in Failed and does not stop the load:
// the session runs with whatever assets resolved.
func (ac *Cache) LoadAll(paths []string) {
	for _, p := range paths {
		if err := ac.load(p); err != nil {
			ac.Failed = append(ac.Failed, p)
		}
	}
	sort.Strings(ac.Failed)
}

func (ac *Cache) load(path string) error {
	fp := filepath.Join(ac.Root, filepath.FromSlash(path))
	f, err := os.Open(fp)
	if err != nil {
		return err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	im, _, err := image.Decode(f)
	if err != nil {
		return err
	}
	ac.Images[path] = im
	ac.Bytes += fi.Size()
	return nil
}

// Image returns the decoded image for the given asset path, if loaded.
func (ac *Cache) Image(path string) (image.Image, bool) {
	im, ok := ac.Images[path]
	return im, ok
}

// SizeReport summarizes the cache for logging.
func (ac *Cache) SizeReport() string {
	return fmt.Sprintf("assets: %d images (%s), %d failed",
		len(ac.Images), datasize.ByteSize(ac.Bytes).HumanReadable(), len(ac.Failed))
}
