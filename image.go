package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type ImagePath struct {
	Path        string // file path, or archive:entry for archive members
	ArchivePath string // empty for regular files
	EntryPath   string // path within the archive
}

// Name returns the short name shown in the overlay title.
func (p ImagePath) Name() string {
	if p.EntryPath != "" {
		return filepath.Base(p.EntryPath)
	}
	return filepath.Base(p.Path)
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// directionOf classifies a move from prev to next.
func directionOf(next, prev int) NavigationDirection {
	switch next - prev {
	case 1:
		return NavigationForward
	case -1:
		return NavigationBackward
	default:
		return NavigationJump
	}
}

// preloadIndices returns the indices to warm around current, nearest first.
func preloadIndices(current int, direction NavigationDirection, count, maxPreload int) []int {
	var indices []int
	add := func(idx int) {
		if idx >= 0 && idx < count {
			indices = append(indices, idx)
		}
	}
	switch direction {
	case NavigationForward:
		for i := 1; i <= maxPreload; i++ {
			add(current + i)
		}
	case NavigationBackward:
		for i := 1; i <= maxPreload; i++ {
			add(current - i)
		}
	case NavigationJump:
		for i := 1; i <= maxPreload/2; i++ {
			add(current + i)
			add(current - i)
		}
	}
	return indices
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	QueueSize     int
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

type preloadRequest struct {
	index     int
	direction NavigationDirection
}

// cachedImage is a decoded image or the fallback shown for a failed load.
type cachedImage struct {
	img *ebiten.Image
	err error
}

// ImageManager loads and caches the full-size images of the navigable group.
type ImageManager interface {
	GetImage(idx int) (*ebiten.Image, error)
	SetPaths(paths []ImagePath)
	GetPathsCount() int
	StartPreload(currentIdx int, direction NavigationDirection)
	StopPreload()
	GetPreloadStats() PreloadStats
}

// DefaultImageManager implements ImageManager with an LRU cache and a
// background preload worker.
type DefaultImageManager struct {
	mu    sync.RWMutex
	paths []ImagePath
	cache *lru.Cache[string, cachedImage]

	requests   chan preloadRequest
	ctx        context.Context
	cancel     context.CancelFunc
	maxPreload int
	enabled    bool

	statsMu sync.Mutex
	stats   PreloadStats
}

// NewImageManager creates a DefaultImageManager. When preloadEnabled is set a
// worker goroutine runs until StopPreload.
func NewImageManager(cacheSize, preloadCount int, preloadEnabled bool) *DefaultImageManager {
	onEvict := func(_ string, c cachedImage) {
		if c.img != nil {
			c.img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, cachedImage](cacheSize, onEvict)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache of size %d: %v", cacheSize, err)
		cache, _ = lru.NewWithEvict[string, cachedImage](16, onEvict)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &DefaultImageManager{
		cache:      cache,
		requests:   make(chan preloadRequest, 1),
		ctx:        ctx,
		cancel:     cancel,
		maxPreload: preloadCount,
		enabled:    preloadEnabled,
	}
	if preloadEnabled {
		go m.worker()
	}
	return m
}

func (m *DefaultImageManager) SetPaths(paths []ImagePath) {
	m.mu.Lock()
	m.paths = paths
	m.mu.Unlock()
	// keys are paths, so the cache survives reordering
	debugLog("SetPaths: %d paths, cache preserved (%d items)", len(paths), m.cache.Len())
}

func (m *DefaultImageManager) GetPathsCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.paths)
}

func (m *DefaultImageManager) getPath(idx int) (ImagePath, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.paths) {
		return ImagePath{}, false
	}
	return m.paths[idx], true
}

// GetImage returns the image at idx. A failed load returns a fallback image
// together with the error.
func (m *DefaultImageManager) GetImage(idx int) (*ebiten.Image, error) {
	p, ok := m.getPath(idx)
	if !ok {
		return nil, fmt.Errorf("image index %d out of range", idx)
	}
	if c, ok := m.cache.Get(p.Path); ok {
		debugLog("Cache HIT: %s (cache: %d items)", p.Path, m.cache.Len())
		return c.img, c.err
	}

	c := m.load(p)
	if c.err != nil {
		log.Printf("Error: Failed to load image [%d/%d] %s: %v", idx+1, m.GetPathsCount(), p.Path, c.err)
	}
	m.cache.Add(p.Path, c)
	debugLog("Cache MISS: %s (cache: %d items)", p.Path, m.cache.Len())
	return c.img, c.err
}

func (m *DefaultImageManager) load(p ImagePath) cachedImage {
	img, err := decodeImage(p)
	if err != nil {
		return cachedImage{img: CreateFallbackImage(400, 300, p.Path, err.Error()), err: err}
	}
	return cachedImage{img: ebiten.NewImageFromImage(img)}
}

// StartPreload replaces any pending request with one around currentIdx.
func (m *DefaultImageManager) StartPreload(currentIdx int, direction NavigationDirection) {
	if !m.enabled {
		return
	}
	select {
	case <-m.requests:
	default:
	}
	select {
	case m.requests <- preloadRequest{index: currentIdx, direction: direction}:
	default:
		debugLog("Preload request channel full, skipping")
	}
}

func (m *DefaultImageManager) StopPreload() {
	m.cancel()
}

func (m *DefaultImageManager) GetPreloadStats() PreloadStats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	s := m.stats
	s.QueueSize = len(m.requests)
	return s
}

func (m *DefaultImageManager) worker() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case req := <-m.requests:
			m.statsMu.Lock()
			m.stats.LastDirection = req.direction
			m.statsMu.Unlock()

			for _, idx := range preloadIndices(req.index, req.direction, m.GetPathsCount(), m.maxPreload) {
				if m.ctx.Err() != nil {
					return
				}
				m.preload(idx)
			}
		}
	}
}

func (m *DefaultImageManager) preload(idx int) {
	p, ok := m.getPath(idx)
	if !ok || m.cache.Contains(p.Path) {
		return
	}
	c := m.load(p)
	m.cache.Add(p.Path, c)

	m.statsMu.Lock()
	if c.err != nil {
		m.stats.FailedCount++
	} else {
		m.stats.LoadedCount++
	}
	m.statsMu.Unlock()
	debugLog("Preloaded [%d] %s (cache: %d items, err: %v)", idx+1, p.Path, m.cache.Len(), c.err)
}

// decodeImage reads and decodes a file or archive member.
func decodeImage(p ImagePath) (image.Image, error) {
	var data []byte
	var err error
	if p.ArchivePath == "" {
		data, err = os.ReadFile(p.Path)
	} else {
		data, err = readArchiveEntry(p.ArchivePath, p.EntryPath)
	}
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p.Path, err)
	}
	return img, nil
}

// makeThumbnail scales img to fit a size x size box, never enlarging.
func makeThumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || (w <= size && h <= size) {
		return img
	}
	tw, th := size, size
	if w >= h {
		th = max(1, h*size/w)
	} else {
		tw = max(1, w*size/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Archive access

func readArchiveEntry(archivePath, entryPath string) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(archivePath)); ext {
	case ".zip":
		return readZipEntry(archivePath, entryPath)
	case ".rar":
		return readRarEntry(archivePath, entryPath)
	case ".7z":
		return read7zEntry(archivePath, entryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// listArchive returns the image members of an archive in entry order.
func listArchive(archivePath string) ([]ImagePath, error) {
	var names []string
	switch ext := strings.ToLower(filepath.Ext(archivePath)); ext {
	case ".zip":
		r, err := zip.OpenReader(archivePath)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				names = append(names, f.Name)
			}
		}
	case ".rar":
		f, err := os.Open(archivePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r, err := rardecode.NewReader(f, "")
		if err != nil {
			return nil, err
		}
		for {
			header, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			if !header.IsDir {
				names = append(names, header.Name)
			}
		}
	case ".7z":
		r, err := sevenzip.OpenReader(archivePath)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				names = append(names, f.Name)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}

	var images []ImagePath
	for _, name := range names {
		if isSupportedExt(name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + name,
				ArchivePath: archivePath,
				EntryPath:   name,
			})
		}
	}
	return images, nil
}

// File collection

// collectImages expands files, directories and archives into image paths.
// Each directory and archive is sorted on its own; argument order is kept.
func collectImages(args []string, sortMethod int) ([]ImagePath, error) {
	strategy := GetSortStrategy(sortMethod)
	var list []ImagePath

	addArchive := func(path string, into *[]ImagePath) {
		images, err := listArchive(path)
		if err != nil {
			log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
			return
		}
		*into = append(*into, strategy.Sort(images)...)
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", p, err)
		}
		if !info.IsDir() {
			switch {
			case isSupportedExt(p):
				list = append(list, ImagePath{Path: p})
			case isArchiveExt(p):
				addArchive(p, &list)
			}
			continue
		}

		var dirImages []ImagePath
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			switch {
			case isSupportedExt(path):
				dirImages = append(dirImages, ImagePath{Path: path})
			case isArchiveExt(path):
				addArchive(path, &dirImages)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
		list = append(list, strategy.Sort(dirImages)...)
	}
	return list, nil
}
