package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/otiai10/copy"
	"k8s.io/klog/v2"

	"fynebox/internal/scan"
)

// Metadata is what the builder needs to know about one photo file.
type Metadata struct {
	Width    int
	Height   int
	Captured time.Time
}

// MetadataFunc extracts metadata for a photo file.
type MetadataFunc func(path string) (Metadata, error)

// Builder assembles a gallery output tree from a directory of photos:
// outDir/photos.json plus copies of each photo under the full/ and
// thumbs/ namespaces. Files are copied as-is; this tool does not resize.
type Builder struct {
	meta   MetadataFunc
	logger scan.LoggerFunc
}

// NewBuilder creates a Builder using the given metadata extractor.
func NewBuilder(meta MetadataFunc, logger scan.LoggerFunc) *Builder {
	if logger == nil {
		logger = func(string) {}
	}
	return &Builder{meta: meta, logger: logger}
}

// Build scans inDir and writes the manifest and resource namespaces to
// outDir. It returns the number of photos in the written manifest.
func (b *Builder) Build(inDir, outDir string) (int, error) {
	var items scan.FileItems
	for item := range scan.Run(inDir, b.logger) {
		items = append(items, item)
	}
	// Natural path order fixes the manifest order for photos that end
	// up with the same capture date.
	items = scan.Sorted(items)

	for _, ns := range []string{FullNamespace, ThumbNamespace} {
		if err := os.MkdirAll(filepath.Join(outDir, ns), 0755); err != nil {
			return 0, fmt.Errorf("create %s namespace: %w", ns, err)
		}
	}

	seen := map[string]bool{}
	var entries []Entry
	for _, item := range items {
		name := filepath.Base(item.Path)
		if seen[name] {
			b.logger(fmt.Sprintf("skipping %s: duplicate filename %s", item.Path, name))
			continue
		}

		m, err := b.meta(item.Path)
		if err != nil {
			b.logger(fmt.Sprintf("skipping %s: %v", item.Path, err))
			continue
		}
		if m.Width <= 0 || m.Height <= 0 {
			b.logger(fmt.Sprintf("skipping %s: bad dimensions %dx%d", item.Path, m.Width, m.Height))
			continue
		}

		if err := copy.Copy(item.Path, filepath.Join(outDir, FullNamespace, name)); err != nil {
			return 0, fmt.Errorf("copy %s to full namespace: %w", item.Path, err)
		}
		if err := copy.Copy(item.Path, filepath.Join(outDir, ThumbNamespace, name)); err != nil {
			return 0, fmt.Errorf("copy %s to thumbs namespace: %w", item.Path, err)
		}

		seen[name] = true
		entries = append(entries, Entry{
			Filename:     name,
			Width:        m.Width,
			Height:       m.Height,
			DateCaptured: m.Captured.Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(Document{Photos: entries}, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode manifest: %w", err)
	}
	manifestPath := filepath.Join(outDir, FileName)
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return 0, fmt.Errorf("write %s: %w", manifestPath, err)
	}
	klog.Infof("wrote %s with %d photos", manifestPath, len(entries))
	return len(entries), nil
}

// NewExifMetadata returns a MetadataFunc backed by exiftool, plus a
// close function for the underlying process. Photos without a usable
// DateTimeOriginal fall back to the file modification time.
func NewExifMetadata() (MetadataFunc, func() error, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, nil, fmt.Errorf("start exiftool: %w", err)
	}

	meta := func(path string) (Metadata, error) {
		fis := et.ExtractMetadata(path)
		if len(fis) == 0 {
			return Metadata{}, fmt.Errorf("no metadata for %s", path)
		}
		fi := fis[0]
		if fi.Err != nil {
			return Metadata{}, fmt.Errorf("extract fail for %q: %w", path, fi.Err)
		}

		m := Metadata{}
		w, err := fi.GetInt("ImageWidth")
		if err != nil {
			return m, fmt.Errorf("get ImageWidth: %w", err)
		}
		h, err := fi.GetInt("ImageHeight")
		if err != nil {
			return m, fmt.Errorf("get ImageHeight: %w", err)
		}
		m.Width, m.Height = int(w), int(h)

		raw, err := fi.GetString("DateTimeOriginal")
		if err == nil {
			if captured, perr := ParseDate(raw); perr == nil {
				m.Captured = captured
				return m, nil
			}
			klog.V(1).Infof("unusable DateTimeOriginal %q for %s", raw, path)
		}
		st, err := os.Stat(path)
		if err != nil {
			return m, fmt.Errorf("stat %s: %w", path, err)
		}
		m.Captured = st.ModTime()
		return m, nil
	}

	return meta, et.Close, nil
}
