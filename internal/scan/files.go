// Package scan finds photo files under a directory tree for manifest
// building.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/maruel/natural"
)

// LoggerFunc receives progress and warning messages during a scan.
type LoggerFunc func(message string)

// FileItem is one photo file found by a scan.
type FileItem struct {
	Path string
}

// FileItems is a slice of FileItem.
type FileItems []FileItem

// IsImage checks if a file name has a supported image extension.
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return true
	default:
		return false
	}
}

// Run walks dir and sends every non-empty image file on the returned
// channel. The channel is closed when the walk finishes.
func Run(dir string, logger LoggerFunc) <-chan FileItem {
	items := make(chan FileItem)

	go func() {
		defer close(items)
		err := godirwalk.Walk(dir, &godirwalk.Options{
			Unsorted: true,
			Callback: func(path string, de *godirwalk.Dirent) error {
				if de.IsDir() || !IsImage(path) {
					return nil
				}
				fi, err := os.Stat(path)
				if err != nil {
					if logger != nil {
						logger("skipping " + path + ": " + err.Error())
					}
					return nil
				}
				if fi.Size() == 0 {
					return nil
				}
				abs, err := filepath.Abs(path)
				if err != nil {
					abs = path
				}
				items <- FileItem{Path: abs}
				return nil
			},
			ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
				if logger != nil {
					logger("scan error at " + path + ": " + err.Error())
				}
				return godirwalk.SkipNode
			},
		})
		if err != nil && logger != nil {
			logger("scan of " + dir + " failed: " + err.Error())
		}
	}()

	return items
}

// Sorted returns a copy of items in natural path order, so file10.jpg
// follows file2.jpg.
func Sorted(items FileItems) FileItems {
	result := make(FileItems, len(items))
	copy(result, items)
	sort.Slice(result, func(i, j int) bool {
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}
