package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"fynebox/internal/fetch"
	"fynebox/internal/manifest"
)

var (
	outFlag   string
	addrFlag  string
	watchFlag bool
)

func cliLogger(msg string) {
	klog.Infof("[fynebox-cli] %s", msg)
}

// MetadataFactory produces the metadata reader a build uses, plus its
// cleanup function. Tests inject a factory that does not shell out to
// exiftool.
type MetadataFactory func() (manifest.MetadataFunc, func() error, error)

// NewRootCmd creates the root command for the CLI application. The
// metadata factory is injected so tests can avoid the exiftool
// dependency.
func NewRootCmd(newMetadata MetadataFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fynebox-cli",
		Short: "Fynebox CLI - build, inspect and serve photo galleries",
	}

	buildCmd := &cobra.Command{
		Use:   "build [directory]",
		Short: "Build a gallery from a directory of images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			out, err := filepath.Abs(outFlag)
			if err != nil {
				return err
			}
			n, err := runBuild(newMetadata, dir, out)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s with %d photos\n", filepath.Join(out, manifest.FileName), n)
			return nil
		},
	}
	buildCmd.Flags().StringVar(&outFlag, "out", "gallery", "output directory for the gallery")
	rootCmd.AddCommand(buildCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect [manifest]",
		Short: "Show the photos a manifest resolves to, in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := manifest.NewLoader(fetch.New())
			cat, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			if cat.Size() == 0 {
				cmd.Println("No photos in manifest.")
				return nil
			}
			cmd.Printf("%d photos:\n", cat.Size())
			for i := 0; i < cat.Size(); i++ {
				p, err := cat.At(i)
				if err != nil {
					return err
				}
				cmd.Printf("%3d  %s  %dx%d  %s\n", i, p.Filename, p.Width, p.Height, p.CaptionDate())
			}
			return nil
		},
	}
	rootCmd.AddCommand(inspectCmd)

	serveCmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Build a gallery from a directory of images and serve it over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			out, err := filepath.Abs(outFlag)
			if err != nil {
				return err
			}
			if _, err := runBuild(newMetadata, dir, out); err != nil {
				return err
			}
			if watchFlag {
				stop, err := watchAndRebuild(newMetadata, dir, out)
				if err != nil {
					return err
				}
				defer stop()
			}
			klog.Infof("serving %s on %s", out, addrFlag)
			return http.ListenAndServe(addrFlag, newGalleryRouter(out))
		},
	}
	serveCmd.Flags().StringVar(&outFlag, "out", "gallery", "output directory for the gallery")
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&watchFlag, "watch", false, "rebuild when the source directory changes")
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

func runBuild(newMetadata MetadataFactory, dir, out string) (int, error) {
	meta, cleanup, err := newMetadata()
	if err != nil {
		return 0, fmt.Errorf("initializing metadata reader: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			klog.Warningf("closing metadata reader: %v", err)
		}
	}()
	return manifest.NewBuilder(meta, cliLogger).Build(dir, out)
}

// newGalleryRouter serves a built gallery directory: the manifest at
// its root plus the thumbnail and full-size namespaces.
func newGalleryRouter(dir string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	fs := http.FileServer(http.Dir(dir))
	r.Get("/"+manifest.FileName, fs.ServeHTTP)
	r.Get("/"+manifest.ThumbNamespace+"/*", fs.ServeHTTP)
	r.Get("/"+manifest.FullNamespace+"/*", fs.ServeHTTP)
	return r
}

// watchAndRebuild rebuilds the gallery when the source directory
// changes. Bursts of events collapse into one rebuild.
func watchAndRebuild(newMetadata MetadataFactory, dir, out string) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		var pending *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(500*time.Millisecond, func() {
					n, err := runBuild(newMetadata, dir, out)
					if err != nil {
						klog.Errorf("rebuild after change: %v", err)
						return
					}
					klog.Infof("rebuilt gallery, %d photos", n)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				klog.Warningf("watch error: %v", err)
			}
		}
	}()
	return watcher.Close, nil
}

func main() {
	klog.InitFlags(nil)
	rootCmd := NewRootCmd(manifest.NewExifMetadata)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
