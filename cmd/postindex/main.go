package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cachefs"
	"github.com/ancientlore/postindex/content"
	"github.com/ancientlore/postindex/web"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"
)

func main() {
	// Setup flags
	var (
		fRoot      = flag.String("root", "posts", "Content directory to index.")
		fConfig    = flag.String("config", content.ConfigFile, "Loader configuration file (TOML). A missing file means defaults.")
		fFeed      = flag.Bool("feed", false, "Include front matter in printed listings.")
		fWatch     = flag.Bool("watch", false, "Reload the listing whenever content changes.")
		fAddr      = flag.String("addr", "", "Serve the listing at /posts.json on this address, e.g. \":8080\".")
		fCache     = flag.Duration("cache", 0, "When serving, cache content files for about this long (0 disables). Listings may lag changes by as much.")
		fCacheSize = flag.Int64("cachesize", 10*1024*1024, "Size in bytes of the content file cache.")
	)
	flag.Parse()
	flagenv.Prefix = "POSTINDEX_"
	flagenv.Parse()

	// Read configuration
	cfgPath, err := filepath.Abs(*fConfig)
	if err != nil {
		log.Printf("Cannot resolve config path %q: %s", *fConfig, err)
		os.Exit(1)
	}
	cfg, err := content.ReadConfig(os.DirFS(filepath.Dir(cfgPath)), filepath.Base(cfgPath))
	if err != nil {
		log.Printf("Cannot load config: %s", err)
		os.Exit(1)
	}

	// Create the loader
	loader, err := newLoader(*fRoot, cfg, *fAddr != "" && *fCache > 0, *fCacheSize, *fCache)
	if err != nil {
		log.Printf("Cannot create loader for %q: %s", *fRoot, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One-shot mode
	if *fAddr == "" && !*fWatch {
		if err := printListing(os.Stdout, loader, *fFeed); err != nil {
			log.Print(err)
			os.Exit(3)
		}
		return
	}

	if *fWatch {
		reload := func() {
			if *fAddr != "" {
				posts, err := loader.Load()
				if err != nil {
					log.Printf("Reload failed: %s", err)
					return
				}
				log.Printf("Reloaded %d posts", len(posts))
				return
			}
			if err := printListing(os.Stdout, loader, *fFeed); err != nil {
				log.Printf("Reload failed: %s", err)
			}
		}
		reload()
		go func() {
			if err := watch(ctx, *fRoot, cfg.SkipHidden, reload); err != nil {
				log.Printf("Watcher stopped: %s", err)
				stop()
			}
		}()
		if *fAddr == "" {
			<-ctx.Done()
			log.Print("Goodbye.")
			return
		}
	}

	serve(ctx, *fAddr, loader, cfg)
}

// newLoader creates the loader for root. When cached is set, content files
// are read through a groupcache-backed file system that refreshes roughly
// every duration.
func newLoader(root string, cfg *content.Config, cached bool, size int64, duration time.Duration) (*content.Loader, error) {
	cache := content.NewCache()
	if !cached {
		return content.NewDir(root, cache, cfg)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	// Setup groupcache (with no peers)
	groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
	fsys := cachefs.New(os.DirFS(filepath.Dir(abs)), &cachefs.Config{GroupName: "postindex", SizeInBytes: size, Duration: duration})
	log.Printf("Caching content files for %s", duration)
	return content.New(fsys, filepath.Base(abs), cache, cfg)
}

// printListing loads the listing and writes it to w as indented JSON.
func printListing(w io.Writer, l *content.Loader, feed bool) error {
	var (
		v   any
		err error
	)
	if feed {
		v, err = l.LoadFeed()
	} else {
		v, err = l.Load()
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// serve runs the HTTP server until ctx is done.
func serve(ctx context.Context, addr string, l *content.Loader, cfg *content.Config) {
	mux := http.NewServeMux()
	mux.Handle("/posts.json", web.PostsHandler(l))
	handler := web.HeaderHandler(
		web.ExpiresHandler(
			gziphandler.GzipHandler(mux),
			time.Duration(cfg.Expires),
		),
		cfg.Headers)

	var srv = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	// Shut down gracefully on interrupt
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	log.Printf("Listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Printf("HTTP server: %v", err)
		os.Exit(4)
	}
	log.Print("Goodbye.")
}
