package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/recera/cascada/cmd/cascada/internal/config"
	"github.com/recera/cascada/pkg/live"
)

// newDevCommand creates the `cascada dev` command.
func newDevCommand() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Watch the manifest and serve the stylesheet with live reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to cascada.yml")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port override (defaults to dev.port from config)")
	return cmd
}

// devServer regenerates the stylesheet on file changes and pushes reload
// events to connected browsers.
type devServer struct {
	log        zerolog.Logger
	configPath string
	reload     *live.Server

	mu  sync.RWMutex
	css string
}

func runDev(configPath string, portOverride int) error {
	console := zerolog.NewConsoleWriter()
	console.Out = os.Stderr
	console.TimeFormat = time.Kitchen
	log := zerolog.New(console).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	port := cfg.Dev.Port
	if portOverride != 0 {
		port = portOverride
	}

	s := &devServer{
		log:        log,
		configPath: configPath,
		reload:     live.NewServer(),
	}
	if err := s.regenerate(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directories, not the files: editors replace files on save
	// and a watch on the old inode goes stale.
	watched := map[string]bool{}
	for _, p := range []string{configPath, cfg.Manifest} {
		dir := filepath.Dir(p)
		if !watched[dir] {
			watched[dir] = true
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
	}
	go s.watch(watcher, configPath, cfg.Manifest)

	mux := http.NewServeMux()
	mux.HandleFunc("/styles.css", s.handleStylesheet)
	mux.Handle("/cascada/live", s.reload)
	mux.HandleFunc("/", s.handleIndex)

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", "http://localhost"+addr).Msg("dev server listening")
	return http.ListenAndServe(addr, mux)
}

// watch debounces change events and regenerates once per burst.
func (s *devServer) watch(watcher *fsnotify.Watcher, paths ...string) {
	relevant := make(map[string]bool, len(paths))
	for _, p := range paths {
		relevant[filepath.Clean(p)] = true
	}

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevant[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(100*time.Millisecond, func() {
				if err := s.regenerate(); err != nil {
					s.log.Error().Err(err).Msg("regeneration failed")
					return
				}
				s.reload.Broadcast(live.Event{Kind: "reload", Path: "/styles.css"})
				s.log.Info().Int("clients", s.reload.ClientCount()).Msg("stylesheet reloaded")
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (s *devServer) regenerate() error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	manifestBytes, err := os.ReadFile(cfg.Manifest)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	css, classes, err := generate(cfg, manifestBytes)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.css = css
	s.mu.Unlock()

	s.log.Info().Int("classes", len(classes)).Str("manifest", cfg.Manifest).Msg("stylesheet generated")
	return nil
}

func (s *devServer) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	css := s.css
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprint(w, css)
}

func (s *devServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

// indexPage previews the generated stylesheet and reconnects the reload
// socket when the dev server restarts.
const indexPage = `<!DOCTYPE html>
<html>
<head>
  <title>cascada dev</title>
  <link id="cascada-styles" rel="stylesheet" href="/styles.css">
</head>
<body>
  <h1>cascada dev server</h1>
  <p>Generated stylesheet: <a href="/styles.css">/styles.css</a></p>
  <script>
    function connect() {
      const ws = new WebSocket("ws://" + location.host + "/cascada/live");
      ws.onmessage = (msg) => {
        const ev = JSON.parse(msg.data);
        if (ev.kind === "reload") {
          const link = document.getElementById("cascada-styles");
          link.href = ev.path + "?t=" + Date.now();
        }
      };
      ws.onclose = () => setTimeout(connect, 1000);
    }
    connect();
  </script>
</body>
</html>
`
