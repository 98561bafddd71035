package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/theysh/startpage/internal/app"
	"github.com/theysh/startpage/internal/browser"
	"github.com/theysh/startpage/internal/culler"
	"github.com/theysh/startpage/internal/engine"
	"github.com/theysh/startpage/internal/exporter"
	"github.com/theysh/startpage/internal/icon"
	"github.com/theysh/startpage/internal/importer"
	"github.com/theysh/startpage/internal/model"
	"github.com/theysh/startpage/internal/picker"
	"github.com/theysh/startpage/internal/search"
	"github.com/theysh/startpage/internal/storage"
	"github.com/theysh/startpage/internal/tui"
	"github.com/theysh/startpage/internal/web"
)

func main() {
	if len(os.Args) < 2 {
		runTUI()
		return
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "help", "--help", "-h":
		printHelp()
	case "serve":
		runServe()
	case "open":
		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Usage: startpage open <query>\n")
			os.Exit(1)
		}
		runOpen(strings.Join(args, " "))
	case "search":
		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Usage: startpage search <query...>\n")
			os.Exit(1)
		}
		runSearch(strings.Join(args, " "))
	case "engine":
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		runEngine(id)
	case "import":
		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "Usage: startpage import <file.html>\n")
			os.Exit(1)
		}
		runImport(args[0])
	case "export":
		var outputPath string
		if len(args) > 0 {
			outputPath = args[0]
		}
		runExport(outputPath)
	case "check":
		runCheck(len(args) > 0 && args[0] == "--remove-dead")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q. Run 'startpage help'.\n", os.Args[1])
		os.Exit(1)
	}
}

func printHelp() {
	help := `startpage - personal start page for the terminal and the browser

Usage:
  startpage                     Open the terminal start page
  startpage serve               Serve the start page over HTTP
  startpage open <query>        Fuzzy-find a shortcut and open it
  startpage search <query...>   Search the web with the selected engine
  startpage engine [id]         Show or select the search engine
  startpage import <file>       Import shortcuts from bookmark HTML
  startpage export [path]       Export shortcuts to bookmark HTML
  startpage check [--remove-dead]
                                Check shortcut URLs for dead links
  startpage help                Show this help

TUI Keybindings:
  h/j/k/l     Move around the grid
  Enter/o     Open shortcut
  s           Focus the web search bar
  Tab         Next search engine
  /           Filter shortcuts
  a/e/d       Add/edit/delete shortcut
  H/L         Move shortcut left/right
  Y           Copy URL to clipboard
  ?           Help overlay
  q           Quit

Configuration:
  ~/.config/startpage/config.json
  Environment (also read from ./.env):
    STARTPAGE_BACKEND          json | sqlite
    STARTPAGE_DATA_DIR         directory holding the store
    STARTPAGE_ADDR             listen address for 'serve'
    STARTPAGE_ALLOWED_ORIGINS  comma-separated CORS origins for /api
`
	fmt.Print(help)
}

// loadConfig reads the config file, then .env, then the process environment.
func loadConfig() *storage.Config {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := storage.ApplyEnvFile(cfg, ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading .env: %v\n", err)
		os.Exit(1)
	}
	storage.ApplyEnv(cfg, os.LookupEnv)
	return cfg
}

// openSession opens the configured store and loads the session from it.
// The returned store must be closed by the caller.
func openSession(cfg *storage.Config, logger *log.Logger) (storage.Store, *app.Session) {
	store, err := storage.OpenStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	return store, app.Open(store, logger)
}

func stderrLogger() *log.Logger {
	return log.New(os.Stderr, "startpage: ", 0)
}

// runTUI runs the full interactive start page.
func runTUI() {
	cfg := loadConfig()

	// The alternate screen owns the terminal, so log to a file instead.
	var logger *log.Logger
	_ = os.MkdirAll(cfg.DataDir, 0755)
	if f, err := tea.LogToFile(filepath.Join(cfg.DataDir, "startpage.log"), "startpage"); err == nil {
		defer f.Close()
		logger = log.Default()
	} else {
		logger = log.New(io.Discard, "", 0)
	}

	store, session := openSession(cfg, logger)
	defer store.Close()

	a := tui.NewApp(tui.AppParams{
		Session:     session,
		ClockFormat: cfg.ClockFormat,
	})
	p := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runServe serves the start page until interrupted.
func runServe() {
	cfg := loadConfig()
	store, session := openSession(cfg, log.Default())
	defer store.Close()

	handler := web.RegisterRoutes(web.ServerParams{
		Session: session,
		Icons: icon.NewResolver(icon.ResolverParams{
			FaviconService: cfg.FaviconService,
			Timeout:        cfg.CheckTimeout(),
		}),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := web.Serve(ctx, cfg.Addr, handler); err != nil {
		log.Printf("server error: %v", err)
		store.Close()
		os.Exit(1)
	}
}

// runOpen fuzzy-finds a shortcut by title and opens it.
func runOpen(query string) {
	cfg := loadConfig()
	store, session := openSession(cfg, stderrLogger())
	defer store.Close()

	results := search.FuzzySearchShortcuts(session.Links(), query)
	if len(results) == 0 {
		fmt.Printf("No shortcuts found for '%s'\n", query)
		return
	}

	var selected *model.Shortcut
	if len(results) == 1 {
		selected = &results[0].Shortcut
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(results, query)
		finalModel, err := tea.NewProgram(p).Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}
		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedShortcut()
	}

	if selected == nil {
		return
	}
	openInBrowser(selected.URL)
}

// runSearch opens the selected engine's result page for query.
func runSearch(query string) {
	cfg := loadConfig()
	store, session := openSession(cfg, stderrLogger())
	defer store.Close()

	target, err := session.SearchURL(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(target)
	openInBrowser(target)
}

// runEngine prints the engine list, or selects id when given.
func runEngine(id string) {
	cfg := loadConfig()
	store, session := openSession(cfg, stderrLogger())
	defer store.Close()

	if id != "" {
		if _, ok := engine.Lookup(engine.ID(id)); !ok {
			fmt.Fprintf(os.Stderr, "Unknown engine %q (known: %s)\n", id, joinIDs(engine.IDs()))
			store.Close()
			os.Exit(1)
		}
		session.SelectEngine(engine.ID(id))
	}

	current := session.Engine()
	for _, c := range engine.All() {
		marker := "  "
		if c.ID == current.ID {
			marker = "* "
		}
		fmt.Printf("%s%-7s %s\n", marker, c.ID, c.URL)
	}
}

func joinIDs(ids []engine.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

// runImport merges shortcuts from a bookmark HTML file, skipping known URLs.
func runImport(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	shortcuts, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	store, session := openSession(cfg, stderrLogger())
	defer store.Close()

	added, skipped := session.ImportLinks(shortcuts)

	fmt.Printf("Imported %d shortcuts", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport writes all shortcuts to a bookmark HTML file.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := loadConfig()
	store, session := openSession(cfg, stderrLogger())
	defer store.Close()

	links := session.Links()
	if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(links)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("Exported %d shortcuts to %s\n", len(links), outputPath)
}

// runCheck probes every shortcut URL and lists the ones that failed.
// With removeDead, shortcuts answering 404/410 are deleted.
func runCheck(removeDead bool) {
	cfg := loadConfig()
	store, session := openSession(cfg, stderrLogger())
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := culler.Check(ctx, session.Links(), culler.Options{
		Concurrency:    cfg.CheckConcurrency,
		Timeout:        cfg.CheckTimeout(),
		ExcludeDomains: cfg.CheckExcludeDomains,
		OnProgress: func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
		},
	})
	fmt.Fprintln(os.Stderr)

	bad := culler.Unhealthy(results)
	if len(bad) == 0 {
		fmt.Printf("All %d shortcuts reachable (%s)\n", len(results), time.Since(start).Round(time.Millisecond))
		return
	}

	removed := 0
	for _, r := range bad {
		detail := r.Reason
		if r.StatusCode != 0 {
			detail = fmt.Sprintf("%d %s", r.StatusCode, r.Reason)
		}
		fmt.Printf("%-12s %-20s %s  %s\n", r.Status, r.Shortcut.Title, r.Shortcut.URL, strings.TrimSpace(detail))

		if removeDead && r.Status == culler.Dead && session.RemoveLink(r.Shortcut.ID) {
			removed++
		}
	}

	fmt.Printf("%d of %d shortcuts need attention", len(bad), len(results))
	if removed > 0 {
		fmt.Printf(", %d removed", removed)
	}
	fmt.Println()
}

func openInBrowser(url string) {
	if err := browser.Open(url); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
		os.Exit(1)
	}
}
