package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"kosehub/adapter/postgres"
	"kosehub/adapter/source"
	"kosehub/adapter/web"
	"kosehub/app"
	"kosehub/cli/control"
	"kosehub/domain"
	"kosehub/feed"
	"kosehub/internal/config"
	"kosehub/internal/db"
	"kosehub/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "--help", "-h", "help":
		printHelp()
		return
	case "discover":
		err = cmdDiscover(args)
	case "fetch":
		err = cmdFetch(args)
	case "watch":
		err = cmdWatch(args)
	case "generate":
		err = cmdGenerate(args)
	case "authors":
		err = cmdAuthors(args)
	case "articles":
		err = cmdArticles(args)
	case "set-interval":
		err = cmdSetInterval(args)
	case "run-now":
		err = cmdRunNow(args)
	default:
		fmt.Printf("unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`Usage:
  kosehub COMMAND [OPTIONS]

Commands:
   discover        scrape the configured listing pages and record authors
   fetch           run one ingest pass over all known authors
   watch           start the background process that ingests on an interval
   generate        write per-author RSS feeds, index.opml and index.html
   authors         list known authors [--parser KIND]
   articles        show stored articles (--author NAME [--num N])
   set-interval    change the running watcher's interval (e.g. 2h)
   run-now         ask the running watcher for an immediate pass
   help            show this help
`)
}

// deps bundles what every store-touching command sets up.
type deps struct {
	cfg      config.Config
	sources  *config.Sources
	log      *zap.Logger
	database *sql.DB
	repo     *postgres.Repository
	registry *source.Registry
}

func setup() (*deps, error) {
	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	database, err := db.OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	repo := postgres.New(database)
	if err := repo.Ensure(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("db ensure failed: %w", err)
	}

	cumhuriyet, _ := sources.ForKind(domain.ParserCumhuriyet)
	registry := source.NewRegistry(
		source.NewNefes(),
		source.NewEkonomim(),
		source.NewCumhuriyet(cumhuriyet.BaseURL),
	)
	return &deps{cfg: cfg, sources: sources, log: log, database: database, repo: repo, registry: registry}, nil
}

func (d *deps) close() {
	_ = d.log.Sync()
	_ = d.database.Close()
}

func (d *deps) ingestor() *app.Ingestor {
	return app.NewIngestor(d.repo, d.repo, web.NewFetcher(), d.registry, d.log)
}

func cmdDiscover(args []string) error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.close()
	return d.ingestor().Discover(context.Background(), d.sources)
}

func cmdFetch(args []string) error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.close()
	stats, err := d.ingestor().Run(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %d new articles (%d duplicates, %d skipped) from %d authors\n",
		stats.Inserted, stats.Duplicates, stats.Skipped, stats.AuthorsFetched)
	return nil
}

func cmdWatch(args []string) error {
	cfg := config.Load()
	listener, err := control.TryListen(cfg.ControlAddr)
	if err != nil {
		if errors.Is(err, control.ErrAlreadyRunning) {
			fmt.Println("Background process is already running")
		}
		return err
	}
	defer listener.Close()

	d, err := setup()
	if err != nil {
		return err
	}
	defer d.close()

	sched := app.NewScheduler(d.ingestor(), d.cfg.WatchInterval, d.log)
	ctrl := control.NewServer(sched)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		_ = http.Serve(listener, ctrl)
	}()

	if err := sched.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Watching sources (interval = %s, control = %s)\n", d.cfg.WatchInterval, d.cfg.ControlAddr)

	<-ctx.Done()
	_ = sched.Stop()
	fmt.Println("Graceful shutdown: watcher stopped")
	return nil
}

func cmdGenerate(args []string) error {
	d, err := setup()
	if err != nil {
		return err
	}
	defer d.close()

	out := d.sources.Output
	builder := feed.NewBuilder(d.repo, d.log)
	exporter := feed.NewExporter(d.repo, builder, out.Domain, out.FeedDir, out.OutDir, d.log)
	return exporter.Generate(context.Background())
}

func cmdAuthors(args []string) error {
	fset := flag.NewFlagSet("authors", flag.ContinueOnError)
	var parser string
	fset.StringVar(&parser, "parser", "", "limit to one parser kind")
	if err := fset.Parse(args); err != nil {
		return err
	}

	d, err := setup()
	if err != nil {
		return err
	}
	defer d.close()

	var authors []domain.Author
	if parser != "" {
		if _, ok := d.registry.ForKind(domain.ParserKind(parser)); !ok {
			return fmt.Errorf("unknown parser kind: %s", parser)
		}
		authors, err = d.repo.ListAuthorsByParser(context.Background(), domain.ParserKind(parser))
	} else {
		authors, err = d.repo.ListAuthors(context.Background())
	}
	if err != nil {
		return err
	}
	for i, a := range authors {
		fmt.Printf("%d. %s (%s/%s)\n   %s\n", i+1, a.Name, a.Parser, a.Short, a.Link)
	}
	return nil
}

func cmdArticles(args []string) error {
	fset := flag.NewFlagSet("articles", flag.ContinueOnError)
	var author string
	var num int
	fset.StringVar(&author, "author", "", "author name")
	fset.IntVar(&num, "num", 0, "limit number of articles (0 = all)")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("--author is required")
	}

	d, err := setup()
	if err != nil {
		return err
	}
	defer d.close()

	arts, err := d.repo.ListArticlesByAuthor(context.Background(), author)
	if err != nil {
		return err
	}
	if num > 0 && len(arts) > num {
		arts = arts[len(arts)-num:]
	}
	for i, a := range arts {
		fmt.Printf("%d. [%s] %s\n   %s\n", i+1, a.Date, a.Title, a.Link)
	}
	return nil
}

func cmdSetInterval(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: kosehub set-interval DURATION (e.g., 2h)")
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	c := control.NewClient(config.Load().ControlAddr)
	old, err := c.SetInterval(d)
	if err != nil {
		return err
	}
	fmt.Printf("Fetch interval changed from %s to %s\n", old, d)
	return nil
}

func cmdRunNow(args []string) error {
	c := control.NewClient(config.Load().ControlAddr)
	if err := c.Run(); err != nil {
		return err
	}
	fmt.Println("Ingest pass requested")
	return nil
}
