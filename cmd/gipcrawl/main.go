package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"gipcrawl/pkg/catalog"
	"gipcrawl/pkg/config"
	"gipcrawl/pkg/crawler"
	"gipcrawl/pkg/extract"
	"gipcrawl/pkg/fetch"
	gclog "gipcrawl/pkg/log"
	"gipcrawl/pkg/session"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "crawl":
		runCrawl(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "version":
		fmt.Printf("gipcrawl %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `gipcrawl - GIP portal site crawler

Usage:
  gipcrawl <command> [options]

Commands:
  crawl       Crawl the site and write the page catalog
  validate    Validate configuration file
  version     Show version info

Run 'gipcrawl <command> -h' for command-specific help.`)
}

// loadConfig loads and parses the config file. An empty path yields the
// built-in defaults.
func loadConfig(path string) (*config.AppConfig, error) {
	cfg := config.Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// crawlFlags holds the crawl subcommand's CLI overrides.
type crawlFlags struct {
	configFile string
	sitemapURL string
	domain     string
	output     string
	logLevel   string
	logFile    string
}

func parseCrawlFlags(args []string) crawlFlags {
	fs := flag.NewFlagSet("crawl", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to config file (optional, built-in defaults otherwise)")
	sitemapURL := fs.String("url", "", "Sitemap URL to start from (overrides config)")
	domain := fs.String("domain", "", "Allowed domain (overrides config)")
	output := fs.String("output", "", "Catalog output path, .csv or .xlsx (overrides config)")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error, fatal)")
	logFile := fs.String("logfile", "", "File to mirror the full log into")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gipcrawl crawl [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gipcrawl crawl -output site.csv\n")
		fmt.Fprintf(os.Stderr, "  gipcrawl crawl -config config.yaml -loglevel debug -logfile crawl.log\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return crawlFlags{
		configFile: *configFile,
		sitemapURL: *sitemapURL,
		domain:     *domain,
		output:     *output,
		logLevel:   *logLevel,
		logFile:    *logFile,
	}
}

// applyOverrides writes the non-empty CLI flags over the loaded config.
func applyOverrides(cfg *config.AppConfig, flags crawlFlags) {
	if flags.sitemapURL != "" {
		cfg.SitemapURL = flags.sitemapURL
	}
	if flags.domain != "" {
		cfg.AllowedDomain = flags.domain
	}
	if flags.output != "" {
		cfg.OutputPath = flags.output
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
}

// setupLogger creates a configured logrus.Logger with the given log level.
func setupLogger(logLevelStr string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevelStr, err)
	} else {
		log.SetLevel(level)
	}
	return log
}

// runCrawl handles the crawl subcommand.
func runCrawl(args []string) {
	flags := parseCrawlFlags(args)

	cfg, err := loadConfig(flags.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, flags)

	log := setupLogger(cfg.LogLevel)

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.LogFile != "" {
		hook, err := gclog.NewFileHook(cfg.LogFile)
		if err != nil {
			log.Fatalf("Log file error: %v", err)
		}
		defer hook.Close()
		log.AddHook(hook)
	}

	log.Infof("Crawling %s (domain %s), catalog to %s", cfg.SitemapURL, cfg.AllowedDomain, cfg.OutputPath)

	// --- Signal handling for graceful shutdown ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig = <-sigChan:
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			log.Warn("Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		}
	}()

	// --- Components ---
	logEntry := log.WithField("component", "crawl")
	httpClient := fetch.NewClient(cfg.HTTPClientSettings, logEntry)
	fetcher := fetch.NewFetcher(httpClient, cfg, logEntry)
	sess := session.New(cfg, fetcher, logEntry)
	extractor := extract.NewExtractor(sess, logEntry)
	crawlerInstance := crawler.New(cfg, sess, extractor, logEntry)

	// --- Run ---
	result, err := crawlerInstance.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Crawl cancelled gracefully.")
			os.Exit(0)
		}
		log.Fatalf("Crawl finished with error: %v", err)
	}

	// --- Save catalog ---
	if err := catalog.Write(cfg.OutputPath, result.Finished); err != nil {
		log.Fatalf("Failed to save catalog: %v", err)
	}
	log.Infof("Data saved to %s (%d pages, %d tiers)", cfg.OutputPath, len(result.Finished), result.Tiers)

	// --- Failed-page summary ---
	if len(result.Failed) > 0 {
		log.Warn("Pages that failed to be parsed:")
		for _, page := range result.Failed {
			log.Warnf("%s\t%s", page.Name, page.URL)
		}
	}

	log.Info("Program finished.")
}

// runValidate handles the validate subcommand.
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gipcrawl validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	os.Exit(doValidate(*configFile, os.Stdout, os.Stderr))
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Configuration valid.")
	return 0
}
