package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"tweetkit/internal/analytics"
	"tweetkit/internal/cache"
	"tweetkit/internal/cmdlog"
	"tweetkit/internal/config"
	"tweetkit/internal/hydrate"
	"tweetkit/internal/metrics"
	"tweetkit/internal/store"
	"tweetkit/internal/theme"
	"tweetkit/internal/tweetset"
	"tweetkit/internal/twitter"
	"tweetkit/internal/util"
)

func main() {
	_ = godotenv.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	metrics.StartServer("")

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	var err error
	switch cmd {
	case "init":
		err = cmdlog.Run(log, cmd, func() error { return cmdInit() })
	case "tweet":
		err = cmdlog.Run(log, cmd, func() error { return cmdTweet(log) })
	case "user":
		err = cmdlog.Run(log, cmd, func() error { return cmdUser(log) })
	case "fetch":
		err = cmdlog.Run(log, cmd, func() error { return cmdFetch(log) })
	case "export":
		err = cmdlog.Run(log, cmd, func() error { return cmdExport(log) })
	default:
		printHelp()
	}
	if err != nil {
		os.Exit(1)
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: tweetkit <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init     Create a config file at ./tweetkit.yaml")
	fmt.Println("  tweet    Hydrate and print one tweet by id")
	fmt.Println("  user     Hydrate and print one user by id")
	fmt.Println("  fetch    Build a tweet set from ids and print a summary")
	fmt.Println("  export   Build a tweet set and export its rows to SQLite")
}

func cmdInit() error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./tweetkit.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
	return nil
}

func newHydrator(cfg config.Config, log zerolog.Logger) (*hydrate.Hydrator, error) {
	client, err := twitter.New(twitter.Credentials{
		ConsumerKey:    cfg.Credentials.ConsumerKey,
		ConsumerSecret: cfg.Credentials.ConsumerSecret,
		AccessToken:    cfg.Credentials.AccessToken,
		AccessSecret:   cfg.Credentials.AccessSecret,
	})
	if err != nil {
		return nil, err
	}
	return &hydrate.Hydrator{
		Cache:            cache.NewStore(cfg.Cache.Dir),
		Fetcher:          client,
		Log:              log,
		SuppressWarnings: cfg.Fetch.SuppressWarnings,
	}, nil
}

func cmdTweet(log zerolog.Logger) error {
	fs := flag.NewFlagSet("tweet", flag.ExitOnError)
	cfgPath := fs.String("config", "./tweetkit.yaml", "config path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tweetkit tweet <id>")
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	h, err := newHydrator(cfg, log)
	if err != nil {
		return err
	}
	t, err := h.Tweet(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	for _, col := range printedTweetColumns {
		fmt.Printf("%-28s %v\n", col, t.Data()[col])
	}
	return nil
}

var printedTweetColumns = []string{
	"id", "created_at_ts", "full_text", "lang", "source", "user",
	"retweet", "retweet_count", "favorite_count", "json_source",
}

func cmdUser(log zerolog.Logger) error {
	fs := flag.NewFlagSet("user", flag.ExitOnError)
	cfgPath := fs.String("config", "./tweetkit.yaml", "config path")
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tweetkit user <id>")
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	h, err := newHydrator(cfg, log)
	if err != nil {
		return err
	}
	u, err := h.User(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	for k, v := range u.Data() {
		fmt.Printf("%-24s %v\n", k, v)
	}
	return nil
}

// buildSet parses the shared fetch/export flags, reads identifiers and
// builds the set.
func buildSet(log zerolog.Logger, name string) (*tweetset.Set, config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfgPath := fs.String("config", "./tweetkit.yaml", "config path")
	idsFile := fs.String("ids", "", "file with one tweet id per line")
	filterKey := fs.String("filter-key", "", "raw document field to filter on")
	filterValue := fs.String("filter-value", "", "substring the field must contain")
	includeRT := fs.Bool("retweets", true, "include retweets")
	progress := fs.Bool("progress", false, "print progress while hydrating")
	stats := fs.Bool("stats", false, "print hourly volume stats")
	_ = fs.Parse(os.Args[2:])
	passed := flagsSet(fs)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return nil, cfg, err
	}
	opts := tweetset.Options{
		FilterKey:       cfg.Fetch.FilterKey,
		FilterValue:     cfg.Fetch.FilterValue,
		IncludeRetweets: cfg.Fetch.IncludeRetweets,
		Progress:        cfg.Fetch.Progress || *progress,
	}
	// A flag passed on the command line wins over the config file.
	if passed["retweets"] {
		opts.IncludeRetweets = *includeRT
	}
	if *filterKey != "" {
		opts.FilterKey = *filterKey
	}
	if *filterValue != "" {
		opts.FilterValue = *filterValue
	}

	ids := fs.Args()
	if *idsFile != "" {
		fromFile, err := readIDs(*idsFile)
		if err != nil {
			return nil, cfg, err
		}
		ids = append(fromFile, ids...)
	}
	if len(ids) == 0 {
		return nil, cfg, fmt.Errorf("no tweet ids given (use -ids or arguments)")
	}

	h, err := newHydrator(cfg, log)
	if err != nil {
		return nil, cfg, err
	}
	set, err := tweetset.Build(context.Background(), h, ids, opts)
	if err != nil {
		return nil, cfg, err
	}
	if *stats {
		printStats(set)
	}
	return set, cfg, nil
}

func cmdFetch(log zerolog.Logger) error {
	set, _, err := buildSet(log, "fetch")
	if err != nil {
		return err
	}
	fmt.Printf("Accepted %d of %d tweets\n", set.Len(), len(set.IDs))
	for _, t := range set.Tweets {
		ts := "-"
		if t.CreatedAtTS != nil {
			ts = *t.CreatedAtTS
		}
		text := util.Truncate(util.NormalizeWhitespace(t.Text()), 80)
		fmt.Printf("%d  %s  %s\n", t.ID, ts, text)
	}
	return nil
}

func cmdExport(log zerolog.Logger) error {
	set, cfg, err := buildSet(log, "export")
	if err != nil {
		return err
	}
	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := context.Background()
	if err := db.ExportSet(ctx, set); err != nil {
		return err
	}
	n, err := db.CountTweets(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d tweets; %s now holds %d rows\n", set.Len(), cfg.Storage.DBPath, n)
	return nil
}

func printStats(set *tweetset.Set) {
	buckets := analytics.HourlyVolume(set.Tweets)
	for _, k := range analytics.SortedBucketKeys(buckets) {
		fmt.Printf("%s  %d\n", k.Format("2006-01-02 15:00"), buckets[k])
	}
}

// flagsSet reports which flags were passed explicitly, so they can
// override config-file values without clobbering them by default.
func flagsSet(fs *flag.FlagSet) map[string]bool {
	passed := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { passed[f.Name] = true })
	return passed
}

func readIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ids []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, sc.Err()
}
