package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/araddon/dateparse"
	"github.com/japaniel/bulletiner/pkg/bulletin"
	"github.com/japaniel/bulletiner/pkg/config"
	"github.com/japaniel/bulletiner/pkg/logx"
	"github.com/japaniel/bulletiner/pkg/musicgrid"
	"github.com/japaniel/bulletiner/pkg/parishprayers"
	"github.com/japaniel/bulletiner/pkg/scripture"
	"github.com/japaniel/bulletiner/pkg/sheet"
	"github.com/japaniel/bulletiner/pkg/songs"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	dateFlag := flag.String("date", "", "Service date to assemble (e.g. 2026-03-08)")
	configFlag := flag.String("config", "bulletiner.yaml", "Path to YAML config")
	dbFlag := flag.String("db", "", "Path to SQLite song database (overrides config)")
	importFlag := flag.String("import-songs", "", "Path to JSON song corpus to import, then exit")
	scheduleCSV := flag.String("schedule-csv", "", "Read the schedule from a local CSV instead of fetching")
	gridCSV := flag.String("grid-csv", "", "Read the music grid from a local CSV instead of fetching")
	parishCSV := flag.String("parish-csv", "", "Read the parish cycle of prayers from a local CSV instead of fetching")
	scriptureURL := flag.String("scripture-url", "", "Scripture provider base URL (overrides config)")
	prefaceOption := flag.String("preface-option", "", "Preselect a proper preface option by key or label")
	outFlag := flag.String("out", "", "Write the assembled bulletin to a file instead of stdout")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verboseFlag {
		logx.SetLevel(logx.LevelDebug)
	}

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := cfg.SongDBPath
	if *dbFlag != "" {
		dbPath = *dbFlag
	}
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := songs.InitDB(conn); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Handle song corpus import (manual)
	if *importFlag != "" {
		fmt.Printf("Loading song corpus from %s...\n", *importFlag)
		corpus, err := songs.LoadCorpus(*importFlag)
		if err != nil {
			log.Fatalf("Failed to load song corpus: %v", err)
		}
		importer := songs.NewImporter(conn, corpus)
		count, err := importer.Import()
		if err != nil {
			log.Fatalf("Failed to import songs: %v", err)
		}
		fmt.Printf("Imported %d songs into %s\n", count, dbPath)
		return
	}

	if *dateFlag == "" {
		log.Fatal("Please provide a -date or -import-songs")
	}
	target, err := dateparse.ParseAny(*dateFlag)
	if err != nil {
		log.Fatalf("Failed to parse -date %q: %v", *dateFlag, err)
	}

	// Schedule
	scheduleRows, err := loadCSV(ctx, *scheduleCSV, cfg.ScheduleExportURL())
	if err != nil {
		log.Fatalf("Failed to load schedule: %v", err)
	}
	entries, err := sheet.ParseRows(scheduleRows)
	if err != nil {
		log.Fatalf("Failed to parse schedule: %v", err)
	}
	entry, err := sheet.ForDate(entries, target)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("Assembling bulletin for %s (%s)\n", entry.Title, target.Format("2006-01-02"))

	// Music grid. A missing panel is survivable: the bulletin just has no
	// song lyrics.
	var plan *musicgrid.Plan
	gridRows, err := loadCSV(ctx, *gridCSV, cfg.MusicGridExportURL())
	if err != nil {
		log.Printf("Warning: failed to load music grid: %v. Continuing without music.", err)
	} else if p, ok := musicgrid.PlanForDate(gridRows, target); ok {
		plan = &p
	} else {
		log.Printf("Warning: no music panel for %s. Continuing without music.", target.Format("2006-01-02"))
	}

	// Parish cycle of prayers. Degrades to the visible placeholder the
	// builder inserts when the ministries string stays empty.
	var ministries string
	parishRows, err := loadCSV(ctx, *parishCSV, cfg.ParishPrayersExportURL())
	if err != nil {
		log.Printf("Warning: failed to load parish cycle: %v. Continuing without ministries.", err)
	} else {
		cycle := parishprayers.ParseCycle(parishRows)
		ministries = parishprayers.FormatMinistries(parishprayers.MinistriesForDate(cycle, target))
	}

	// Scripture
	baseURL := cfg.ScriptureBaseURL
	if *scriptureURL != "" {
		baseURL = *scriptureURL
	}
	client := scripture.NewClient(baseURL, cfg.ScriptureParams, time.Duration(cfg.FetchDelayMS)*time.Millisecond)
	readings := client.FetchAll(ctx, []scripture.Ref{
		{Label: "reading", Reference: entry.Reading},
		{Label: "gospel", Reference: entry.Gospel},
	})

	builder := &bulletin.Builder{
		Date:     target,
		Entry:    entry,
		Plan:     plan,
		Readings: readings,
		Lookup: func(identifier, service string) (*songs.Song, error) {
			return songs.LookupSong(conn, identifier, service)
		},
		PrefaceOption:    *prefaceOption,
		ParishMinistries: ministries,
	}
	svc, err := builder.Build()
	if err != nil {
		log.Fatalf("Failed to assemble bulletin: %v", err)
	}

	out := os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := svc.WriteText(out); err != nil {
		log.Fatalf("Failed to write bulletin: %v", err)
	}
}

// loadCSV prefers a local file when one was given, otherwise fetches the
// worksheet's CSV export.
func loadCSV(ctx context.Context, path, url string) ([][]string, error) {
	if path != "" {
		return sheet.ReadCSVFile(path)
	}
	return sheet.FetchCSV(ctx, url)
}
