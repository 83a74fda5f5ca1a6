package main_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const scheduleCSV = `Service Type,Date,Sunday/Commemoration Title,Proper,Color,Eucharistic Prayer,Preface,Reading,Psalm,Gospel,POP,Special Blessing,Closing Prayer,Dismissal,Notes
Sunday,3/8/2026,Third Sunday in Lent,-,Violet,A,Lent (1),1 Corinthians 10:1-13,Psalm 63:1-8 responsively,Luke 13:1-9,III,Solemn Prayer (BOS),Almighty,1,
`

const gridCSV = `Service Planner: This Week,,Date:,3/8/2026
Service Part,Song (9 am) - Lent 3A,Key,Lead
Processional:,Build My Life,G,Steph
Communion 1:,Goodness of God,Ab,Steph
`

const parishCSV = `Date,Ministry
"August 28, 2022",Altar Guild
,Belize Mission Team
,Bible Builders
"September 4, 2022",Choir
,Children's Ministry
,Communications
"September 11, 2022",Daughters of the King
,Endowment Board
,Flower Guild
`

const songCorpusJSON = `[
  {"title": "Build My Life", "service": "9am",
   "sections": [{"type": "verse", "lines": ["Worthy of every song we could ever sing"]}]}
]`

func TestCLI_OfflineServer(t *testing.T) {
	tmp := t.TempDir()

	// Load the scripture fixture served for every passage request.
	fixture := filepath.Join("..", "..", "pkg", "scripture", "testdata", "passage.html")
	body, err := os.ReadFile(fixture)
	if err != nil {
		body, err = os.ReadFile("pkg/scripture/testdata/passage.html")
	}
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	}))
	defer srv.Close()

	// Offline inputs
	schedulePath := filepath.Join(tmp, "schedule.csv")
	if err := os.WriteFile(schedulePath, []byte(scheduleCSV), 0644); err != nil {
		t.Fatalf("failed to write schedule: %v", err)
	}
	gridPath := filepath.Join(tmp, "grid.csv")
	if err := os.WriteFile(gridPath, []byte(gridCSV), 0644); err != nil {
		t.Fatalf("failed to write grid: %v", err)
	}
	parishPath := filepath.Join(tmp, "parish.csv")
	if err := os.WriteFile(parishPath, []byte(parishCSV), 0644); err != nil {
		t.Fatalf("failed to write parish cycle: %v", err)
	}
	corpusPath := filepath.Join(tmp, "songs.json")
	if err := os.WriteFile(corpusPath, []byte(songCorpusJSON), 0644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}

	dbPath := filepath.Join(tmp, "songs.db")
	cfgPath := filepath.Join(tmp, "bulletiner.yaml")
	bin := filepath.Join(tmp, "bulletiner.bin")

	build := exec.Command("go", "build", "-o", bin, "github.com/japaniel/bulletiner/cmd/bulletiner")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	// Import the song corpus first.
	cmd := exec.CommandContext(ctx, bin, "-config", cfgPath, "-db", dbPath, "-import-songs", corpusPath)
	cmd.Dir = tmp
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("import failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(string(out), "Imported 1 songs") {
		t.Fatalf("unexpected import output:\n%s", out)
	}

	dbConn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer dbConn.Close()
	var cnt int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM songs").Scan(&cnt); err != nil {
		t.Fatalf("db query failed: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected 1 song in DB, found %d", cnt)
	}

	// Assemble the bulletin fully offline.
	cmd = exec.CommandContext(ctx, bin,
		"-config", cfgPath,
		"-db", dbPath,
		"-date", "2026-03-08",
		"-schedule-csv", schedulePath,
		"-grid-csv", gridPath,
		"-parish-csv", parishPath,
		"-scripture-url", srv.URL,
	)
	cmd.Dir = tmp
	out, err = cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		t.Fatalf("cli timed out, output:\n%s", out)
	}
	if err != nil {
		t.Fatalf("cli failed: %v\noutput:\n%s", err, out)
	}

	outStr := string(out)
	for _, want := range []string{
		"Third Sunday in Lent",
		"Bless the Lord who forgives all our sins.",
		"The Psalm: Psalm 63:1-8",
		"When the day of Pentecost had come",
		"Worthy of every song we could ever sing",
		"Prayer over the People",
		"Let us go forth in the name of Christ.",
		// 2026-03-08 is 184 weeks past the cycle anchor: week 1 of 3.
		"especially Choir, Children's Ministry, and Communications",
	} {
		if !strings.Contains(outStr, want) {
			t.Fatalf("CLI output missing %q, got:\n%s", want, outStr)
		}
	}
}
