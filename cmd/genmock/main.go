// Command genmock reads a timber cruise CSV and generates mock data fixtures:
// the raw measurement records published to the source topic and the weight
// estimates the pipeline is expected to produce for them. It uses the domain
// package directly so the fixtures match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv data/mock/cruise.csv \
//	  -raw-out data/mock/tree_records.json \
//	  -estimates-out data/mock/tree_estimates.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/pine-weight-etl/internal/domain"
	"github.com/jonboulle/clockwork"
)

var requiredColumns = []string{"tree_id", "stand", "species", "region", "dbh", "height", "mtop"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvPath := flag.String("csv", "", "timber cruise CSV with tree_id,stand,species,region,dbh,height,mtop columns")
	rawOut := flag.String("raw-out", "", "output path for raw measurement JSON fixture")
	estOut := flag.String("estimates-out", "", "output path for weight estimate JSON fixture")
	flag.Parse()

	if *csvPath == "" || *rawOut == "" || *estOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv, -raw-out, -estimates-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 2, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	recs, err := readCruise(*csvPath)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *csvPath, err)
	}
	log.Printf("read %d trees", len(recs))

	estimates := make([]domain.WeightEstimate, 0, len(recs))
	var skipped int
	for _, rec := range recs {
		est, err := domain.EstimateRecord(rec)
		if err != nil {
			log.Printf("skip tree %s: %v", rec.TreeID, err)
			skipped++
			continue
		}
		estimates = append(estimates, est)
	}

	if err := writeJSON(*rawOut, recs); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*estOut, estimates); err != nil {
		return fmt.Errorf("writing estimates fixture: %w", err)
	}
	log.Printf("wrote estimates fixture: %s", *estOut)

	printStats(estimates, skipped)
	return nil
}

func readCruise(path string) ([]domain.TreeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := colIdx[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	recs := make([]domain.TreeRecord, 0, len(rows)-1)
	for line, row := range rows[1:] {
		dbh, errD := strconv.ParseFloat(get(row, colIdx, "dbh"), 64)
		height, errH := strconv.ParseFloat(get(row, colIdx, "height"), 64)
		mtop, errM := strconv.ParseFloat(get(row, colIdx, "mtop"), 64)
		if errD != nil || errH != nil || errM != nil {
			return nil, fmt.Errorf("line %d: non-numeric measurement", line+2)
		}
		recs = append(recs, domain.TreeRecord{
			TreeID:  get(row, colIdx, "tree_id"),
			Stand:   get(row, colIdx, "stand"),
			Species: strings.ToLower(get(row, colIdx, "species")),
			Region:  strings.ToLower(get(row, colIdx, "region")),
			DBH:     dbh,
			Height:  height,
			MTop:    mtop,
		})
	}
	return recs, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type methodTotal struct {
	method domain.Method
	count  int
	lbs    float64
}

func printStats(estimates []domain.WeightEstimate, skipped int) {
	totals := map[domain.Method]*methodTotal{}
	bySpecies := map[domain.Species]float64{}
	for i := range estimates {
		e := &estimates[i]
		mt, ok := totals[e.Method]
		if !ok {
			mt = &methodTotal{method: e.Method}
			totals[e.Method] = mt
		}
		mt.count++
		mt.lbs += e.GreenWeightLbs
		bySpecies[e.Species] += e.GreenWeightLbs
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Estimated: %d, skipped: %d\n", len(estimates), skipped)

	sorted := make([]*methodTotal, 0, len(totals))
	for _, mt := range totals {
		sorted = append(sorted, mt)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].method < sorted[j].method })
	for _, mt := range sorted {
		fmt.Printf("  %-24s n=%-4d total=%.1f lbs\n", mt.method, mt.count, mt.lbs)
	}
	for _, s := range domain.AllSpecies {
		fmt.Printf("%s: %.2f tons\n", s, bySpecies[s]/2000)
	}
}
