package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"moodring/internal/adapters/classifier"
	"moodring/internal/core/lexicon"
	"moodring/internal/modkit/repokit"
	"moodring/internal/platform/config"
	"moodring/internal/platform/logger"
	"moodring/internal/platform/store"

	andom "moodring/internal/services/analysis/domain"
	analysismod "moodring/internal/services/analysis/module"
	analysissvc "moodring/internal/services/analysis/service"
	archiverepo "moodring/internal/services/archive/repo"
	archivesvc "moodring/internal/services/archive/service"
	trendssvc "moodring/internal/services/trends/service"
)

// csvHeader is the stable export column order
var csvHeader = []string{
	"text", "clean_text",
	"sentiment", "sentiment_confidence", "sentiment_intensity",
	"emotion", "emotion_confidence", "emotion_intensity",
	"secondary_emotion", "secondary_confidence", "is_mixed_emotion",
	"sarcasm_detected", "sarcasm_confidence",
	"business_priority", "business_category", "business_action",
	"explanation",
}

func main() {
	var (
		text    = flag.String("text", "", "analyze a single feedback text")
		file    = flag.String("file", "", "analyze a .csv (with a text column) or .txt (one item per line)")
		out     = flag.String("out", "", "write predictions CSV to this path")
		workers = flag.Int("workers", 0, "concurrent enrichments (0 = config default)")
		persist = flag.Bool("persist", false, "archive the batch in Postgres")
		source  = flag.String("source", "", "archive source tag (defaults to the input file name)")
		summary = flag.Bool("summary", false, "print the trend report for the batch")
	)
	flag.Parse()

	if (*text == "") == (*file == "") {
		log.Fatal("exactly one of -text or -file is required")
	}

	root := config.New()
	l := logger.Get()

	pack := lexicon.MustLoad()
	scorer := classifier.MustNew(pack)

	opts := analysismod.FromConfig(root)
	if *workers > 0 {
		opts.Workers = *workers
	}
	svc := analysissvc.New(scorer, scorer, pack, opts.Thresholds, analysissvc.Config{
		Workers:   opts.Workers,
		TopTokens: opts.TopTokens,
	})

	ctx := context.Background()

	if *text != "" {
		pred, err := svc.Enrich(ctx, *text)
		if err != nil {
			l.Fatal().Err(err).Msg("enrich failed")
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pred); err != nil {
			l.Fatal().Err(err).Msg("encode failed")
		}
		return
	}

	texts, err := loadTexts(*file)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("load input failed")
	}
	if len(texts) == 0 {
		l.Fatal().Str("file", *file).Msg("input contains no feedback texts")
	}
	l.Info().Int("items", len(texts)).Int("workers", opts.Workers).Msg("enriching batch")

	preds, err := svc.EnrichBatch(ctx, texts)
	if err != nil {
		l.Fatal().Err(err).Msg("batch enrichment failed")
	}

	if *persist {
		src := *source
		if src == "" {
			src = filepath.Base(*file)
		}
		id, err := persistBatch(ctx, root, src, preds)
		if err != nil {
			l.Fatal().Err(err).Msg("archive failed")
		}
		fmt.Printf("archived batch %s (%d items)\n", id, len(preds))
	}

	if *out != "" {
		if err := writeCSV(*out, preds); err != nil {
			l.Fatal().Err(err).Str("out", *out).Msg("write predictions failed")
		}
		fmt.Printf("wrote %d predictions to %s\n", len(preds), *out)
	}

	if *summary {
		ts := trendssvc.New(pack.Taxonomy, opts.Thresholds, nil)
		fmt.Println(trendssvc.RenderTrendText(ts.Summarize(preds)))
	}
}

// loadTexts reads feedback texts from a .csv with a "text" column or a .txt
// with one item per non-blank line
func loadTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSVTexts(f)
	}

	var texts []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	return texts, sc.Err()
}

func readCSVTexts(f *os.File) ([]string, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "text") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("csv has no text column (header: %s)", strings.Join(header, ", "))
	}

	var texts []string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if col < len(rec) {
			if t := strings.TrimSpace(rec[col]); t != "" {
				texts = append(texts, t)
			}
		}
	}
	return texts, nil
}

// persistBatch opens the store just for the archive write, mirroring the API
// service's SERVICE_PGSQL_* configuration
func persistBatch(ctx context.Context, root config.Conf, source string, preds []andom.Enriched) (string, error) {
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		return "", err
	}
	defer func() { _ = st.Close(ctx) }()

	arch := archivesvc.New(repokit.TxRunner(st.PG), archiverepo.NewPG(), archivesvc.Config{})
	ref, err := arch.SaveBatch(ctx, source, preds)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func writeCSV(path string, preds []andom.Enriched) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range preds {
		secondary, secondaryConf := "", ""
		if p.SecondaryEmotion != nil {
			secondary = *p.SecondaryEmotion
		}
		if p.SecondaryConfidence != nil {
			secondaryConf = f4(*p.SecondaryConfidence)
		}
		rec := []string{
			p.Text, p.CleanText,
			p.Sentiment, f4(p.SentimentConfidence), p.SentimentIntensity,
			p.Emotion, f4(p.EmotionConfidence), p.EmotionIntensity,
			secondary, secondaryConf, strconv.FormatBool(p.IsMixedEmotion),
			strconv.FormatBool(p.SarcasmDetected), f4(p.SarcasmConfidence),
			p.BusinessInsight.Priority, p.BusinessInsight.Category, p.BusinessInsight.Action,
			p.Explanation,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func f4(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
