package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/numlab/internal/experiment"
)

var ErrBadRunID = errors.New("storage: invalid run id")

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string                   `json:"id"`
	Section   string                   `json:"section"`
	Title     string                   `json:"title"`
	Timestamp time.Time                `json:"timestamp"`
	Verify    bool                     `json:"verify"`
	Duration  time.Duration            `json:"duration"`
	Values    []experiment.Value       `json:"values"`
	Checks    []experiment.Check       `json:"checks"`
	Matrices  []experiment.NamedMatrix `json:"matrices,omitempty"`
	Vectors   []experiment.NamedVector `json:"vectors,omitempty"`
}

// Save writes metadata.json and series.csv under a new run directory and
// returns the run id.
func (s *Store) Save(res *experiment.Result, verify bool) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", res.Section, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Section:   res.Section,
		Title:     res.Title,
		Timestamp: now,
		Verify:    verify,
		Duration:  res.Duration,
		Values:    res.Values,
		Checks:    res.Checks,
		Matrices:  res.Matrices,
		Vectors:   res.Vectors,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), res.Series); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, series []experiment.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"series", "x", "y"}); err != nil {
		return err
	}
	for _, s := range series {
		for i := range s.X {
			row := []string{
				s.Name,
				strconv.FormatFloat(s.X[i], 'g', -1, 64),
				strconv.FormatFloat(s.Y[i], 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads series.csv back, keeping the order series first appear.
func (s *Store) LoadSeries(runID string) ([]experiment.Series, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	out := make([]experiment.Series, 0)
	index := make(map[string]int)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		x, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", runID, i+1, err)
		}
		y, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", runID, i+1, err)
		}

		k, ok := index[rec[0]]
		if !ok {
			k = len(out)
			index[rec[0]] = k
			out = append(out, experiment.Series{Name: rec[0]})
		}
		out[k].X = append(out[k].X, x)
		out[k].Y = append(out[k].Y, y)
	}
	return out, nil
}

// ExportData is a stored run with its series in one document.
type ExportData struct {
	RunMetadata
	Series []experiment.Series `json:"series"`
}

// ExportJSON writes a stored run as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Series: series})
}
