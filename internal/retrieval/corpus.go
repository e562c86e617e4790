package retrieval

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Corpus is an FTS5-indexed passage store in a standalone SQLite file.
type Corpus struct {
	db *sql.DB
}

// OpenCorpus opens (or creates) the corpus database at path.
func OpenCorpus(path string) (*Corpus, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create corpus dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}

	if _, err := db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS passages
		USING fts5(title, body)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create passage index: %w", err)
	}

	return &Corpus{db: db}, nil
}

// Close closes the corpus database.
func (c *Corpus) Close() error {
	return c.db.Close()
}

// Retrieve returns the k best passages for the query by BM25 rank.
func (c *Corpus) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	match := buildMatchExpr(query)
	if match == "" || k <= 0 {
		return nil, nil
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT rowid, title, body, rank
		FROM passages
		WHERE passages MATCH ?
		ORDER BY rank
		LIMIT ?`, match, k)
	if err != nil {
		return nil, fmt.Errorf("search corpus: %w", err)
	}
	defer rows.Close()

	var out []Passage
	for rows.Next() {
		var p Passage
		if err := rows.Scan(&p.ID, &p.Title, &p.Text, &p.Score); err != nil {
			return nil, fmt.Errorf("scan passage: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Add inserts one passage into the index.
func (c *Corpus) Add(ctx context.Context, title, body string) error {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO passages (title, body) VALUES (?, ?)`, title, body)
	if err != nil {
		return fmt.Errorf("insert passage: %w", err)
	}
	return nil
}

// Count returns the number of indexed passages.
func (c *Corpus) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count passages: %w", err)
	}
	return n, nil
}

// ImportFile ingests a reference file into the corpus.
// ".jsonl" files hold one {"title","text"} object per line; anything
// else is treated as plain text split into passages on blank lines.
func (c *Corpus) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return c.importJSONL(ctx, f, title)
	}
	return c.importText(ctx, f, title)
}

func (c *Corpus) importJSONL(ctx context.Context, f *os.File, fallbackTitle string) (int, error) {
	type record struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)

	var added int
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return added, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Title == "" {
			rec.Title = fallbackTitle
		}
		if err := c.Add(ctx, rec.Title, rec.Text); err != nil {
			return added, err
		}
		added++
	}
	return added, scanner.Err()
}

func (c *Corpus) importText(ctx context.Context, f *os.File, title string) (int, error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)

	var block []string
	var added int

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		if err := c.Add(ctx, title, strings.Join(block, "\n")); err != nil {
			return err
		}
		added++
		block = block[:0]
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return added, err
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return added, err
	}
	return added, flush()
}

// buildMatchExpr turns a free-text query into an FTS5 match expression.
// Terms are quoted individually and OR-ed so punctuation in concept
// phrases ("Beck's triad", "p-value") cannot break the query syntax.
func buildMatchExpr(query string) string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !isWordRune(r)
	})

	var terms []string
	for _, f := range fields {
		if f == "" {
			continue
		}
		terms = append(terms, `"`+f+`"`)
	}
	return strings.Join(terms, " OR ")
}

func isWordRune(r rune) bool {
	return r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
