package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/leanware/bpnav/pkg/models"
)

// Index is a SQLite-backed full-text index over blueprint statements. It
// resolves the "search workspace text for this label" navigation targets
// and backs the search command.
type Index struct {
	db     *sql.DB
	useFTS bool
}

// Result is one search hit.
type Result struct {
	Label     string
	StmtType  string
	Title     string
	LeanNames string
	Snippet   string
}

// NewIndex opens (or creates) an index at the given path. Use ":memory:"
// for a throwaway index.
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS statements_meta (
		label TEXT PRIMARY KEY,
		stmt_type TEXT,
		title TEXT,
		text TEXT,
		lean_names TEXT,
		formalized BOOLEAN
	);

	CREATE INDEX IF NOT EXISTS idx_statements_meta_type ON statements_meta(stmt_type);
	CREATE INDEX IF NOT EXISTS idx_statements_meta_formalized ON statements_meta(formalized);
	`
	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS statements_fts USING fts5(
			label UNINDEXED,
			stmt_type,
			title,
			text,
			lean_names,
			tokenize = 'porter unicode61'
		);
		`
		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// Fall back to LIKE queries on the meta table.
			idx.useFTS = false
		}
	}
	return nil
}

func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}
	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// Reindex replaces the entire index with the given records, including
// nested statements and proofs. Each extraction is a single batch, so a
// full rebuild matches the loader's all-or-nothing model.
func (idx *Index) Reindex(items []*models.Item) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM statements_fts"); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM statements_meta"); err != nil {
		return err
	}

	seen := make(map[string]bool)
	if err := idx.insertAll(tx, items, seen); err != nil {
		return err
	}
	return tx.Commit()
}

func (idx *Index) insertAll(tx *sql.Tx, items []*models.Item, seen map[string]bool) error {
	for _, it := range items {
		if it.Labeled() && !seen[it.Label] {
			seen[it.Label] = true
			leanNames := strings.Join(it.LeanNames, " ")
			formalized := it.LeanOK || it.FullyProved || len(it.Declarations) > 0

			if idx.useFTS {
				_, err := tx.Exec(`
					INSERT INTO statements_fts (label, stmt_type, title, text, lean_names)
					VALUES (?, ?, ?, ?, ?)
				`, it.Label, it.StmtType, it.Title, it.ProcessedText, leanNames)
				if err != nil {
					return err
				}
			}
			_, err := tx.Exec(`
				INSERT INTO statements_meta (label, stmt_type, title, text, lean_names, formalized)
				VALUES (?, ?, ?, ?, ?, ?)
			`, it.Label, it.StmtType, it.Title, it.ProcessedText, leanNames, formalized)
			if err != nil {
				return err
			}
		}

		if it.Proof != nil {
			if err := idx.insertAll(tx, []*models.Item{it.Proof}, seen); err != nil {
				return err
			}
		}
		if err := idx.insertAll(tx, it.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

// Options narrow a search.
type Options struct {
	StmtType string
	Limit    int
}

// Search runs a full-text query over the indexed statements.
func (idx *Index) Search(query string, opts *Options) ([]Result, error) {
	if opts == nil {
		opts = &Options{Limit: 50}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

func (idx *Index) searchWithFTS(query string, opts *Options) ([]Result, error) {
	var conditions []string
	var args []any

	if opts.StmtType != "" {
		conditions = append(conditions, "m.stmt_type = ?")
		args = append(args, opts.StmtType)
	}
	conditions = append(conditions, "statements_fts MATCH ?")
	args = append(args, query)

	searchQuery := fmt.Sprintf(`
		SELECT
			f.label, f.stmt_type, f.title, f.lean_names,
			snippet(statements_fts, 3, '<match>', '</match>', '...', 32) as snippet
		FROM statements_fts f
		JOIN statements_meta m ON f.label = m.label
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Label, &r.StmtType, &r.Title, &r.LeanNames, &r.Snippet); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]Result, error) {
	var conditions []string
	var args []any

	if opts.StmtType != "" {
		conditions = append(conditions, "stmt_type = ?")
		args = append(args, opts.StmtType)
	}

	pattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions = append(conditions, "(label LIKE ? OR title LIKE ? OR text LIKE ? OR lean_names LIKE ?)")
	args = append(args, pattern, pattern, pattern, pattern)

	searchQuery := fmt.Sprintf(`
		SELECT label, stmt_type, title, lean_names
		FROM statements_meta
		WHERE %s
		ORDER BY label
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := idx.db.Query(searchQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Label, &r.StmtType, &r.Title, &r.LeanNames); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of indexed statements.
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow("SELECT COUNT(*) FROM statements_meta").Scan(&n)
	return n, err
}

// Lookup fetches a single indexed statement by its exact label.
func (idx *Index) Lookup(label string) (*Result, error) {
	row := idx.db.QueryRow(`
		SELECT label, stmt_type, title, lean_names
		FROM statements_meta
		WHERE label = ?
	`, label)

	var r Result
	if err := row.Scan(&r.Label, &r.StmtType, &r.Title, &r.LeanNames); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.db.Close()
}
