package index

import (
	"encoding/json"
	"fmt"

	"github.com/starford/notegen/internal/models"
)

// Replace discards the previous contents and stores notes in the given order,
// within a single transaction.
func (db *DB) Replace(notes []models.NoteRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM links`); err != nil {
		return fmt.Errorf("index: clear links: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM notes`); err != nil {
		return fmt.Errorf("index: clear notes: %w", err)
	}

	noteStmt, err := tx.Prepare(`INSERT INTO notes (file, id, title, tags, position) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare note insert: %w", err)
	}
	defer noteStmt.Close()

	linkStmt, err := tx.Prepare(`INSERT INTO links (source_file, source_id, target, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare link insert: %w", err)
	}
	defer linkStmt.Close()

	for i, n := range notes {
		tags := n.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("index: encode tags: %w", err)
		}
		if _, err := noteStmt.Exec(n.File, n.ID, n.Title, string(tagsJSON), i); err != nil {
			return fmt.Errorf("index: insert note %s: %w", n.File, err)
		}
		for j, target := range n.Links {
			if _, err := linkStmt.Exec(n.File, n.ID, target, j); err != nil {
				return fmt.Errorf("index: insert link: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Notes returns every stored note in its original order.
func (db *DB) Notes() ([]models.NoteRecord, error) {
	rows, err := db.conn.Query(`SELECT file, id, title, tags FROM notes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("index: notes: %w", err)
	}
	defer rows.Close()

	var out []models.NoteRecord
	for rows.Next() {
		var n models.NoteRecord
		var tagsJSON string
		if err := rows.Scan(&n.File, &n.ID, &n.Title, &tagsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
			return nil, fmt.Errorf("index: decode tags for %s: %w", n.File, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		links, err := db.linksFrom(out[i].File)
		if err != nil {
			return nil, err
		}
		out[i].Links = links
	}
	return out, nil
}

func (db *DB) linksFrom(file string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT target FROM links WHERE source_file = ? ORDER BY position`, file)
	if err != nil {
		return nil, fmt.Errorf("index: links: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Backlinks returns the ids of all notes that link to target, in note order.
// Targets are not checked against existing ids.
func (db *DB) Backlinks(target string) ([]string, error) {
	rows, err := db.conn.Query(`
		SELECT l.source_id
		FROM links l
		JOIN notes n ON n.file = l.source_file
		WHERE l.target = ?
		ORDER BY n.position, l.position
	`, target)
	if err != nil {
		return nil, fmt.Errorf("index: backlinks: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
