package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"applicant-records/internal/records/models"
)

// PostgresCollection reads one collection from the documents table.
type PostgresCollection[T any] struct {
	db         *sql.DB
	collection models.Collection
}

func NewPostgresCollection[T any](db *sql.DB, collection models.Collection) *PostgresCollection[T] {
	return &PostgresCollection[T]{db: db, collection: collection}
}

func (c *PostgresCollection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	query := `SELECT body FROM documents WHERE collection = $1 ORDER BY seq`
	args := []any{c.collection.String()}
	if filter.Filtered() {
		query = `SELECT body FROM documents WHERE collection = $1 AND body->>'applicantId' = $2 ORDER BY seq`
		args = append(args, filter.ApplicantID)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.collection, err)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.collection, err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.collection, err)
	}
	return docs, nil
}

// PostgresNoteStore is the notes collection backed by the documents table.
type PostgresNoteStore struct {
	*PostgresCollection[models.Note]
}

func NewPostgresNoteStore(db *sql.DB) *PostgresNoteStore {
	return &PostgresNoteStore{PostgresCollection: NewPostgresCollection[models.Note](db, models.CollectionNotes)}
}

func (s *PostgresNoteStore) Insert(ctx context.Context, note *models.Note) error {
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	body, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body) VALUES ($1, $2, $3)`,
		note.ID.Hex(), models.CollectionNotes.String(), string(body),
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// UpdateContent mirrors a document-store updateOne: the first matching note
// counts as matched, and as modified only if its content actually changed.
func (s *PostgresNoteStore) UpdateContent(ctx context.Context, noteID, content string) (UpdateResult, error) {
	query := `
		WITH target AS (
			SELECT seq, body->>'content' AS current_content
			FROM documents
			WHERE collection = 'notes' AND body->>'noteId' = $1
			ORDER BY seq
			LIMIT 1
			FOR UPDATE
		), changed AS (
			UPDATE documents d
			SET body = jsonb_set(d.body, '{content}', to_jsonb($2::text))
			FROM target t
			WHERE d.seq = t.seq AND t.current_content IS DISTINCT FROM $2::text
			RETURNING d.seq
		)
		SELECT (SELECT COUNT(*) FROM target), (SELECT COUNT(*) FROM changed)
	`
	var result UpdateResult
	if err := s.db.QueryRowContext(ctx, query, noteID, content).Scan(&result.Matched, &result.Modified); err != nil {
		return UpdateResult{}, fmt.Errorf("update note: %w", err)
	}
	return result, nil
}

func (s *PostgresNoteStore) Delete(ctx context.Context, noteID string) (int64, error) {
	query := `
		DELETE FROM documents
		WHERE seq = (
			SELECT seq FROM documents
			WHERE collection = 'notes' AND body->>'noteId' = $1
			ORDER BY seq
			LIMIT 1
		)
	`
	res, err := s.db.ExecContext(ctx, query, noteID)
	if err != nil {
		return 0, fmt.Errorf("delete note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete note: %w", err)
	}
	return n, nil
}

// NewPostgresRecords binds every collection to the documents table in db.
func NewPostgresRecords(db *sql.DB, health func(context.Context) error) Records {
	return Records{
		PersonalInfo:   NewPostgresCollection[models.PersonalInfo](db, models.CollectionPersonalInfo),
		WorkExperience: NewPostgresCollection[models.WorkExperience](db, models.CollectionWorkExperience),
		Education:      NewPostgresCollection[models.Education](db, models.CollectionEducation),
		Skills:         NewPostgresCollection[models.Skill](db, models.CollectionSkills),
		Notes:          NewPostgresNoteStore(db),
		Health:         health,
	}
}

var _ NoteStore = (*PostgresNoteStore)(nil)
