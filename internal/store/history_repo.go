package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = sql.ErrNoRows

// Document is one generated artifact recorded for the history endpoint.
type Document struct {
	ID        int64
	CreatedAt time.Time
	Kind      string // grade | lessonplan | assignment
	Subject   string
	Engine    string
	Model     string
	Filename  string
	URL       string
	Request   json.RawMessage
}

type HistoryRepo struct{ DB *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{DB: db} }

// Init creates the documents table when it does not exist yet.
func (r *HistoryRepo) Init(ctx context.Context) error {
	const q = `
create table if not exists documents (
  id bigserial primary key,
  created_at timestamptz not null default now(),
  kind text not null,
  subject text not null default '',
  engine text not null default '',
  model text not null default '',
  filename text not null,
  url text not null,
  request_json jsonb
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

func (r *HistoryRepo) Insert(ctx context.Context, d Document) error {
	const q = `
insert into documents (kind, subject, engine, model, filename, url, request_json)
values ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.DB.ExecContext(ctx, q,
		d.Kind, d.Subject, d.Engine, d.Model, d.Filename, d.URL, []byte(d.Request))
	return err
}

// List returns the most recent documents, newest first.
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	const q = `
select id, created_at, kind,
       coalesce(subject,'') as subject,
       coalesce(engine,'') as engine,
       coalesce(model,'') as model,
       filename, url,
       coalesce(request_json, '{}'::jsonb)
from documents
order by created_at desc
limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var js []byte
		if err := rows.Scan(&d.ID, &d.CreatedAt, &d.Kind, &d.Subject, &d.Engine, &d.Model,
			&d.Filename, &d.URL, &js); err != nil {
			return nil, err
		}
		d.Request = json.RawMessage(js)
		out = append(out, d)
	}
	return out, rows.Err()
}

// PurgeOlderThan deletes old records so the table does not grow
// unbounded.
func (r *HistoryRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	res, err := r.DB.ExecContext(ctx, `delete from documents where created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
