package links

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"linkgate/pkg/store"
)

var sqlOpen = sql.Open

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlOpen("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS protected_links (
  id TEXT PRIMARY KEY,
  group_link TEXT NOT NULL,
  owner_id BIGINT NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresStore) SaveLink(link store.Link) error {
	createdAt := link.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
INSERT INTO protected_links(id, group_link, owner_id, created_at)
VALUES($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET group_link=EXCLUDED.group_link, owner_id=EXCLUDED.owner_id
`, link.ID, link.GroupLink, link.OwnerID, createdAt.UTC())
	return err
}

func (s *PostgresStore) GetLink(id string) (store.Link, bool, error) {
	var l store.Link
	l.ID = id
	err := s.db.QueryRow(`SELECT group_link, owner_id, created_at FROM protected_links WHERE id=$1`, id).
		Scan(&l.GroupLink, &l.OwnerID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return store.Link{}, false, nil
	}
	if err != nil {
		return store.Link{}, false, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return l, true, nil
}

func (s *PostgresStore) DeleteLink(id string) error {
	_, err := s.db.Exec(`DELETE FROM protected_links WHERE id=$1`, id)
	return err
}

func (s *PostgresStore) ListLinks(ownerID int64) ([]store.Link, error) {
	rows, err := s.db.Query(`SELECT id, group_link, owner_id, created_at FROM protected_links WHERE owner_id=$1 ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []store.Link
	for rows.Next() {
		var l store.Link
		if err := rows.Scan(&l.ID, &l.GroupLink, &l.OwnerID, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.CreatedAt = l.CreatedAt.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}
