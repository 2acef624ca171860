package users

import (
	"context"
	"database/sql"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

type userRow struct {
	ID    int64
	Nome  string
	Idade sql.NullInt64
}

func (s *Store) Insert(ctx context.Context, nome string, idade *int) (int64, error) {
	const q = `INSERT INTO usuario (nome, idade, data_insercao) VALUES (?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q, nome, idadeOrNil(idade))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) List(ctx context.Context) ([]userRow, error) {
	const q = `SELECT id, nome, idade FROM usuario`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []userRow
	for rows.Next() {
		var r userRow
		if err := rows.Scan(&r.ID, &r.Nome, &r.Idade); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetByName(ctx context.Context, nome string) (*userRow, error) {
	const q = `SELECT id, nome, idade FROM usuario WHERE nome = ? LIMIT 1`
	var r userRow
	if err := s.db.QueryRowContext(ctx, q, nome).Scan(&r.ID, &r.Nome, &r.Idade); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) DeleteByName(ctx context.Context, nome string) (int64, error) {
	const q = `DELETE FROM usuario WHERE nome = ?`
	res, err := s.db.ExecContext(ctx, q, nome)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Any informa se existe ao menos um usuário cadastrado.
func (s *Store) Any(ctx context.Context) (bool, error) {
	const q = `SELECT id FROM usuario LIMIT 1`
	var id int64
	if err := s.db.QueryRowContext(ctx, q).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM usuario`)
	return err
}

func idadeOrNil(idade *int) any {
	if idade == nil {
		return nil
	}
	return *idade
}
