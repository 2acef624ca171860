package books

import (
	"context"
	"database/sql"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

type bookRow struct {
	ID               int64
	Nome             string
	Autor            string
	Editora          string
	EmprestadoParaID sql.NullInt64
	// nome do usuário resolvido pelo LEFT JOIN; nulo quando o livro
	// está disponível (ou, em inconsistência, quando a FK não resolve)
	EmprestadoNome sql.NullString
}

const selectBook = `
	SELECT l.id, l.nome, l.autor, l.editora, l.emprestado_para_id, u.nome
	FROM livro l
	LEFT JOIN usuario u ON u.id = l.emprestado_para_id`

func (s *Store) Insert(ctx context.Context, nome, autor, editora string) (int64, error) {
	const q = `INSERT INTO livro (nome, autor, editora, data_insercao) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q, nome, autor, editora)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) List(ctx context.Context) ([]bookRow, error) {
	rows, err := s.db.QueryContext(ctx, selectBook)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (s *Store) GetByTitle(ctx context.Context, nome string) ([]bookRow, error) {
	rows, err := s.db.QueryContext(ctx, selectBook+` WHERE l.nome = ?`, nome)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (s *Store) GetByID(ctx context.Context, id int64) (*bookRow, error) {
	var r bookRow
	err := s.db.QueryRowContext(ctx, selectBook+` WHERE l.id = ?`, id).Scan(
		&r.ID, &r.Nome, &r.Autor, &r.Editora, &r.EmprestadoParaID, &r.EmprestadoNome,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM livro WHERE id = ?`, id)
	return err
}

// Any informa se existe ao menos um livro cadastrado.
func (s *Store) Any(ctx context.Context) (bool, error) {
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM livro LIMIT 1`).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM livro`)
	return err
}

func scanBooks(rows *sql.Rows) ([]bookRow, error) {
	var out []bookRow
	for rows.Next() {
		var r bookRow
		if err := rows.Scan(&r.ID, &r.Nome, &r.Autor, &r.Editora, &r.EmprestadoParaID, &r.EmprestadoNome); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
