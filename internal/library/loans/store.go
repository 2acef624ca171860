package loans

import (
	"context"
	"database/sql"

	"biblioteca-backend/internal/platform/db"
)

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) GetLivroTx(ctx context.Context, tx db.DBTX, id int64) (*livroRow, error) {
	const q = `SELECT id, nome, emprestado_para_id FROM livro WHERE id = ?`
	var r livroRow
	if err := tx.QueryRowContext(ctx, q, id).Scan(&r.ID, &r.Nome, &r.EmprestadoParaID); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetUsuarioByNomeTx(ctx context.Context, tx db.DBTX, nome string) (*usuarioRow, error) {
	const q = `SELECT id, nome FROM usuario WHERE nome = ? LIMIT 1`
	var r usuarioRow
	if err := tx.QueryRowContext(ctx, q, nome).Scan(&r.ID, &r.Nome); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) SetEmprestadoParaTx(ctx context.Context, tx db.DBTX, livroID int64, usuarioID sql.NullInt64) error {
	const q = `UPDATE livro SET emprestado_para_id = ? WHERE id = ?`
	// RowsAffected não é conferido: o MySQL reporta 0 quando o valor
	// não muda (re-empréstimo para o mesmo usuário)
	_, err := tx.ExecContext(ctx, q, usuarioID, livroID)
	return err
}
