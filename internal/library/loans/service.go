package loans

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"biblioteca-backend/internal/platform/db"
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service {
	return &Service{db: conn, store: NewStore(conn)}
}

// BorrowBook marca o livro como emprestado ao usuário indicado. Um livro já
// emprestado é reatribuído ao novo tomador, como no contrato original; a
// mutação inteira roda em uma transação de registro único.
func (s *Service) BorrowBook(ctx context.Context, livroID int64, usuarioNome string) (string, error) {
	if usuarioNome == "" {
		return "", ErrInvalid("usuario_nome é obrigatório")
	}

	var msg string
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		livro, err := s.store.GetLivroTx(ctx, tx, livroID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound(fmt.Sprintf("livro de id #%d não encontrado", livroID))
			}
			return err
		}

		usuario, err := s.store.GetUsuarioByNomeTx(ctx, tx, usuarioNome)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound(fmt.Sprintf("Usuário de nome %s não encontrado", usuarioNome))
			}
			return err
		}

		if err := s.store.SetEmprestadoParaTx(ctx, tx, livro.ID, sql.NullInt64{Int64: usuario.ID, Valid: true}); err != nil {
			return err
		}
		msg = fmt.Sprintf("O livro de id: %d, %s, foi emprestado para %s", livro.ID, livro.Nome, usuario.Nome)
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Printf("[INFO] %s", msg)
	return msg, nil
}

// ReturnBook devolve um livro emprestado. Um livro que não está emprestado
// não tem o que devolver e a operação falha com not found.
func (s *Service) ReturnBook(ctx context.Context, livroID int64) (string, error) {
	var msg string
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		livro, err := s.store.GetLivroTx(ctx, tx, livroID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound(fmt.Sprintf("livro de id #%d não encontrado", livroID))
			}
			return err
		}
		if !livro.EmprestadoParaID.Valid {
			return ErrNotFound(fmt.Sprintf("livro de id #%d não estava emprestado", livroID))
		}

		if err := s.store.SetEmprestadoParaTx(ctx, tx, livro.ID, sql.NullInt64{}); err != nil {
			return err
		}
		msg = fmt.Sprintf("O livro de id: %d, %s, foi devolvido.", livro.ID, livro.Nome)
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Printf("[INFO] %s", msg)
	return msg, nil
}
