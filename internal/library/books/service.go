package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

// ===== Operações =====

func (s *Service) CreateBook(ctx context.Context, in CreateBookRequest) (BookResponse, error) {
	if strings.TrimSpace(in.Nome) == "" || strings.TrimSpace(in.Autor) == "" ||
		strings.TrimSpace(in.Editora) == "" {
		return BookResponse{}, ErrInvalid("nome, autor e editora são obrigatórios")
	}

	id, err := s.store.Insert(ctx, in.Nome, in.Autor, in.Editora)
	if err != nil {
		// o detalhe do erro é devolvido ao cliente, como no contrato original
		log.Printf("[WARN] erro ao adicionar livro '%s': %v", in.Nome, err)
		return BookResponse{}, ErrInvalid(err.Error())
	}

	return BookResponse{ID: id, Nome: in.Nome, Autor: in.Autor, Editora: in.Editora}, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]BookResponse, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return buildResponses(rows)
}

func (s *Service) GetBooksByTitle(ctx context.Context, nome string) ([]BookResponse, error) {
	rows, err := s.store.GetByTitle(ctx, nome)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		log.Printf("[WARN] erro ao buscar livro '%s': não encontrado", nome)
		return nil, ErrNotFound("Livro não encontrado na base :/")
	}
	return buildResponses(rows)
}

// DeleteBookByID busca o primeiro registro com o id informado antes de
// remover; sem registro, a operação falha com not found.
func (s *Service) DeleteBookByID(ctx context.Context, id int64) (BookResponse, error) {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("[WARN] erro ao deletar livro #%d: não encontrado", id)
			return BookResponse{}, ErrNotFound("Livro não encontrado na base :/")
		}
		return BookResponse{}, err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return BookResponse{}, err
	}
	return BookResponse{ID: r.ID, Nome: r.Nome, Autor: r.Autor, Editora: r.Editora}, nil
}

func (s *Service) DeleteAllBooks(ctx context.Context) error {
	exists, err := s.store.Any(ctx)
	if err != nil {
		log.Printf("[WARN] erro ao deletar todos os livros: %v", err)
		return ErrInternal("Algo deu errado")
	}
	if !exists {
		log.Printf("[WARN] a base de livros já está vazia")
		return ErrInvalid("A base de livros já está vazia")
	}
	if err := s.store.DeleteAll(ctx); err != nil {
		log.Printf("[WARN] erro ao deletar todos os livros: %v", err)
		return ErrInternal("Algo deu errado")
	}
	return nil
}

// buildResponses monta a visão dos livros. Um emprestado_para_id presente
// sem usuário resolvido indica inconsistência na base e vira erro interno,
// nunca um emprestado_para nulo silencioso.
func buildResponses(rows []bookRow) ([]BookResponse, error) {
	out := make([]BookResponse, 0, len(rows))
	for _, r := range rows {
		if r.EmprestadoParaID.Valid && !r.EmprestadoNome.Valid {
			log.Printf("[WARN] livro #%d referencia usuário #%d inexistente", r.ID, r.EmprestadoParaID.Int64)
			return nil, ErrInternal("Algo deu errado")
		}
		resp := BookResponse{ID: r.ID, Nome: r.Nome, Autor: r.Autor, Editora: r.Editora}
		if r.EmprestadoNome.Valid {
			v := r.EmprestadoNome.String
			resp.EmprestadoPara = &v
		}
		out = append(out, resp)
	}
	return out, nil
}
