package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mattn/go-sqlite3"
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

// violação de UNIQUE, por driver (MySQL 1062 / SQLite constraint unique)
func isDuplicateErr(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

// ===== Operações =====

func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (UserResponse, error) {
	if strings.TrimSpace(in.Nome) == "" {
		return UserResponse{}, ErrInvalid("Não foi possível salvar novo item :/")
	}

	id, err := s.store.Insert(ctx, in.Nome, in.Idade)
	if err != nil {
		if isDuplicateErr(err) {
			log.Printf("[WARN] usuário '%s' duplicado", in.Nome)
			return UserResponse{}, ErrConflict("Usuario de mesmo nome já salvo na base :/")
		}
		log.Printf("[WARN] erro ao adicionar usuário '%s': %v", in.Nome, err)
		return UserResponse{}, ErrInvalid("Não foi possível salvar novo item :/")
	}

	return UserResponse{ID: id, Nome: in.Nome, Idade: in.Idade}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]UserListItem, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserListItem{Nome: r.Nome, Idade: idadePtr(r.Idade)})
	}
	return out, nil
}

func (s *Service) GetUserByName(ctx context.Context, nome string) (UserResponse, error) {
	r, err := s.store.GetByName(ctx, nome)
	if err != nil {
		if err == sql.ErrNoRows {
			return UserResponse{}, ErrNotFound("Usuário não encontrado na base :/")
		}
		return UserResponse{}, err
	}
	return UserResponse{ID: r.ID, Nome: r.Nome, Idade: idadePtr(r.Idade)}, nil
}

// DeleteUserByName remove todas as linhas com o nome exato. O nome chega
// decodificado duas vezes pelo handler (tolerância a entrada duplamente
// percent-encoded vinda do transporte).
func (s *Service) DeleteUserByName(ctx context.Context, nome string) (int64, error) {
	count, err := s.store.DeleteByName(ctx, nome)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		log.Printf("[WARN] erro ao deletar usuário '%s': não encontrado", nome)
		return 0, ErrNotFound("Usuario não encontrado na base :/")
	}
	return count, nil
}

func (s *Service) DeleteAllUsers(ctx context.Context) error {
	exists, err := s.store.Any(ctx)
	if err != nil {
		log.Printf("[WARN] erro ao deletar todos os usuários: %v", err)
		return ErrInternal("Algo deu errado")
	}
	if !exists {
		log.Printf("[WARN] a base de usuários já está vazia")
		return ErrInvalid("A base de usuários já está vazia")
	}
	if err := s.store.DeleteAll(ctx); err != nil {
		log.Printf("[WARN] erro ao deletar todos os usuários: %v", err)
		return ErrInternal("Algo deu errado")
	}
	return nil
}

// DecodeNome aplica o percent-decode duas vezes, preservando o valor
// original quando a sequência não é decodificável. PathUnescape decodifica
// apenas sequências percent: um '+' literal no nome é mantido.
func DecodeNome(nome string) string {
	for i := 0; i < 2; i++ {
		if d, err := url.PathUnescape(nome); err == nil {
			nome = d
		}
	}
	return nome
}

func idadePtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
