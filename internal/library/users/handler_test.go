package users_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/library/users"
)

func setupRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_fk=1", filepath.Join(t.TempDir(), "test.db"))
	conn, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(`CREATE TABLE usuario (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		nome          VARCHAR(140) NOT NULL UNIQUE,
		idade         INTEGER,
		data_insercao DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	users.RegisterRoutes(r, users.NewService(conn))
	return r, conn
}

func do(t *testing.T, r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateUser_RoundTrip(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Ana", "idade": 30})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotZero(t, body["id"])
	assert.Equal(t, "Ana", body["nome"])
	assert.Equal(t, float64(30), body["idade"])

	w = do(t, r, http.MethodGet, "/usuario?nome=Ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Ana", body["nome"])
	assert.Equal(t, float64(30), body["idade"])
}

func TestCreateUser_IdadeOpcional(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Rui"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Nil(t, body["idade"])
}

func TestCreateUser_DuplicateName(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Bob", "idade": 25})
	require.Equal(t, http.StatusOK, w.Code)

	// segunda inserção falha sem alterar o registro existente
	w = do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Bob", "idade": 40})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Usuario de mesmo nome já salvo na base :/", decode(t, w)["mensagem"])

	w = do(t, r, http.MethodGet, "/usuario?nome=Bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(25), decode(t, w)["idade"])

	w = do(t, r, http.MethodGet, "/usuarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lista, ok := decode(t, w)["usuarios"].([]any)
	require.True(t, ok)
	assert.Len(t, lista, 1)
}

func TestListUsers_Empty(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/usuarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Não há usuários cadastrados", decode(t, w)["usuários"])
}

func TestGetUser_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/usuario?nome=Ninguem", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Usuário não encontrado na base :/", decode(t, w)["mensagem"])
}

func TestDeleteUser(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Ana", "idade": 30})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/usuario?nome=Ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Usuário removido", body["mensagem"])
	assert.Equal(t, "Ana", body["nome"])

	w = do(t, r, http.MethodGet, "/usuario?nome=Ana", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_DoubleEncodedName(t *testing.T) {
	r, _ := setupRouter(t)

	nome := "João da Silva"
	w := do(t, r, http.MethodPost, "/usuario", gin.H{"nome": nome, "idade": 41})
	require.Equal(t, http.StatusOK, w.Code)

	// transporte decodifica uma vez; o handler tolera a dupla codificação
	target := "/usuario?nome=" + url.PathEscape(url.PathEscape(nome))
	w = do(t, r, http.MethodDelete, target, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, nome, decode(t, w)["nome"])
}

func TestDeleteUser_NameWithPlus(t *testing.T) {
	r, _ := setupRouter(t)

	nome := "A+B"
	w := do(t, r, http.MethodPost, "/usuario", gin.H{"nome": nome, "idade": 33})
	require.Equal(t, http.StatusOK, w.Code)

	// requisição corretamente codificada uma única vez: o '+' literal do
	// nome chega como %2B e sobrevive ao percent-decode duplo
	w = do(t, r, http.MethodDelete, "/usuario?nome="+url.QueryEscape(nome), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, nome, decode(t, w)["nome"])

	w = do(t, r, http.MethodGet, "/usuario?nome="+url.QueryEscape(nome), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_NotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Ana", "idade": 30})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/usuario?nome=Ninguem", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// a base permanece intacta
	w = do(t, r, http.MethodGet, "/usuario?nome=Ana", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAllUsers(t *testing.T) {
	r, _ := setupRouter(t)

	// base vazia: nada a deletar é erro do cliente
	w := do(t, r, http.MethodDelete, "/usuarios", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A base de usuários já está vazia", decode(t, w)["mensagem"])

	do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Ana", "idade": 30})
	do(t, r, http.MethodPost, "/usuario", gin.H{"nome": "Bob", "idade": 25})

	w = do(t, r, http.MethodDelete, "/usuarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Todos os usuários foram deletados com sucesso", decode(t, w)["message"])

	w = do(t, r, http.MethodGet, "/usuarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "usuários")
}
