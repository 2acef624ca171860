package loans

import "database/sql"

// livroRow é a projeção mínima de um livro usada pela transição
// empresta/devolve.
type livroRow struct {
	ID               int64
	Nome             string
	EmprestadoParaID sql.NullInt64
}

type usuarioRow struct {
	ID   int64
	Nome string
}
