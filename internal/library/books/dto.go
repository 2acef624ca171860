package books

// requisição de cadastro de livro
type CreateBookRequest struct {
	Nome    string `json:"nome" binding:"required"`
	Autor   string `json:"autor" binding:"required"`
	Editora string `json:"editora" binding:"required"`
}

// visão de um livro, com o nome do usuário que o tomou emprestado
// (nulo quando o livro está disponível)
type BookResponse struct {
	ID             int64   `json:"id"`
	Nome           string  `json:"nome"`
	Autor          string  `json:"autor"`
	Editora        string  `json:"editora"`
	EmprestadoPara *string `json:"emprestado_para"`
}
