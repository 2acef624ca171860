package users

// requisição de cadastro de usuário
type CreateUserRequest struct {
	Nome  string `json:"nome" binding:"required"`
	Idade *int   `json:"idade"`
}

// visão de um usuário
type UserResponse struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Idade *int   `json:"idade"`
}

// item da listagem (a listagem não expõe o id)
type UserListItem struct {
	Nome  string `json:"nome"`
	Idade *int   `json:"idade"`
}
