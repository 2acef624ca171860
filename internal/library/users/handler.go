package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/usuario", h.CreateUser)
	r.GET("/usuarios", h.ListUsers)
	r.GET("/usuario", h.GetUser)
	r.DELETE("/usuario", h.DeleteUser)
	r.DELETE("/usuarios", h.DeleteAllUsers)
}

// ===== handlers =====

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mensagem("Não foi possível salvar novo item :/"))
		return
	}
	res, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListUsers(c *gin.Context) {
	res, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	if len(res) == 0 {
		// estado vazio não é erro
		c.JSON(http.StatusOK, gin.H{"usuários": "Não há usuários cadastrados"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuarios": res})
}

func (h *Handler) GetUser(c *gin.Context) {
	nome := c.Query("nome")
	res, err := h.svc.GetUserByName(c.Request.Context(), nome)
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	nome := DecodeNome(c.Query("nome"))
	if _, err := h.svc.DeleteUserByName(c.Request.Context(), nome); err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Usuário removido", "nome": nome})
}

func (h *Handler) DeleteAllUsers(c *gin.Context) {
	if err := h.svc.DeleteAllUsers(c.Request.Context()); err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todos os usuários foram deletados com sucesso"})
}

// ===== helpers =====

func mensagem(msg string) gin.H { return gin.H{"mensagem": msg} }

func mensagemFrom(err error) gin.H {
	var api *APIError
	if errors.As(err, &api) {
		return mensagem(api.Message)
	}
	return mensagem(err.Error())
}
