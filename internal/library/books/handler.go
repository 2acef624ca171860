package books

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/livro", h.CreateBook)
	r.GET("/livros", h.ListBooks)
	r.GET("/livro", h.GetBooks)
	r.DELETE("/livro", h.DeleteBook)
	r.DELETE("/livros", h.DeleteAllBooks)
}

// ===== handlers =====

func (h *Handler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mensagem(err.Error()))
		return
	}
	res, err := h.svc.CreateBook(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListBooks(c *gin.Context) {
	res, err := h.svc.ListBooks(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	if len(res) == 0 {
		// estado vazio não é erro
		c.JSON(http.StatusOK, gin.H{"livros": "Não há livros cadatrados"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"livros": res})
}

func (h *Handler) GetBooks(c *gin.Context) {
	nome := c.Query("nome")
	res, err := h.svc.GetBooksByTitle(c.Request.Context(), nome)
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"livros": res})
}

func (h *Handler) DeleteBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, mensagem("id deve ser numérico"))
		return
	}
	res, err := h.svc.DeleteBookByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Livro removido", "id": res.ID, "nome": res.Nome})
}

func (h *Handler) DeleteAllBooks(c *gin.Context) {
	if err := h.svc.DeleteAllBooks(c.Request.Context()); err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todos os livros foram deletados com sucesso"})
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
