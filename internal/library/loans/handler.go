package loans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.PUT("/livro", h.BorrowBook)
	r.PUT("/livroDevolve", h.ReturnBook)
}

// ===== handlers =====

// PUT /livro?livro_id=&usuario_nome=
func (h *Handler) BorrowBook(c *gin.Context) {
	livroID, err := strconv.ParseInt(c.Query("livro_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, mensagem("livro_id deve ser numérico"))
		return
	}
	msg, err := h.svc.BorrowBook(c.Request.Context(), livroID, c.Query("usuario_nome"))
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, mensagem(msg))
}

// PUT /livroDevolve?id=
func (h *Handler) ReturnBook(c *gin.Context) {
	livroID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, mensagem("id deve ser numérico"))
		return
	}
	msg, err := h.svc.ReturnBook(c.Request.Context(), livroID)
	if err != nil {
		c.JSON(toHTTPStatus(err), mensagemFrom(err))
		return
	}
	c.JSON(http.StatusOK, mensagem(msg))
}

// ===== helpers =====

func mensagem(msg string) gin.H { return gin.H{"mensagem": msg} }

func mensagemFrom(err error) gin.H {
	var api *APIError
	if errors.As(err, &api) {
		return mensagem(api.Message)
	}
	return mensagem("Erro não identificado: " + err.Error())
}
