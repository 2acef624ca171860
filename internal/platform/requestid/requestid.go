package requestid

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	Header = "X-Request-Id"
	CtxKey = "request_id"
)

// New propaga o X-Request-Id recebido ou gera um ULID quando ausente.
// O id volta no cabeçalho da resposta e fica no contexto do gin para
// correlação nos logs.
func New() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(Header))
		if id == "" {
			id = ulid.Make().String()
		}
		c.Header(Header, id)
		c.Set(CtxKey, id)
		c.Next()
	}
}

// FromContext retorna o id da requisição atual, ou "" se não houver.
func FromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(CtxKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
