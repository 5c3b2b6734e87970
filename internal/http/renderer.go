package httpx

import (
	"net/http"

	"github.com/oaltun/fief/internal/domain/model"
)

// Renderer turns a register page payload into a response. Template engines
// and localization live behind this interface; the core only produces the
// payload.
type Renderer interface {
	RenderRegister(w http.ResponseWriter, r *http.Request, status int, page model.RegisterPage)
}

// JSONRenderer is the default Renderer: it emits the page payload as JSON,
// which keeps the flow fully testable without any template technology.
type JSONRenderer struct{}

func (JSONRenderer) RenderRegister(w http.ResponseWriter, _ *http.Request, status int, page model.RegisterPage) {
	WriteJSON(w, status, page)
}
