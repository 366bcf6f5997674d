package rendering

import (
	"bytes"
	"fmt"

	"github.com/labstack/echo/v4"
	"maragu.dev/gomponents"
)

// Renderer defines the contract for rendering gomponents nodes.
type Renderer interface {
	// RenderComponent renders a node to a slice of bytes. Useful for HTMX
	// fragments or WebSockets.
	RenderComponent(node gomponents.Node) ([]byte, error)

	// RenderPage writes a node as a full HTTP response.
	RenderPage(c echo.Context, status int, node gomponents.Node) error
}

// NodeRenderer is the concrete Renderer.
type NodeRenderer struct{}

// Compile-time interface compliance check
var _ Renderer = (*NodeRenderer)(nil)

// NewNodeRenderer creates a new NodeRenderer instance.
func NewNodeRenderer() *NodeRenderer {
	return &NodeRenderer{}
}

// RenderComponent implements the Renderer interface.
func (r *NodeRenderer) RenderComponent(node gomponents.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements the Renderer interface. The node is rendered into a
// buffer first so a failing node still yields a clean error response.
func (r *NodeRenderer) RenderPage(c echo.Context, status int, node gomponents.Node) error {
	body, err := r.RenderComponent(node)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, body)
}
