package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEngine struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubEngine) Name() string     { return s.name }
func (s *stubEngine) GetModel() string { return s.name + "-model" }
func (s *stubEngine) Generate(ctx context.Context, system, user string, atts []Attachment) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestChainNamedEngine(t *testing.T) {
	a := &stubEngine{name: "a", text: "from a"}
	b := &stubEngine{name: "b", text: "from b"}
	c := NewChain(NewEngines(a, b), 100, zap.NewNop())

	res, err := c.Generate(context.Background(), "b", "sys", "user", nil)
	require.NoError(t, err)
	assert.Equal(t, "from b", res.Text)
	assert.Equal(t, "b", res.Engine)
	assert.Equal(t, 0, a.calls)
}

func TestChainNamedEngineNoFallback(t *testing.T) {
	a := &stubEngine{name: "a", err: errors.New("down")}
	b := &stubEngine{name: "b", text: "from b"}
	c := NewChain(NewEngines(a, b), 100, zap.NewNop())

	_, err := c.Generate(context.Background(), "a", "sys", "user", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, b.calls)
}

func TestChainFallbackOrder(t *testing.T) {
	a := &stubEngine{name: "a", err: errors.New("down")}
	b := &stubEngine{name: "b", text: "from b"}
	c := NewChain(NewEngines(a, b), 100, zap.NewNop())

	res, err := c.Generate(context.Background(), "", "sys", "user", nil)
	require.NoError(t, err)
	assert.Equal(t, "from b", res.Text)
	assert.Equal(t, 1, a.calls)
}

func TestChainAllFail(t *testing.T) {
	a := &stubEngine{name: "a", err: errors.New("down")}
	c := NewChain(NewEngines(a), 100, zap.NewNop())

	_, err := c.Generate(context.Background(), "", "sys", "user", nil)
	assert.ErrorContains(t, err, "all engines failed")
}

func TestEnginesGetUnknown(t *testing.T) {
	e := NewEngines(&stubEngine{name: "a"})
	_, err := e.Get("nope")
	assert.Error(t, err)
}

func TestManagerPerChat(t *testing.T) {
	def := &stubEngine{name: "def"}
	other := &stubEngine{name: "other"}
	m := NewManager(def)

	assert.Equal(t, def, m.Get(1))
	m.Set(1, other)
	assert.Equal(t, other, m.Get(1))
	assert.Equal(t, def, m.Get(2))
}
