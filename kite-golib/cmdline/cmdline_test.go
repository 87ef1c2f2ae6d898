package cmdline

import (
	"bytes"
	"testing"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greetArgs struct {
	Name  string `arg:"--name,required"`
	Times int    `arg:"--times"`

	greeted []string
}

func (a *greetArgs) Validate() error {
	if a.Times < 0 {
		return errors.Errorf("times must be non-negative")
	}
	return nil
}

func (a *greetArgs) Handle() error {
	for i := 0; i < a.Times; i++ {
		a.greeted = append(a.greeted, a.Name)
	}
	return nil
}

type failArgs struct{}

func (*failArgs) Handle() error { return errors.New("boom") }

func TestDispatch(t *testing.T) {
	greet := &greetArgs{Times: 1}
	cmds := []Command{
		{Name: "greet", Synopsis: "say hello", Args: greet},
		{Name: "fail", Synopsis: "always fails", Args: &failArgs{}},
	}

	var out bytes.Buffer
	require.NoError(t, Dispatch(&out, []string{"greet", "--name", "kite", "--times", "2"}, cmds...))
	assert.Equal(t, []string{"kite", "kite"}, greet.greeted)

	err := Dispatch(&out, []string{"fail"}, cmds...)
	assert.EqualError(t, err, "boom")
}

func TestDispatchUsage(t *testing.T) {
	cmds := []Command{{Name: "greet", Synopsis: "say hello", Args: &greetArgs{}}}

	var out bytes.Buffer
	err := Dispatch(&out, nil, cmds...)
	assert.IsType(t, UsageError{}, err)
	assert.Contains(t, out.String(), "say hello")

	out.Reset()
	err = Dispatch(&out, []string{"wave"}, cmds...)
	assert.IsType(t, UsageError{}, err)

	err = Dispatch(&out, []string{"greet"}, cmds...)
	assert.IsType(t, UsageError{}, err)

	err = Dispatch(&out, []string{"greet", "--name", "kite", "--times=-1"}, cmds...)
	assert.IsType(t, UsageError{}, err)

	out.Reset()
	err = Dispatch(&out, []string{"help", "greet"}, cmds...)
	assert.Equal(t, ErrHelp, err)
	assert.Contains(t, out.String(), "--name")
}
