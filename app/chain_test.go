package app

import (
	"context"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/weavetest"
	"github.com/iov-one/lockbox/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	c3 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		panicAtHeightDecorator(6),
		c3,
	).WithHandler(h)

	bg := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(bg, nil, tx)
	assert.NoError(t, err)
	ctx := lockbox.WithHeight(bg, 4)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// now, let's trigger a panic
	ctx = lockbox.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	// the panic happens before the call reaches c3
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainSkipsNil(t *testing.T) {
	var missing *weavetest.Decorator
	c := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(nil, missing).Chain(c, nil).WithHandler(h)
	_, err := stack.Deliver(context.Background(), nil, &weavetest.Tx{})
	assert.NoError(t, err)
	assert.Equal(t, 1, c.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

// panicAtHeightDecorator panics if the height in the context is greater
// than its value.
type panicAtHeightDecorator int64

var _ lockbox.Decorator = panicAtHeightDecorator(0)

func (p panicAtHeightDecorator) Check(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	if val, _ := lockbox.GetHeight(ctx); val > int64(p) {
		panic("too high")
	}
	return next.Check(ctx, store, tx)
}

func (p panicAtHeightDecorator) Deliver(ctx lockbox.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	if val, _ := lockbox.GetHeight(ctx); val > int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, store, tx)
}
