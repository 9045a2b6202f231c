package app

import (
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestBaseApp(t *testing.T) {
	decoder := func(raw []byte) (lockbox.Tx, error) {
		switch string(raw) {
		case "panic":
			panic("cannot decode")
		case "bad":
			return nil, errors.Wrap(errors.ErrInput, "bad tx")
		}
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
	}
	handler := &weavetest.WriteHandler{Key: []byte("written"), Value: []byte("yes")}

	app := NewBaseApp(newTestStoreApp(t), decoder, handler, false)
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})

	chres := app.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(0), chres.Code, chres.Log)
	has, err := app.DeliverStore().Has([]byte("written"))
	require.NoError(t, err)
	assert.False(t, has, "check must not modify deliver state")

	dres := app.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), dres.Code, dres.Log)
	has, err = app.DeliverStore().Has([]byte("written"))
	require.NoError(t, err)
	assert.True(t, has)

	dres = app.DeliverTx([]byte("bad"))
	assert.Equal(t, errors.ErrInput.ABCICode(), dres.Code)

	chres = app.CheckTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), chres.Code)
}
