package cash

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/weavetest"
)

// feeTx is a transaction declaring a fee.
type feeTx struct {
	weavetest.Tx
	Fee *FeeInfo
}

var _ FeeTx = (*feeTx)(nil)

func (tx *feeTx) GetFees() *FeeInfo {
	return tx.Fee
}

func newFeeTx(msg lockbox.Msg, fee *FeeInfo) *feeTx {
	return &feeTx{Tx: weavetest.Tx{Msg: msg}, Fee: fee}
}

func saveConf(db lockbox.KVStore, collector lockbox.Address, minimal uint64) {
	conf := Configuration{CollectorAddress: collector, MinimalFee: minimal}
	if err := gconf.Save(db, confPkg, &conf); err != nil {
		panic(err)
	}
}
