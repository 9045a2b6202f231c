package escrow

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/x/cash"
)

const optKey = "escrow"

// GenesisEscrow is an escrow declared in the genesis file. Its custody
// account is funded by minting, so the depositor balance is not touched.
type GenesisEscrow struct {
	Depositor lockbox.Address `json:"depositor"`
	Recipient lockbox.Address `json:"recipient"`
	Amount    uint64          `json:"amount"`
	EscrowID  uint64          `json:"escrow_id"`
}

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct {
	Minter cash.CoinMinter
}

var _ lockbox.Initializer = (*Initializer)(nil)

// FromGenesis stores the escrow configuration, when declared, and creates
// the genesis escrows.
func (i *Initializer) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	switch err := gconf.InitConfig(db, opts, confPkg, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init config")
	}

	var escrows []GenesisEscrow
	if err := opts.ReadOptions(optKey, &escrows); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(escrows) == 0 {
		return nil
	}
	if i.Minter == nil {
		return errors.Wrap(errors.ErrHuman, "genesis escrows require a minter")
	}

	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	reservation, err := conf.Reservation()
	if err != nil {
		return err
	}
	bucket := NewBucket()
	for j, e := range escrows {
		addr, salt, err := DeriveAddress(e.Depositor, e.EscrowID)
		if err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		escrow := &Escrow{
			Depositor: e.Depositor,
			Recipient: e.Recipient,
			Amount:    e.Amount,
			Salt:      salt,
			EscrowID:  e.EscrowID,
		}
		if err := bucket.Create(db, addr, escrow); err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		total := e.Amount + reservation
		if total < e.Amount {
			return errors.Wrapf(errors.ErrOverflow, "escrow %d", j)
		}
		if err := i.Minter.CoinMint(db, addr, total); err != nil {
			return errors.Wrapf(err, "escrow %d: fund custody", j)
		}
	}
	return nil
}
