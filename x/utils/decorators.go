package utils

import (
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// Recovery turns a panic further down the stack into an ErrPanic error.
type Recovery struct{}

var _ lockbox.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (_ *lockbox.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (_ *lockbox.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

// Logging logs the outcome and duration of every call with the path of
// the message. Failures are errors, deliveries info and checks debug.
type Logging struct{}

var _ lockbox.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("check failed", "err", err)
	} else {
		logger.Debug("checked", "log", res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("deliver failed", "err", err)
	} else {
		logger.Info("delivered", "log", res.Log)
	}
	return res, err
}

func txLogger(ctx lockbox.Context, tx lockbox.Tx, start time.Time) log.Logger {
	return lockbox.GetLogger(ctx).With(
		"path", lockbox.GetPath(tx),
		"micros", time.Since(start).Microseconds())
}

// ActionKey is the tag ActionTagger adds to a delivered transaction. Its
// value is the path of the message, so clients can subscribe to every
// claim or cancel.
const ActionKey = "action"

// ActionTagger tags successful deliveries with the message path.
type ActionTagger struct{}

var _ lockbox.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver fails before running the handler if the message cannot be read.
func (ActionTagger) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return nil, err
	case msg == nil:
		return nil, errors.Wrap(errors.ErrMsg, "missing msg")
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}

// Savepoint runs the rest of the stack on a cache of the store and
// writes it back only when the call succeeds. It does nothing until
// enabled with OnCheck or OnDeliver.
type Savepoint struct {
	check, deliver bool
}

var _ lockbox.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	var res *lockbox.CheckResult
	err := isolate(s.check, db, func(db lockbox.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	var res *lockbox.DeliverResult
	err := isolate(s.deliver, db, func(db lockbox.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate runs fn on a cache of db when enabled and db can be cached.
func isolate(enabled bool, db lockbox.KVStore, fn func(lockbox.KVStore) error) error {
	cacheable, ok := db.(lockbox.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
