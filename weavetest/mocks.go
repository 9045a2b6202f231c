package weavetest

import "github.com/iov-one/lockbox"

// calls counts the invocations of a mock, failed ones included.
type calls struct {
	check, deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler answers with CheckResult and DeliverResult, or with CheckErr
// and DeliverErr when those are set.
type Handler struct {
	calls
	CheckResult   lockbox.CheckResult
	CheckErr      error
	DeliverResult lockbox.DeliverResult
	DeliverErr    error
}

var _ lockbox.Handler = (*Handler)(nil)

func (h *Handler) Check(lockbox.Context, lockbox.KVStore, lockbox.Tx) (*lockbox.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(lockbox.Context, lockbox.KVStore, lockbox.Tx) (*lockbox.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator fails with CheckErr or DeliverErr when set and otherwise
// passes the call down.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ lockbox.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate puts d in front of h.
func Decorate(h lockbox.Handler, d lockbox.Decorator) lockbox.Handler {
	return decorated{d: d, next: h}
}

type decorated struct {
	d    lockbox.Decorator
	next lockbox.Handler
}

func (x decorated) Check(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.CheckResult, error) {
	return x.d.Check(ctx, db, tx, x.next)
}

func (x decorated) Deliver(ctx lockbox.Context, db lockbox.KVStore, tx lockbox.Tx) (*lockbox.DeliverResult, error) {
	return x.d.Deliver(ctx, db, tx, x.next)
}

// WriteHandler stores Value under Key on every call, then fails with Err
// if set. The write stays in db either way.
type WriteHandler struct {
	Key, Value []byte
	Err        error
}

var _ lockbox.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) write(db lockbox.KVStore) error {
	if err := db.Set(h.Key, h.Value); err != nil {
		return err
	}
	return h.Err
}

func (h *WriteHandler) Check(_ lockbox.Context, db lockbox.KVStore, _ lockbox.Tx) (*lockbox.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &lockbox.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(_ lockbox.Context, db lockbox.KVStore, _ lockbox.Tx) (*lockbox.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &lockbox.DeliverResult{}, nil
}

// PanicHandler panics with Msg.
type PanicHandler struct {
	Msg string
}

func (h PanicHandler) Check(lockbox.Context, lockbox.KVStore, lockbox.Tx) (*lockbox.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(lockbox.Context, lockbox.KVStore, lockbox.Tx) (*lockbox.DeliverResult, error) {
	panic(h.Msg)
}
