package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp is the storage half of the ABCI application: it owns the
// state, answers Info and Query, loads the genesis and commits blocks.
// BaseApp adds the transaction calls on top of it.
//
// InitChain, BeginBlock and Commit carry no user input. Tendermint cannot
// recover from their failure, so they panic.
type StoreApp struct {
	name    string
	logger  log.Logger
	state   *state
	queries lockbox.QueryRouter
	init    lockbox.Initializer

	// chainID is empty until the genesis is loaded.
	chainID string
	// base is valid for the lifetime of the app, block is rebuilt on
	// every BeginBlock.
	base  lockbox.Context
	block lockbox.Context
}

// NewStoreApp loads the latest version of root. It panics if the state
// cannot be read.
func NewStoreApp(name string, root lockbox.CommitKVStore, queries lockbox.QueryRouter, ctx lockbox.Context) *StoreApp {
	st, err := loadState(root)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:    name,
		state:   st,
		queries: queries,
		base:    ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(st.deliver); err != nil {
		panic(err)
	}
	if s.chainID != "" {
		s.base = lockbox.WithChainID(s.base, s.chainID)
	}
	info, err := root.LatestVersion()
	if err != nil {
		panic(err)
	}
	s.block = lockbox.WithHeight(s.base, info.Version)
	return s
}

// WithInit sets the genesis initializer used by InitChain.
func (s *StoreApp) WithInit(init lockbox.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithLogger sets the application logger, which is also the base logger
// of every transaction context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.base = lockbox.WithLogger(s.base, logger)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext describes the block being executed.
func (s *StoreApp) BlockContext() lockbox.Context {
	return s.block
}

// DeliverStore is the state DeliverTx works on.
func (s *StoreApp) DeliverStore() lockbox.CacheableKVStore {
	return s.state.deliver
}

// CheckStore is the state CheckTx works on.
func (s *StoreApp) CheckStore() lockbox.CacheableKVStore {
	return s.state.check
}

// parseAppState initializes a fresh chain from the app_state of its
// genesis. It fails once a chain id is known.
func (s *StoreApp) parseAppState(raw []byte, chainID string, init lockbox.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for %s", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing from the genesis")
	}
	var opts lockbox.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}

	if err := saveChainID(s.state.deliver, chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.base = lockbox.WithChainID(s.base, chainID)

	if init == nil {
		return nil
	}
	return init.FromGenesis(opts, s.state.deliver)
}

// Info reports the last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	id, err := s.state.root.LatestVersion()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          lockbox.Version(),
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads the last committed state. The path selects a registered
// handler ("/" for raw keys, "/<bucket>" for a bucket) and an optional
// "?prefix" suffix turns the lookup into a prefix scan. Key and Value of
// the response are ResultSets of the same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queries.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	id, err := s.state.root.LatestVersion()
	if err != nil {
		return queryError(err)
	}
	models, err := h.Query(s.state.root.CacheWrap(), mod, req.Data)
	if err != nil {
		return queryError(err)
	}

	keys, values := SplitResults(models)
	res := abci.ResponseQuery{Height: id.Version}
	if res.Key, err = keys.Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = values.Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

// InitChain loads the genesis app state.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId, s.init); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock records the header, height and time of the new block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := lockbox.WithHeader(s.base, req.Header)
	ctx = lockbox.WithHeight(ctx, req.Header.GetHeight())
	s.block = lockbox.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit saves the delivered state as a new version.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
