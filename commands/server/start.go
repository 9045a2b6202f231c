package server

import (
	"flag"

	"github.com/iov-one/lockbox/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagLogLevel = "log_level"
)

// Options are passed to the AppGenerator.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
}

type startArgs struct {
	bind     string
	debug    bool
	logLevel string
}

func parseStartFlags(args []string) (startArgs, error) {
	var sa startArgs
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&sa.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&sa.debug, flagDebug, false, "call stack returned on error")
	startFlags.StringVar(&sa.logLevel, flagLogLevel, "info", "one of debug, info, error or none")
	if err := startFlags.Parse(args); err != nil {
		return sa, errors.Wrap(errors.ErrInput, err.Error())
	}
	return sa, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI socket
// until the process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	sa, err := parseStartFlags(args)
	if err != nil {
		return err
	}
	level, err := log.AllowLevel(sa.logLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger = log.NewFilter(logger, level)

	app, err := gen(&Options{Home: home, Logger: logger, Debug: sa.debug})
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", sa.bind)
	svr, err := server.NewServer(sa.bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "start server: %s", err)
	}

	// TrapSignal exits the process once the callback returns.
	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI app", "err", err)
		}
	})
	select {}
}
