package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/client"
	escrowd "github.com/iov-one/lockbox/cmd/escrowd/app"
	"github.com/iov-one/lockbox/weavetest"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const (
	chainID   = "cli-test-chain"
	aliceSeed = "0101010101010101010101010101010101010101010101010101010101010101"
	bobSeed   = "0202020202020202020202020202020202020202020202020202020202020202"
)

// node is an in-process application the CLI talks to.
type node struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newNode(t *testing.T, wallets ...cash.GenesisAccount) *node {
	t.Helper()
	application, err := escrowd.Application("test", escrowd.Stack(), escrowd.TxDecoder, "", false)
	require.NoError(t, err)
	state, err := json.Marshal(map[string]interface{}{
		"cash": wallets,
		"conf": map[string]interface{}{
			"cash": cash.Configuration{CollectorAddress: weavetest.NewAddress()},
		},
	})
	require.NoError(t, err)
	application.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	application.Commit()
	return &node{t: t, app: application}
}

// deliver runs the hex encoded transaction in a new block.
func (n *node) deliver(hexTx string) abci.ResponseDeliverTx {
	n.t.Helper()
	raw, err := hex.DecodeString(strings.TrimSpace(hexTx))
	require.NoError(n.t, err)
	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{
		ChainID: chainID,
		Height:  n.height,
		Time:    time.Unix(1700000000+n.height, 0),
	}})
	res := n.app.DeliverTx(raw)
	n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
	n.app.Commit()
	return res
}

// run executes the CLI with the given arguments against home and n.
func run(t *testing.T, home string, n *node, args ...string) (string, error) {
	t.Helper()
	opts := &RootOptions{
		Querier: func(string) client.Querier {
			if n == nil {
				t.Fatal("command unexpectedly contacted a node")
			}
			return n.app
		},
	}
	cmd := newRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--home", home, "--chain-id", chainID}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, home string, n *node, args ...string) string {
	t.Helper()
	out, err := run(t, home, n, args...)
	require.NoError(t, err, out)
	return strings.TrimSpace(out)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "escrowcli", cmd.Use)
	for _, name := range []string{"keys", "derive", "initialize", "claim", "cancel", "submit", "list", "wallet"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestKeys(t *testing.T) {
	home := t.TempDir()

	addr := mustRun(t, home, nil, "keys", "add", "alice", "--seed", aliceSeed)
	assert.Equal(t, addr, mustRun(t, home, nil, "keys", "show", "alice"))

	_, err := run(t, home, nil, "keys", "add", "alice")
	require.Error(t, err)

	_, err = run(t, home, nil, "keys", "show", "bob")
	require.Error(t, err)

	_, err = run(t, home, nil, "keys", "add", "bob", "--seed", "abcd")
	require.Error(t, err)

	random := mustRun(t, home, nil, "keys", "add", "carol")
	assert.NotEqual(t, addr, random)

	kr, err := LoadKeyring(home)
	require.NoError(t, err)
	resolved, err := kr.Resolve("alice")
	require.NoError(t, err)
	assert.Equal(t, addr, resolved.String())
	resolved, err = kr.Resolve(random)
	require.NoError(t, err)
	assert.Equal(t, random, resolved.String())
	_, err = kr.Resolve("nobody")
	require.Error(t, err)
}

func TestConfig(t *testing.T) {
	home := t.TempDir()
	conf, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)

	raw := []byte("chain_id: my-test-chain\nnode: tcp://example.com:26657\n")
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, configFile), raw, 0600))
	conf, err = LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "my-test-chain", conf.ChainID)
	assert.Equal(t, "tcp://example.com:26657", conf.Node)

	require.NoError(t, ioutil.WriteFile(filepath.Join(home, configFile), []byte("node: [unclosed"), 0600))
	_, err = LoadConfig(home)
	require.Error(t, err)
}

func TestDerive(t *testing.T) {
	home := t.TempDir()
	addr := mustRun(t, home, nil, "keys", "add", "alice", "--seed", aliceSeed)
	dep, err := lockbox.ParseAddress(addr)
	require.NoError(t, err)

	want, salt, err := escrow.DeriveAddress(dep, 1000)
	require.NoError(t, err)
	out := mustRun(t, home, nil, "derive", "alice", "1000")
	assert.Equal(t, want.String()+" "+strconv.Itoa(int(salt)), out)

	_, err = run(t, home, nil, "derive", "alice", "-1")
	require.Error(t, err)
}

func TestEscrowLifecycle(t *testing.T) {
	home := t.TempDir()
	aliceAddr := mustRun(t, home, nil, "keys", "add", "alice", "--seed", aliceSeed)
	bobAddr := mustRun(t, home, nil, "keys", "add", "bob", "--seed", bobSeed)
	alice, err := lockbox.ParseAddress(aliceAddr)
	require.NoError(t, err)

	n := newNode(t, cash.GenesisAccount{Address: alice, Balance: 5000000})
	reservation := uint64((escrow.DefaultStorageOverhead + escrow.RecordSize) * escrow.DefaultReservationPerByte)

	tx := mustRun(t, home, n, "initialize", "--from", "alice", "--recipient", "bob", "--amount", "700", "--id", "3")
	res := n.deliver(tx)
	require.Equal(t, uint32(0), res.Code, res.Log)
	escAddr := lockbox.Address(res.Data).String()
	assert.True(t, strings.HasPrefix(mustRun(t, home, nil, "derive", "alice", "3"), escAddr+" "))

	assert.Equal(t, strconv.FormatUint(5000000-700-reservation, 10), mustRun(t, home, n, "wallet", "alice"))
	assert.Equal(t, strconv.FormatUint(700+reservation, 10), mustRun(t, home, n, "wallet", escAddr))

	out := mustRun(t, home, n, "list", "alice")
	assert.Contains(t, out, "deposited:\n  "+escAddr+" id=3 amount=700 with="+bobAddr)
	out = mustRun(t, home, n, "list", "bob")
	assert.Contains(t, out, "receivable:\n  "+escAddr+" id=3 amount=700 with="+aliceAddr)

	// Alice is not the recipient, so her claim is rejected on chain.
	tx = mustRun(t, home, n, "claim", "--from", "alice", "--escrow", escAddr, "--depositor", "alice")
	res = n.deliver(tx)
	require.Equal(t, escrow.ErrUnauthorizedClaim.ABCICode(), res.Code, res.Log)

	tx = mustRun(t, home, n, "claim", "--from", "bob", "--escrow", escAddr, "--depositor", "alice")
	res = n.deliver(tx)
	require.Equal(t, uint32(0), res.Code, res.Log)

	assert.Equal(t, "700", mustRun(t, home, n, "wallet", "bob"))
	assert.Equal(t, "deposited:\nreceivable:", mustRun(t, home, n, "list", "alice"))

	// The escrow is gone, so cancelling it fails.
	tx = mustRun(t, home, n, "cancel", "--from", "alice", "--escrow", escAddr)
	res = n.deliver(tx)
	require.Equal(t, escrow.ErrAccountNotFound.ABCICode(), res.Code, res.Log)
}

func TestOfflineSigning(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, nil, "keys", "add", "alice", "--seed", aliceSeed)
	bob := weavetest.NewAddress()

	out := mustRun(t, home, nil, "initialize", "--from", "alice", "--recipient", bob.String(),
		"--amount", "1", "--id", "1", "--sequence", "4", "--fee", "2")
	raw, err := hex.DecodeString(out)
	require.NoError(t, err)
	tx, err := escrowd.TxDecoder(raw)
	require.NoError(t, err)
	decoded := tx.(*escrowd.Tx)
	assert.Equal(t, int64(4), decoded.Signatures[0].Sequence)
	assert.Equal(t, uint64(2), decoded.Fee.Amount)

	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	initMsg, ok := msg.(*escrow.InitializeMsg)
	require.True(t, ok)
	assert.Equal(t, bob, initMsg.Recipient)

	_, err = run(t, home, nil, "initialize", "--from", "alice", "--recipient", bob.String(),
		"--amount", "0", "--id", "1", "--sequence", "0")
	require.Error(t, err)

	_, err = run(t, home, nil, "cancel", "--from", "alice", "--escrow", "zz", "--sequence", "0")
	require.Error(t, err)
}
