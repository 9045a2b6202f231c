package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/lockbox/weavetest/assert"
)

func TestVerify(t *testing.T) {
	key := GenPrivKeyEd25519()
	order, err := key.Sign([]byte("claim escrow 7"))
	assert.Nil(t, err)
	other, err := key.Sign([]byte("cancel escrow 7"))
	assert.Nil(t, err)

	cases := map[string]struct {
		pub  PublicKey
		msg  []byte
		sig  []byte
		want bool
	}{
		"valid":           {pub: key.PublicKey(), msg: []byte("claim escrow 7"), sig: order, want: true},
		"other message":   {pub: key.PublicKey(), msg: []byte("claim escrow 7"), sig: other},
		"other key":       {pub: GenPrivKeyEd25519().PublicKey(), msg: []byte("claim escrow 7"), sig: order},
		"short signature": {pub: key.PublicKey(), msg: []byte("claim escrow 7"), sig: order[:10]},
		"no signature":    {pub: key.PublicKey(), msg: []byte("claim escrow 7")},
		"no key":          {msg: []byte("claim escrow 7"), sig: order},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pub.Verify(tc.msg, tc.sig))
		})
	}
}

func TestAddress(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	assert.Nil(t, pub.Validate())
	assert.Nil(t, pub.Address().Validate())
	// The address of an account is its public key.
	assert.Equal(t, []byte(pub), []byte(pub.Address()))
	if pub.Address().Equals(GenPrivKeyEd25519().PublicKey().Address()) {
		t.Fatal("two keys share an address")
	}

	var none PublicKey
	assert.Nil(t, none.Address())
	if none.Validate() == nil {
		t.Fatal("empty public key is valid")
	}
	var noPriv PrivateKey
	if sig, err := noPriv.Sign([]byte("x")); err == nil {
		t.Fatalf("empty private key signed %X", sig)
	}
	assert.Nil(t, noPriv.PublicKey())
}

func TestSignatureIsDeterministic(t *testing.T) {
	pk := PrivateKey(make([]byte, 64))
	sig, err := pk.Sign([]byte("foo bar"))
	assert.Nil(t, err)
	want := []byte("\273\363\352\214\365\004\271\371|}\272G\316\316K\005\337Bm\340\322\007W\224-9\272\371\226\375DB\325\325\373#e\321^\030\367]\370\334\372\017\223`\036\236Ue\211\244\220\002\004\026K\227\306i\002\017")
	if !bytes.Equal(want, sig) {
		t.Fatalf("want %X\n got %X", want, sig)
	}
}

func TestKeyFromSeed(t *testing.T) {
	cases := map[string]struct {
		seed     []byte
		expected []byte
	}{
		"zero seed": {
			seed:     []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expected: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 59, 106, 39, 188, 206, 182, 164, 45, 98, 163, 168, 208, 42, 111, 13, 115, 101, 50, 21, 119, 29, 226, 67, 166, 58, 192, 72, 161, 139, 89, 218, 41},
		},
		"repeated byte seed": {
			seed:     []byte{31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31},
			expected: []byte{31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 67, 4, 107, 254, 64, 146, 179, 233, 73, 148, 234, 218, 21, 220, 194, 13, 138, 170, 7, 182, 88, 253, 57, 84, 235, 142, 14, 251, 139, 220, 165, 222},
		},
		"no seed": {
			seed:     nil,
			expected: nil,
		},
		"short seed": {
			seed:     []byte{0},
			expected: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.expected != nil {
				privKey := PrivKeyEd25519FromSeed(tc.seed)
				assert.Equal(t, tc.expected, []byte(privKey))
			} else {
				assert.Panics(t, func() { PrivKeyEd25519FromSeed(tc.seed) })
			}
		})
	}
}
