package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/codec"
	"github.com/iov-one/lockbox/errors"
)

func init() {
	proto.RegisterType((*ResultSet)(nil), "app.ResultSet")
}

// ResultSet carries one side of a query answer. A response holds the
// keys in its Key field and the values, in the same order, in Value.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.RepeatedBytes(1, m.Results)
	return w.Result()
}

func (m *ResultSet) Unmarshal(raw []byte) error {
	*m = ResultSet{}
	return codec.Unmarshal(raw, func(f codec.Field) error {
		if f.Num != 1 {
			return nil
		}
		res, err := f.Bytes()
		if err == nil {
			m.Results = append(m.Results, res)
		}
		return err
	})
}

// SplitResults separates models into their keys and their values.
func SplitResults(models []lockbox.Model) (keys, values *ResultSet) {
	keys = &ResultSet{Results: make([][]byte, len(models))}
	values = &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		keys.Results[i], values.Results[i] = m.Key, m.Value
	}
	return keys, values
}

// JoinResults reverses SplitResults.
func JoinResults(keys, values *ResultSet) ([]lockbox.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", len(keys.Results), len(values.Results))
	}
	models := make([]lockbox.Model, len(keys.Results))
	for i := range models {
		models[i] = lockbox.Pair(keys.Results[i], values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult loads the first value of an encoded ResultSet into
// dest. An empty set leaves dest untouched.
func UnmarshalOneResult(raw []byte, dest lockbox.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return dest.Unmarshal(set.Results[0])
}
