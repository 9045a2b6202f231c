package store

// sliceIterator walks models that were loaded up front.
type sliceIterator struct {
	models []Model
}

// NewSliceIterator iterates over models in the given order.
func NewSliceIterator(models []Model) Iterator {
	return &sliceIterator{models: models}
}

func (s *sliceIterator) Valid() bool {
	return len(s.models) > 0
}

func (s *sliceIterator) current() Model {
	if len(s.models) == 0 {
		panic("iterator is exhausted")
	}
	return s.models[0]
}

func (s *sliceIterator) Next() {
	s.current()
	s.models = s.models[1:]
}

func (s *sliceIterator) Key() []byte   { return s.current().Key }
func (s *sliceIterator) Value() []byte { return s.current().Value }
func (s *sliceIterator) Close()        { s.models = nil }
