package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the stored record types. The storage
// package wraps these behind Marshal*/Unmarshal* helpers; nothing outside
// storage should need them directly.

// IDMUS serializes core.ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// DocumentMUS serializes core.Document values.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = IDMUS.Marshal(d.Id, bs)
	n += ord.String.Marshal(d.Path, bs[n:])
	n += ord.String.Marshal(d.Name, bs[n:])
	n += ord.String.Marshal(d.MIMEType, bs[n:])
	n += ord.String.Marshal(d.TextPreview, bs[n:])
	n += marshalFloat64Slice(d.Sparse, bs[n:])
	n += marshalFloat32Slice(d.Dense, bs[n:])
	n += marshalTime(d.InsertedAt, bs[n:])
	n += marshalTime(d.UpdatedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var m int
	if d.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if d.Path, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.Name, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.MIMEType, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.TextPreview, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.Sparse, m, err = unmarshalFloat64Slice(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.Dense, m, err = unmarshalFloat32Slice(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.InsertedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.UpdatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	return d, n, nil
}

func (documentMUS) Size(d Document) (size int) {
	size = IDMUS.Size(d.Id)
	size += ord.String.Size(d.Path)
	size += ord.String.Size(d.Name)
	size += ord.String.Size(d.MIMEType)
	size += ord.String.Size(d.TextPreview)
	size += sizeFloat64Slice(d.Sparse)
	size += sizeFloat32Slice(d.Dense)
	size += sizeTime(d.InsertedAt)
	size += sizeTime(d.UpdatedAt)
	return size
}

// HistoryEntryMUS serializes core.HistoryEntry values.
var HistoryEntryMUS = historyEntryMUS{}

type historyEntryMUS struct{}

func (historyEntryMUS) Marshal(e HistoryEntry, bs []byte) (n int) {
	n = ord.String.Marshal(e.Path, bs)
	n += ord.String.Marshal(e.Host, bs[n:])
	n += marshalTime(e.UploadedAt, bs[n:])
	return n
}

func (historyEntryMUS) Unmarshal(bs []byte) (e HistoryEntry, n int, err error) {
	var m int
	if e.Path, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if e.Host, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	if e.UploadedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return e, n + m, err
	}
	n += m
	return e, n, nil
}

func (historyEntryMUS) Size(e HistoryEntry) (size int) {
	size = ord.String.Size(e.Path)
	size += ord.String.Size(e.Host)
	size += sizeTime(e.UploadedAt)
	return size
}

// VocabularySnapshotMUS serializes core.VocabularySnapshot values.
var VocabularySnapshotMUS = vocabularySnapshotMUS{}

type vocabularySnapshotMUS struct{}

func (vocabularySnapshotMUS) Marshal(s VocabularySnapshot, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(s.Terms), bs)
	for _, term := range s.Terms {
		n += ord.String.Marshal(term, bs[n:])
	}
	n += marshalFloat64Slice(s.IDF, bs[n:])
	n += marshalTime(s.BuiltAt, bs[n:])
	return n
}

func (vocabularySnapshotMUS) Unmarshal(bs []byte) (s VocabularySnapshot, n int, err error) {
	var (
		count int
		m     int
	)
	if count, n, err = varint.PositiveInt.Unmarshal(bs); err != nil {
		return
	}
	s.Terms = make([]string, count)
	for i := 0; i < count; i++ {
		if s.Terms[i], m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return s, n + m, err
		}
		n += m
	}
	if s.IDF, m, err = unmarshalFloat64Slice(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.BuiltAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	return s, n, nil
}

func (vocabularySnapshotMUS) Size(s VocabularySnapshot) (size int) {
	size = varint.PositiveInt.Size(len(s.Terms))
	for _, term := range s.Terms {
		size += ord.String.Size(term)
	}
	size += sizeFloat64Slice(s.IDF)
	size += sizeTime(s.BuiltAt)
	return size
}

// Timestamps are stored as Unix microseconds, matching the resolution used
// in the storage key scheme.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalFloat64Slice(v []float64, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, f := range v {
		n += varint.Float64.Marshal(f, bs[n:])
	}
	return n
}

func unmarshalFloat64Slice(bs []byte) (v []float64, n int, err error) {
	var (
		count int
		m     int
	)
	if count, n, err = varint.PositiveInt.Unmarshal(bs); err != nil {
		return
	}
	if count == 0 {
		return nil, n, nil
	}
	v = make([]float64, count)
	for i := 0; i < count; i++ {
		if v[i], m, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
			return v, n + m, err
		}
		n += m
	}
	return v, n, nil
}

func sizeFloat64Slice(v []float64) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, f := range v {
		size += varint.Float64.Size(f)
	}
	return size
}

func marshalFloat32Slice(v []float32, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, f := range v {
		n += varint.Float32.Marshal(f, bs[n:])
	}
	return n
}

func unmarshalFloat32Slice(bs []byte) (v []float32, n int, err error) {
	var (
		count int
		m     int
	)
	if count, n, err = varint.PositiveInt.Unmarshal(bs); err != nil {
		return
	}
	if count == 0 {
		return nil, n, nil
	}
	v = make([]float32, count)
	for i := 0; i < count; i++ {
		if v[i], m, err = varint.Float32.Unmarshal(bs[n:]); err != nil {
			return v, n + m, err
		}
		n += m
	}
	return v, n, nil
}

func sizeFloat32Slice(v []float32) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, f := range v {
		size += varint.Float32.Size(f)
	}
	return size
}
