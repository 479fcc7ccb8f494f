package pausable

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec serializes the paused label set. Labels are handed over sorted so the
// persisted bytes are deterministic.
type Codec interface {
	Marshal(labels []string) ([]byte, error)
	Unmarshal(data []byte) ([]string, error)
}

var (
	MsgpackCodec Codec = msgpackCodec{}
	CBORCodec    Codec = cborCodec{}
)

type msgpackCodec struct{}

func (msgpackCodec) Marshal(labels []string) ([]byte, error) {
	return msgpack.Marshal(labels)
}

func (msgpackCodec) Unmarshal(data []byte) ([]string, error) {
	var labels []string
	if err := msgpack.Unmarshal(data, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

type cborCodec struct{}

func (cborCodec) Marshal(labels []string) ([]byte, error) {
	return cbor.Marshal(labels)
}

func (cborCodec) Unmarshal(data []byte) ([]string, error) {
	var labels []string
	if err := cbor.Unmarshal(data, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}
