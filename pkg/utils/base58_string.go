package utils

import (
	"encoding/json"

	"github.com/mr-tron/base58"
)

type Base58String []byte

// MarshalJSON serializes Base58String to base58
func (s Base58String) MarshalJSON() ([]byte, error) {
	bytes, err := json.Marshal(Btob58(s))
	return bytes, err
}

// UnmarshalJSON deserializes Base58String from base58
func (s *Base58String) UnmarshalJSON(data []byte) error {
	var x string
	err := json.Unmarshal(data, &x)
	if err != nil {
		return err
	}
	if x == "" {
		*s = nil
		return nil
	}
	b, err := B58tob(x)
	if err != nil {
		return err
	}

	*s = Base58String(b)
	return nil
}

func (s Base58String) String() string {
	return Btob58(s)
}

func Btob58(bytes []byte) string {
	return base58.Encode(bytes)
}

func B58tob(str string) ([]byte, error) {
	return base58.Decode(str)
}

// Zero overwrites b in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
