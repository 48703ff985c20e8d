package main

import (
	"cellgrid/contracts"
	"encoding/binary"
	"errors"
	"fmt"
)

var SerializerError = errors.New("invalid serialized data")

// CellBinarySerializer packs a cell record as a fixed four-byte header — row
// and column as little-endian uint16, which the grid bounds guarantee to fit
// — followed by the raw cell text.
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(pos contracts.Position, text string) []byte {
	serializedData := make([]byte, 0, 4+len(text))

	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(pos.Row))
	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(pos.Col))
	serializedData = append(serializedData, text...)
	return serializedData
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (pos contracts.Position, text string, err error) {
	if len(data) < 4 {
		return contracts.InvalidPosition, "", fmt.Errorf("%w: record shorter than the 4 byte position header (data: %v)", SerializerError, data)
	}

	pos = contracts.Position{
		Row: int(binary.LittleEndian.Uint16(data)),
		Col: int(binary.LittleEndian.Uint16(data[2:])),
	}
	if !pos.IsValid() {
		return contracts.InvalidPosition, "", fmt.Errorf("%w: position (%d, %d) outside the grid", SerializerError, pos.Row, pos.Col)
	}

	return pos, string(data[4:]), nil
}
