package arenastate

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// ReportData binds a TDX quote to the arena and to the instantiated env the
// process is running with.
type ReportData struct {
	ContractAddress common.Address
	EnvDigest       [sha256.Size]byte
}

func (r *ReportData) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"contract":  r.ContractAddress.String(),
		"envDigest": common.Bytes2Hex(r.EnvDigest[:]),
	})
}

func (r *ReportData) MarshalBinary() ([]byte, error) {
	writer := bytes.NewBuffer([]byte{})

	if err := binary.Write(writer, binary.BigEndian, r.ContractAddress.Bytes()); err != nil {
		return nil, err
	}
	if err := binary.Write(writer, binary.BigEndian, r.EnvDigest[:]); err != nil {
		return nil, err
	}

	return writer.Bytes(), nil
}

func generateReportDataBytes(contractAddress common.Address, env string) ([]byte, error) {
	reportData := &ReportData{
		ContractAddress: contractAddress,
		EnvDigest:       sha256.Sum256([]byte(env)),
	}

	return reportData.MarshalBinary()
}
