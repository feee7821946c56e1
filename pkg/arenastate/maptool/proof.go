package maptool

import (
	"encoding/json"
	"errors"
	"fmt"
)

// VrfProof is the public part of a map's VRF inputs. It is safe to publish
// in game metadata.
type VrfProof struct {
	Beta      string `json:"beta"`
	Pi        string `json:"pi"`
	PublicKey string `json:"public_key"`
}

type vrfInputs struct {
	Alpha     string    `json:"alpha"`
	PublicKey string    `json:"public_key"`
	Proof     *VrfProof `json:"proof"`
}

// ParseVrfProof reads vrf_inputs.proof from a generated map. Older maps keep
// the public key beside the proof rather than in it.
func ParseVrfProof(mapData []byte) (*VrfProof, error) {
	var m struct {
		VrfInputs *vrfInputs `json:"vrf_inputs"`
	}
	if err := json.Unmarshal(mapData, &m); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}

	switch {
	case m.VrfInputs == nil:
		return nil, errors.New("map has no vrf_inputs")
	case m.VrfInputs.Proof == nil:
		return nil, errors.New("map has no vrf_inputs.proof")
	case m.VrfInputs.Proof.Beta == "":
		return nil, errors.New("map has no vrf_inputs.proof.beta")
	}

	proof := *m.VrfInputs.Proof
	if proof.PublicKey == "" {
		proof.PublicKey = m.VrfInputs.PublicKey
	}
	if proof.PublicKey == "" {
		return nil, errors.New("map has no vrf public key")
	}

	return &proof, nil
}
