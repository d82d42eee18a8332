// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
)

// transitionJSON is the structured form some APIs use for transition
// inputs and outputs. Only the private and record shapes carry enough
// information to rebuild the binary value.
type transitionJSON struct {
	Type     string  `json:"type"`
	ID       string  `json:"id"`
	Tag      string  `json:"tag"`
	Checksum string  `json:"checksum"`
	Value    *string `json:"value"`
}

func unsupportedJSON(family string, kind string) error {
	return fmt.Errorf("%w: %s type %q has no JSON form", codec.ErrInvalidVariant, family, kind)
}

// TransitionInputFromJSON builds a private or record input from its JSON
// form.
func TransitionInputFromJSON(data []byte) (TransitionInput, error) {
	var tmp transitionJSON
	if err := json.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("transition input: %w", err)
	}
	switch tmp.Type {
	case "private":
		hash, err := primitive.ParseField(tmp.ID)
		if err != nil {
			return nil, fmt.Errorf("transition input id: %w", err)
		}
		ret := PrivateTransitionInput{CiphertextHash: hash}
		if tmp.Value != nil {
			ct, err := ParseCiphertext(*tmp.Value)
			if err != nil {
				return nil, fmt.Errorf("transition input value: %w", err)
			}
			ret.Ciphertext = codec.Some(ct)
		}
		return ret, nil
	case "record":
		sn, err := primitive.ParseField(tmp.ID)
		if err != nil {
			return nil, fmt.Errorf("transition input id: %w", err)
		}
		tag, err := primitive.ParseField(tmp.Tag)
		if err != nil {
			return nil, fmt.Errorf("transition input tag: %w", err)
		}
		return RecordTransitionInput{SerialNumber: sn, Tag: tag}, nil
	}
	return nil, unsupportedJSON("transition input", tmp.Type)
}

// TransitionOutputFromJSON builds a record output from its JSON form.
func TransitionOutputFromJSON(data []byte) (TransitionOutput, error) {
	var tmp transitionJSON
	if err := json.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("transition output: %w", err)
	}
	if tmp.Type != "record" {
		return nil, unsupportedJSON("transition output", tmp.Type)
	}
	commitment, err := primitive.ParseField(tmp.ID)
	if err != nil {
		return nil, fmt.Errorf("transition output id: %w", err)
	}
	checksum, err := primitive.ParseField(tmp.Checksum)
	if err != nil {
		return nil, fmt.Errorf("transition output checksum: %w", err)
	}
	ret := RecordTransitionOutput{Commitment: commitment, Checksum: checksum}
	if tmp.Value != nil {
		rec, err := ParseRecord[Ciphertext](*tmp.Value)
		if err != nil {
			return nil, fmt.Errorf("transition output value: %w", err)
		}
		ret.RecordCiphertext = codec.Some(rec)
	}
	return ret, nil
}

type partialSolutionJSON struct {
	Address    string      `json:"address"`
	Nonce      json.Number `json:"nonce"`
	Commitment string      `json:"commitment"`
}

// PartialSolutionFromJSON builds a partial solution from the JSON a prover
// pool submits.
func PartialSolutionFromJSON(data []byte) (PartialSolution, error) {
	var tmp partialSolutionJSON
	if err := json.Unmarshal(data, &tmp); err != nil {
		return PartialSolution{}, fmt.Errorf("partial solution: %w", err)
	}
	addr, err := primitive.ParseAddress(tmp.Address)
	if err != nil {
		return PartialSolution{}, fmt.Errorf("partial solution address: %w", err)
	}
	nonce, err := strconv.ParseUint(tmp.Nonce.String(), 10, 64)
	if err != nil {
		return PartialSolution{}, fmt.Errorf("partial solution nonce: %w", err)
	}
	commitment, err := ParsePuzzleCommitment(tmp.Commitment)
	if err != nil {
		return PartialSolution{}, fmt.Errorf("partial solution commitment: %w", err)
	}
	return PartialSolution{Address: addr, Nonce: nonce, Commitment: commitment}, nil
}
