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
	"errors"
	"fmt"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/blinklabs-io/aleoledger/program"
)

const (
	DeploymentVersion   = 1
	FeeVersion          = 1
	ExecutionVersion    = 1
	ProgramOwnerVersion = 1
	TransactionsVersion = 1

	DeployTransactionVersion  = 1
	ExecuteTransactionVersion = 1
	FeeTransactionVersion     = 1
)

var errNilProgram = errors.New("deployment has no program")

// DeployedKey is the verifying key and certificate for one function.
type DeployedKey struct {
	Function     program.Identifier
	VerifyingKey VerifyingKey
	Certificate  Certificate
}

func decodeDeployedKey(r *codec.Reader) (DeployedKey, error) {
	var ret DeployedKey
	var err error
	if ret.Function, err = program.DecodeIdentifier(r); err != nil {
		return DeployedKey{}, err
	}
	if ret.VerifyingKey, err = DecodeVerifyingKey(r); err != nil {
		return DeployedKey{}, fmt.Errorf("function %s: %w", ret.Function, err)
	}
	if ret.Certificate, err = DecodeCertificate(r); err != nil {
		return DeployedKey{}, fmt.Errorf("function %s: %w", ret.Function, err)
	}
	return ret, nil
}

func encodeDeployedKey(w *codec.Writer, k DeployedKey) {
	k.Function.Encode(w)
	k.VerifyingKey.Encode(w)
	k.Certificate.Encode(w)
}

// Deployment publishes a program with a verifying key per function.
type Deployment struct {
	Edition       uint16
	Program       *program.Program
	VerifyingKeys []DeployedKey
}

func DecodeDeployment(r *codec.Reader) (Deployment, error) {
	if err := codec.CheckVersion(r, "Deployment", DeploymentVersion); err != nil {
		return Deployment{}, err
	}
	var ret Deployment
	var err error
	if ret.Edition, err = r.ReadUint16(); err != nil {
		return Deployment{}, fmt.Errorf("decode deployment: %w", err)
	}
	if ret.Program, err = program.DecodeProgram(r); err != nil {
		return Deployment{}, fmt.Errorf("decode deployment: %w", err)
	}
	if ret.VerifyingKeys, err = codec.DecodeVec(r, codec.U16, decodeDeployedKey); err != nil {
		return Deployment{}, fmt.Errorf("decode deployment: %w", err)
	}
	return ret, nil
}

func (d Deployment) Encode(w *codec.Writer) {
	if d.Program == nil {
		w.Fail(errNilProgram)
		return
	}
	w.WriteUint8(DeploymentVersion)
	w.WriteUint16(d.Edition)
	d.Program.Encode(w)
	codec.EncodeVec(w, codec.U16, d.VerifyingKeys, encodeDeployedKey)
}

// Fee pays for a transaction with a single credits transition.
type Fee struct {
	Transition      Transition
	GlobalStateRoot primitive.StateRoot
	InclusionProof  codec.Option[Proof]
}

func DecodeFee(r *codec.Reader) (Fee, error) {
	if err := codec.CheckVersion(r, "Fee", FeeVersion); err != nil {
		return Fee{}, err
	}
	var ret Fee
	var err error
	if ret.Transition, err = DecodeTransition(r); err != nil {
		return Fee{}, fmt.Errorf("decode fee: %w", err)
	}
	if ret.GlobalStateRoot, err = primitive.DecodeStateRoot(r); err != nil {
		return Fee{}, fmt.Errorf("decode fee: %w", err)
	}
	if ret.InclusionProof, err = codec.DecodeOption(r, DecodeProof); err != nil {
		return Fee{}, fmt.Errorf("decode fee: inclusion proof: %w", err)
	}
	return ret, nil
}

func (f Fee) Encode(w *codec.Writer) {
	w.WriteUint8(FeeVersion)
	f.Transition.Encode(w)
	f.GlobalStateRoot.Encode(w)
	codec.EncodeOption(w, f.InclusionProof, codec.Encode[Proof])
}

// Execution is an ordered list of transitions produced by one call.
type Execution struct {
	Transitions     []Transition
	GlobalStateRoot primitive.StateRoot
	InclusionProof  codec.Option[Proof]
}

func DecodeExecution(r *codec.Reader) (Execution, error) {
	if err := codec.CheckVersion(r, "Execution", ExecutionVersion); err != nil {
		return Execution{}, err
	}
	var ret Execution
	var err error
	if ret.Transitions, err = codec.DecodeVec(r, codec.U8, DecodeTransition); err != nil {
		return Execution{}, fmt.Errorf("decode execution: %w", err)
	}
	if ret.GlobalStateRoot, err = primitive.DecodeStateRoot(r); err != nil {
		return Execution{}, fmt.Errorf("decode execution: %w", err)
	}
	if ret.InclusionProof, err = codec.DecodeOption(r, DecodeProof); err != nil {
		return Execution{}, fmt.Errorf("decode execution: inclusion proof: %w", err)
	}
	return ret, nil
}

func (e Execution) Encode(w *codec.Writer) {
	w.WriteUint8(ExecutionVersion)
	codec.EncodeVec(w, codec.U8, e.Transitions, codec.Encode[Transition])
	e.GlobalStateRoot.Encode(w)
	codec.EncodeOption(w, e.InclusionProof, codec.Encode[Proof])
}

// ProgramOwner is the deployer's address and signature over the deployment.
type ProgramOwner struct {
	Address   primitive.Address
	Signature Signature
}

func DecodeProgramOwner(r *codec.Reader) (ProgramOwner, error) {
	if err := codec.CheckVersion(r, "ProgramOwner", ProgramOwnerVersion); err != nil {
		return ProgramOwner{}, err
	}
	addr, err := primitive.DecodeAddress(r)
	if err != nil {
		return ProgramOwner{}, fmt.Errorf("decode program owner: %w", err)
	}
	sig, err := DecodeSignature(r)
	if err != nil {
		return ProgramOwner{}, fmt.Errorf("decode program owner: %w", err)
	}
	return ProgramOwner{Address: addr, Signature: sig}, nil
}

func (o ProgramOwner) Encode(w *codec.Writer) {
	w.WriteUint8(ProgramOwnerVersion)
	o.Address.Encode(w)
	o.Signature.Encode(w)
}

type TransactionTag uint8

const (
	TransactionDeploy TransactionTag = iota
	TransactionExecute
	TransactionFee
)

func (t TransactionTag) String() string {
	switch t {
	case TransactionDeploy:
		return "deploy"
	case TransactionExecute:
		return "execute"
	case TransactionFee:
		return "fee"
	}
	return fmt.Sprintf("TransactionTag(%d)", uint8(t))
}

// Transaction is encoded as a version byte, a type byte and the variant.
// The version is checked against the variant's own constant.
type Transaction interface {
	codec.Encoder
	Type() TransactionTag
	TransactionID() primitive.TransactionID
	isTransaction()
}

type DeployTransaction struct {
	ID         primitive.TransactionID
	Owner      ProgramOwner
	Deployment Deployment
	Fee        Fee
}

type ExecuteTransaction struct {
	ID            primitive.TransactionID
	Execution     Execution
	AdditionalFee codec.Option[Fee]
}

type FeeTransaction struct {
	ID  primitive.TransactionID
	Fee Fee
}

func (DeployTransaction) Type() TransactionTag  { return TransactionDeploy }
func (ExecuteTransaction) Type() TransactionTag { return TransactionExecute }
func (FeeTransaction) Type() TransactionTag     { return TransactionFee }

func (DeployTransaction) isTransaction()  {}
func (ExecuteTransaction) isTransaction() {}
func (FeeTransaction) isTransaction()     {}

func (t DeployTransaction) TransactionID() primitive.TransactionID  { return t.ID }
func (t ExecuteTransaction) TransactionID() primitive.TransactionID { return t.ID }
func (t FeeTransaction) TransactionID() primitive.TransactionID     { return t.ID }

func (t DeployTransaction) Encode(w *codec.Writer) {
	w.WriteUint8(DeployTransactionVersion)
	w.WriteUint8(uint8(TransactionDeploy))
	t.ID.Encode(w)
	t.Owner.Encode(w)
	t.Deployment.Encode(w)
	t.Fee.Encode(w)
}

func (t ExecuteTransaction) Encode(w *codec.Writer) {
	w.WriteUint8(ExecuteTransactionVersion)
	w.WriteUint8(uint8(TransactionExecute))
	t.ID.Encode(w)
	t.Execution.Encode(w)
	codec.EncodeOption(w, t.AdditionalFee, codec.Encode[Fee])
}

func (t FeeTransaction) Encode(w *codec.Writer) {
	w.WriteUint8(FeeTransactionVersion)
	w.WriteUint8(uint8(TransactionFee))
	t.ID.Encode(w)
	t.Fee.Encode(w)
}

func DecodeTransaction(r *codec.Reader) (Transaction, error) {
	version, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode transaction: reading version: %w", err)
	}
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	checkVersion := func(expected uint8) error {
		if version != expected {
			return &codec.VersionError{
				Entity:   "Transaction",
				Expected: expected,
				Got:      version,
			}
		}
		return nil
	}
	switch TransactionTag(tag) {
	case TransactionDeploy:
		if err := checkVersion(DeployTransactionVersion); err != nil {
			return nil, err
		}
		var tx DeployTransaction
		if tx.ID, err = primitive.DecodeTransactionID(r); err != nil {
			return nil, fmt.Errorf("decode deploy transaction: %w", err)
		}
		if tx.Owner, err = DecodeProgramOwner(r); err != nil {
			return nil, fmt.Errorf("decode deploy transaction: %w", err)
		}
		if tx.Deployment, err = DecodeDeployment(r); err != nil {
			return nil, fmt.Errorf("decode deploy transaction: %w", err)
		}
		if tx.Fee, err = DecodeFee(r); err != nil {
			return nil, fmt.Errorf("decode deploy transaction: %w", err)
		}
		return tx, nil
	case TransactionExecute:
		if err := checkVersion(ExecuteTransactionVersion); err != nil {
			return nil, err
		}
		var tx ExecuteTransaction
		if tx.ID, err = primitive.DecodeTransactionID(r); err != nil {
			return nil, fmt.Errorf("decode execute transaction: %w", err)
		}
		if tx.Execution, err = DecodeExecution(r); err != nil {
			return nil, fmt.Errorf("decode execute transaction: %w", err)
		}
		if tx.AdditionalFee, err = codec.DecodeOption(r, DecodeFee); err != nil {
			return nil, fmt.Errorf("decode execute transaction: additional fee: %w", err)
		}
		return tx, nil
	case TransactionFee:
		if err := checkVersion(FeeTransactionVersion); err != nil {
			return nil, err
		}
		var tx FeeTransaction
		if tx.ID, err = primitive.DecodeTransactionID(r); err != nil {
			return nil, fmt.Errorf("decode fee transaction: %w", err)
		}
		if tx.Fee, err = DecodeFee(r); err != nil {
			return nil, fmt.Errorf("decode fee transaction: %w", err)
		}
		return tx, nil
	}
	return nil, &codec.VariantError{Family: "Transaction", Tag: uint64(tag)}
}

type FinalizeOperationTag uint8

const (
	FinalizeInitializeMapping FinalizeOperationTag = iota
	FinalizeInsertKeyValue
	FinalizeUpdateKeyValue
	FinalizeRemoveKeyValue
	FinalizeRemoveMapping
)

// FinalizeOperation is a mapping side effect of an accepted transaction.
type FinalizeOperation interface {
	codec.Encoder
	Type() FinalizeOperationTag
	isFinalizeOperation()
}

type InitializeMapping struct {
	MappingID primitive.Field
}

type InsertKeyValue struct {
	MappingID primitive.Field
	KeyID     primitive.Field
	ValueID   primitive.Field
}

type UpdateKeyValue struct {
	MappingID primitive.Field
	Index     uint64
	KeyID     primitive.Field
	ValueID   primitive.Field
}

type RemoveKeyValue struct {
	MappingID primitive.Field
	Index     uint64
}

type RemoveMapping struct {
	MappingID primitive.Field
}

func (InitializeMapping) Type() FinalizeOperationTag { return FinalizeInitializeMapping }
func (InsertKeyValue) Type() FinalizeOperationTag    { return FinalizeInsertKeyValue }
func (UpdateKeyValue) Type() FinalizeOperationTag    { return FinalizeUpdateKeyValue }
func (RemoveKeyValue) Type() FinalizeOperationTag    { return FinalizeRemoveKeyValue }
func (RemoveMapping) Type() FinalizeOperationTag     { return FinalizeRemoveMapping }

func (InitializeMapping) isFinalizeOperation() {}
func (InsertKeyValue) isFinalizeOperation()    {}
func (UpdateKeyValue) isFinalizeOperation()    {}
func (RemoveKeyValue) isFinalizeOperation()    {}
func (RemoveMapping) isFinalizeOperation()     {}

func (op InitializeMapping) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(FinalizeInitializeMapping))
	op.MappingID.Encode(w)
}

func (op InsertKeyValue) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(FinalizeInsertKeyValue))
	op.MappingID.Encode(w)
	op.KeyID.Encode(w)
	op.ValueID.Encode(w)
}

func (op UpdateKeyValue) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(FinalizeUpdateKeyValue))
	op.MappingID.Encode(w)
	w.WriteUint64(op.Index)
	op.KeyID.Encode(w)
	op.ValueID.Encode(w)
}

func (op RemoveKeyValue) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(FinalizeRemoveKeyValue))
	op.MappingID.Encode(w)
	w.WriteUint64(op.Index)
}

func (op RemoveMapping) Encode(w *codec.Writer) {
	w.WriteUint8(uint8(FinalizeRemoveMapping))
	op.MappingID.Encode(w)
}

func DecodeFinalizeOperation(r *codec.Reader) (FinalizeOperation, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode finalize operation: %w", err)
	}
	switch FinalizeOperationTag(tag) {
	case FinalizeInitializeMapping:
		id, err := primitive.DecodeField(r)
		if err != nil {
			return nil, err
		}
		return InitializeMapping{MappingID: id}, nil
	case FinalizeInsertKeyValue:
		var op InsertKeyValue
		for _, dst := range []*primitive.Field{&op.MappingID, &op.KeyID, &op.ValueID} {
			if *dst, err = primitive.DecodeField(r); err != nil {
				return nil, err
			}
		}
		return op, nil
	case FinalizeUpdateKeyValue:
		var op UpdateKeyValue
		if op.MappingID, err = primitive.DecodeField(r); err != nil {
			return nil, err
		}
		if op.Index, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		if op.KeyID, err = primitive.DecodeField(r); err != nil {
			return nil, err
		}
		if op.ValueID, err = primitive.DecodeField(r); err != nil {
			return nil, err
		}
		return op, nil
	case FinalizeRemoveKeyValue:
		var op RemoveKeyValue
		if op.MappingID, err = primitive.DecodeField(r); err != nil {
			return nil, err
		}
		if op.Index, err = r.ReadUint64(); err != nil {
			return nil, err
		}
		return op, nil
	case FinalizeRemoveMapping:
		id, err := primitive.DecodeField(r)
		if err != nil {
			return nil, err
		}
		return RemoveMapping{MappingID: id}, nil
	}
	return nil, &codec.VariantError{Family: "FinalizeOperation", Tag: uint64(tag)}
}

type ConfirmedTransactionTag uint8

const (
	ConfirmedAcceptedDeploy ConfirmedTransactionTag = iota
	ConfirmedAcceptedExecute
	ConfirmedRejectedDeploy
	ConfirmedRejectedExecute
)

func (t ConfirmedTransactionTag) String() string {
	switch t {
	case ConfirmedAcceptedDeploy:
		return "accepted deploy"
	case ConfirmedAcceptedExecute:
		return "accepted execute"
	case ConfirmedRejectedDeploy:
		return "rejected deploy"
	case ConfirmedRejectedExecute:
		return "rejected execute"
	}
	return fmt.Sprintf("ConfirmedTransactionTag(%d)", uint8(t))
}

// ConfirmedTransaction is a transaction with its outcome in a block.
type ConfirmedTransaction interface {
	codec.Encoder
	Type() ConfirmedTransactionTag
	Index() uint32
	Tx() Transaction
	isConfirmedTransaction()
}

type AcceptedDeploy struct {
	TxIndex     uint32
	Transaction Transaction
	Finalize    []FinalizeOperation
}

type AcceptedExecute struct {
	TxIndex     uint32
	Transaction Transaction
	Finalize    []FinalizeOperation
}

type RejectedDeploy struct {
	TxIndex     uint32
	Transaction Transaction
	Rejected    Deployment
}

type RejectedExecute struct {
	TxIndex     uint32
	Transaction Transaction
	Rejected    Execution
}

func (AcceptedDeploy) Type() ConfirmedTransactionTag  { return ConfirmedAcceptedDeploy }
func (AcceptedExecute) Type() ConfirmedTransactionTag { return ConfirmedAcceptedExecute }
func (RejectedDeploy) Type() ConfirmedTransactionTag  { return ConfirmedRejectedDeploy }
func (RejectedExecute) Type() ConfirmedTransactionTag { return ConfirmedRejectedExecute }

func (AcceptedDeploy) isConfirmedTransaction()  {}
func (AcceptedExecute) isConfirmedTransaction() {}
func (RejectedDeploy) isConfirmedTransaction()  {}
func (RejectedExecute) isConfirmedTransaction() {}

func (c AcceptedDeploy) Index() uint32  { return c.TxIndex }
func (c AcceptedExecute) Index() uint32 { return c.TxIndex }
func (c RejectedDeploy) Index() uint32  { return c.TxIndex }
func (c RejectedExecute) Index() uint32 { return c.TxIndex }

func (c AcceptedDeploy) Tx() Transaction  { return c.Transaction }
func (c AcceptedExecute) Tx() Transaction { return c.Transaction }
func (c RejectedDeploy) Tx() Transaction  { return c.Transaction }
func (c RejectedExecute) Tx() Transaction { return c.Transaction }

var errNilTransaction = errors.New("confirmed transaction has no transaction")

func encodeConfirmedHeader(w *codec.Writer, tag ConfirmedTransactionTag, index uint32, tx Transaction) {
	if tx == nil {
		w.Fail(errNilTransaction)
		return
	}
	w.WriteUint8(uint8(tag))
	w.WriteUint32(index)
	tx.Encode(w)
}

func (c AcceptedDeploy) Encode(w *codec.Writer) {
	encodeConfirmedHeader(w, ConfirmedAcceptedDeploy, c.TxIndex, c.Transaction)
	codec.EncodeVec(w, codec.U16, c.Finalize, codec.Encode[FinalizeOperation])
}

func (c AcceptedExecute) Encode(w *codec.Writer) {
	encodeConfirmedHeader(w, ConfirmedAcceptedExecute, c.TxIndex, c.Transaction)
	codec.EncodeVec(w, codec.U16, c.Finalize, codec.Encode[FinalizeOperation])
}

func (c RejectedDeploy) Encode(w *codec.Writer) {
	encodeConfirmedHeader(w, ConfirmedRejectedDeploy, c.TxIndex, c.Transaction)
	c.Rejected.Encode(w)
}

func (c RejectedExecute) Encode(w *codec.Writer) {
	encodeConfirmedHeader(w, ConfirmedRejectedExecute, c.TxIndex, c.Transaction)
	c.Rejected.Encode(w)
}

func decodeConfirmedHeader(r *codec.Reader, kind ConfirmedTransactionTag) (uint32, Transaction, error) {
	index, err := r.ReadUint32()
	if err != nil {
		return 0, nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	tx, err := DecodeTransaction(r)
	if err != nil {
		return 0, nil, fmt.Errorf("decode %s %d: %w", kind, index, err)
	}
	return index, tx, nil
}

func decodeFinalizeOperations(r *codec.Reader) ([]FinalizeOperation, error) {
	ops, err := codec.DecodeVec(r, codec.U16, DecodeFinalizeOperation)
	if err != nil {
		return nil, fmt.Errorf("finalize operations: %w", err)
	}
	return ops, nil
}

func DecodeConfirmedTransaction(r *codec.Reader) (ConfirmedTransaction, error) {
	tag, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("decode confirmed transaction: %w", err)
	}
	kind := ConfirmedTransactionTag(tag)
	switch kind {
	case ConfirmedAcceptedDeploy:
		index, tx, err := decodeConfirmedHeader(r, kind)
		if err != nil {
			return nil, err
		}
		ops, err := decodeFinalizeOperations(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s %d: %w", kind, index, err)
		}
		return AcceptedDeploy{TxIndex: index, Transaction: tx, Finalize: ops}, nil
	case ConfirmedAcceptedExecute:
		index, tx, err := decodeConfirmedHeader(r, kind)
		if err != nil {
			return nil, err
		}
		ops, err := decodeFinalizeOperations(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s %d: %w", kind, index, err)
		}
		return AcceptedExecute{TxIndex: index, Transaction: tx, Finalize: ops}, nil
	case ConfirmedRejectedDeploy:
		index, tx, err := decodeConfirmedHeader(r, kind)
		if err != nil {
			return nil, err
		}
		d, err := DecodeDeployment(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s %d: %w", kind, index, err)
		}
		return RejectedDeploy{TxIndex: index, Transaction: tx, Rejected: d}, nil
	case ConfirmedRejectedExecute:
		index, tx, err := decodeConfirmedHeader(r, kind)
		if err != nil {
			return nil, err
		}
		e, err := DecodeExecution(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s %d: %w", kind, index, err)
		}
		return RejectedExecute{TxIndex: index, Transaction: tx, Rejected: e}, nil
	}
	return nil, &codec.VariantError{Family: "ConfirmedTransaction", Tag: uint64(tag)}
}

// Transactions is the ordered list of confirmed transactions in a block.
type Transactions struct {
	Transactions []ConfirmedTransaction
}

func DecodeTransactions(r *codec.Reader) (Transactions, error) {
	if err := codec.CheckVersion(r, "Transactions", TransactionsVersion); err != nil {
		return Transactions{}, err
	}
	txs, err := codec.DecodeVec(r, codec.U32, DecodeConfirmedTransaction)
	if err != nil {
		return Transactions{}, fmt.Errorf("decode transactions: %w", err)
	}
	return Transactions{Transactions: txs}, nil
}

func (t Transactions) Encode(w *codec.Writer) {
	w.WriteUint8(TransactionsVersion)
	codec.EncodeVec(w, codec.U32, t.Transactions, codec.Encode[ConfirmedTransaction])
}

// Accepted counts the accepted transactions.
func (t Transactions) Accepted() int {
	n := 0
	for _, tx := range t.Transactions {
		switch tx.Type() {
		case ConfirmedAcceptedDeploy, ConfirmedAcceptedExecute:
			n++
		}
	}
	return n
}
