// Package token provides an in-memory token ledger standing in for the SPL
// token programs: mint registry, balances, transfers and wrapped SOL
// unwrapping. Processors talk to it the way they would talk to the real
// token programs, so swapping in an RPC-backed implementation is a drop-in.
package token

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrAccountNotFound   = errors.New("token account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotEmpty   = errors.New("token account balance must be zero")
)

// NativeMint is the wrapped SOL mint address.
const NativeMint = "So11111111111111111111111111111111111111112"

// Program identifies which token program owns a mint.
type Program uint8

const (
	ProgramUnknown Program = iota
	ProgramSplToken
	ProgramSplToken2022
)

func (p Program) String() string {
	switch p {
	case ProgramSplToken:
		return "spl_token"
	case ProgramSplToken2022:
		return "spl_token_2022"
	}
	return "unknown"
}

type Ledger struct {
	mu sync.Mutex

	mints    map[string]Program
	balances map[string]map[string]uint64
	lamports map[string]uint64
}

func NewLedger() *Ledger {
	l := &Ledger{
		mints:    make(map[string]Program),
		balances: make(map[string]map[string]uint64),
		lamports: make(map[string]uint64),
	}
	l.mints[NativeMint] = ProgramSplToken
	return l
}

// RegisterMint declares a mint and its owning token program.
func (l *Ledger) RegisterMint(mint string, program Program) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.mints[mint] = program
}

// OwningProgram resolves which token program a mint belongs to. This is how
// callers decide between SPL Token and Token-2022 instruction flavours.
func (l *Ledger) OwningProgram(_ context.Context, mint string) (Program, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	program, ok := l.mints[mint]
	if !ok {
		return ProgramUnknown, ErrAccountNotFound
	}
	return program, nil
}

// MintTo credits freshly minted tokens to an owner, creating the token
// account if needed.
func (l *Ledger) MintTo(_ context.Context, mint, owner string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.mints[mint]; !ok {
		return ErrAccountNotFound
	}

	l.credit(mint, owner, amount)
	return nil
}

// Balance returns the owner's balance for a mint. A missing token account
// reads as zero.
func (l *Ledger) Balance(_ context.Context, mint, owner string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.mints[mint]; !ok {
		return 0, ErrAccountNotFound
	}

	return l.balances[mint][owner], nil
}

// Transfer moves tokens between two owners of the same mint, creating the
// destination account if needed.
func (l *Ledger) Transfer(_ context.Context, mint, source, dest string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.mints[mint]; !ok {
		return ErrAccountNotFound
	}

	owners, ok := l.balances[mint]
	if !ok || owners == nil {
		return ErrAccountNotFound
	}
	balance, ok := owners[source]
	if !ok {
		return ErrAccountNotFound
	}
	if balance < amount {
		return ErrInsufficientFunds
	}

	owners[source] = balance - amount
	l.credit(mint, dest, amount)

	return nil
}

// CloseAccount removes an owner's token account. For wrapped SOL the balance
// unwraps into the owner's native lamports; any other mint must be empty.
func (l *Ledger) CloseAccount(_ context.Context, mint, owner string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	owners, ok := l.balances[mint]
	if !ok {
		return 0, ErrAccountNotFound
	}
	balance, ok := owners[owner]
	if !ok {
		return 0, ErrAccountNotFound
	}

	if balance > 0 && mint != NativeMint {
		return 0, ErrAccountNotEmpty
	}

	delete(owners, owner)
	if mint == NativeMint {
		l.lamports[owner] += balance
	}

	return balance, nil
}

// Lamports returns the owner's native SOL balance accumulated by unwrapping.
func (l *Ledger) Lamports(_ context.Context, owner string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.lamports[owner], nil
}

func (l *Ledger) credit(mint, owner string, amount uint64) {
	owners, ok := l.balances[mint]
	if !ok {
		owners = make(map[string]uint64)
		l.balances[mint] = owners
	}
	owners[owner] += amount
}
