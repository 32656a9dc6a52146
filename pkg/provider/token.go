// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-algid.
//
// go-algid is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

//go:build pkcs11

package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jeremyhahn/go-algid/pkg/algid"
	"github.com/jeremyhahn/go-algid/pkg/algorithm"
	"github.com/jeremyhahn/go-algid/pkg/mechanism"
	"github.com/jeremyhahn/go-algid/pkg/metrics"
	"github.com/miekg/pkcs11"
)

// Context is the subset of *pkcs11.Ctx used by Token.
type Context interface {
	Initialize() error
	Finalize() error
	Destroy()
	GetSlotList(tokenPresent bool) ([]uint, error)
	GetTokenInfo(slotID uint) (pkcs11.TokenInfo, error)
	GetMechanismList(slotID uint) ([]*pkcs11.Mechanism, error)
	GetMechanismInfo(slotID uint, m []*pkcs11.Mechanism) (pkcs11.MechanismInfo, error)
	OpenSession(slotID uint, flags uint) (pkcs11.SessionHandle, error)
	CloseSession(sh pkcs11.SessionHandle) error
	Login(sh pkcs11.SessionHandle, userType uint, pin string) error
	GenerateKey(sh pkcs11.SessionHandle, m []*pkcs11.Mechanism, temp []*pkcs11.Attribute) (pkcs11.ObjectHandle, error)
}

var _ Context = (*pkcs11.Ctx)(nil)

// Capability describes what a token reports for one algorithm.
type Capability struct {
	Algorithm  algorithm.Algorithm `json:"-"`
	Name       string              `json:"algorithm"`
	Mechanism  mechanism.Type      `json:"mechanism"`
	Required   mechanism.Flags     `json:"required"`
	Flags      mechanism.Flags     `json:"flags"`
	MinKeySize uint                `json:"min_key_size"`
	MaxKeySize uint                `json:"max_key_size"`
	Supported  bool                `json:"supported"`
}

// Option configures a Token.
type Option func(*Token)

// WithResolver selects the resolver used to map algorithms to mechanisms.
func WithResolver(r *algid.Resolver) Option {
	return func(t *Token) {
		if r != nil {
			t.resolver = r
		}
	}
}

// WithPIN sets the user PIN used when generating keys.
func WithPIN(pin string) Option {
	return func(t *Token) {
		t.pin = pin
	}
}

// Token answers algorithm capability questions for one PKCS#11 slot.
type Token struct {
	mu       sync.Mutex
	ctx      Context
	slot     uint
	pin      string
	owned    bool
	closed   bool
	resolver *algid.Resolver
}

// Open loads the configured module, initializes it and selects the slot
// named by the config. The returned token owns the module and finalizes it
// on Close.
func Open(cfg *Config, opts ...Option) (*Token, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := pkcs11.New(cfg.Library)
	if p == nil {
		return nil, fmt.Errorf("failed to load PKCS#11 library: %s", cfg.Library)
	}
	if err := p.Initialize(); err != nil {
		if err != pkcs11.Error(pkcs11.CKR_CRYPTOKI_ALREADY_INITIALIZED) {
			p.Destroy()
			return nil, fmt.Errorf("failed to initialize PKCS#11: %w", err)
		}
	}

	slot, err := findSlot(p, cfg)
	if err != nil {
		p.Finalize()
		p.Destroy()
		return nil, err
	}

	t := NewToken(p, slot, append([]Option{WithPIN(cfg.PIN)}, opts...)...)
	t.owned = true
	return t, nil
}

// findSlot returns the configured slot, or the first present slot whose
// token label matches.
func findSlot(ctx Context, cfg *Config) (uint, error) {
	if cfg.Slot != nil {
		return uint(*cfg.Slot), nil
	}

	slots, err := ctx.GetSlotList(true)
	if err != nil {
		return 0, fmt.Errorf("failed to get slot list: %w", err)
	}
	for _, slot := range slots {
		info, err := ctx.GetTokenInfo(slot)
		if err != nil {
			return 0, fmt.Errorf("failed to get token info: %w", err)
		}
		if strings.TrimRight(info.Label, " \x00") == cfg.TokenLabel {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrTokenNotFound, cfg.TokenLabel)
}

// NewToken wraps an already initialized context. The caller keeps
// ownership of ctx.
func NewToken(ctx Context, slot uint, opts ...Option) *Token {
	t := &Token{
		ctx:      ctx,
		slot:     slot,
		resolver: algid.NewResolver(nil, nil),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Slot returns the slot the token queries.
func (t *Token) Slot() uint {
	return t.slot
}

// Mechanisms lists the token's mechanisms in ascending order.
func (t *Token) Mechanisms() ([]mechanism.Type, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrClosed
	}

	list, err := t.ctx.GetMechanismList(t.slot)
	if err != nil {
		return nil, fmt.Errorf("failed to get mechanism list: %w", err)
	}
	out := make([]mechanism.Type, 0, len(list))
	for _, m := range list {
		out = append(out, mechanism.Type(m.Mechanism))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// RequiredFlags returns the mechanism flags a token must report for alg to
// be usable. Key generators need generation support, symmetric operations
// need their canonical key usage and key transport needs encrypt and
// decrypt.
func (t *Token) RequiredFlags(alg algorithm.Algorithm) mechanism.Flags {
	switch alg.Family() {
	case algorithm.FamilySecretKeyGen, algorithm.FamilyPBE:
		return mechanism.FlagGenerate
	case algorithm.FamilyKeyPairGen:
		return mechanism.FlagGenerateKeyPair
	case algorithm.FamilyKeyTransport:
		return mechanism.FlagEncrypt | mechanism.FlagDecrypt
	}
	return t.resolver.KeyUsage(alg)
}

// Check queries the token for the mechanism bound to alg. An algorithm
// without a mechanism binding returns ErrNoMechanism. A mechanism the token
// does not implement is reported as unsupported, not as an error.
func (t *Token) Check(alg algorithm.Algorithm) (Capability, error) {
	c := Capability{
		Algorithm: alg,
		Name:      alg.String(),
		Mechanism: t.resolver.ResolveMechanismType(alg),
	}
	if c.Mechanism == mechanism.Invalid {
		return c, fmt.Errorf("%w: %s", ErrNoMechanism, alg)
	}
	c.Required = t.RequiredFlags(alg)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return c, ErrClosed
	}

	info, err := t.ctx.GetMechanismInfo(t.slot, []*pkcs11.Mechanism{pkcs11.NewMechanism(uint(c.Mechanism), nil)})
	if err != nil {
		var p11err pkcs11.Error
		if errors.As(err, &p11err) && p11err == pkcs11.CKR_MECHANISM_INVALID {
			metrics.RecordTokenCheck(metrics.ResultUnsupported)
			return c, nil
		}
		metrics.RecordTokenCheck(metrics.ResultError)
		return c, fmt.Errorf("failed to get mechanism info for %s: %w", c.Mechanism, err)
	}

	c.Flags = mechanism.Flags(info.Flags)
	c.MinKeySize = info.MinKeySize
	c.MaxKeySize = info.MaxKeySize
	c.Supported = c.Flags.Has(c.Required)
	if c.Supported {
		metrics.RecordTokenCheck(metrics.ResultSupported)
	} else {
		metrics.RecordTokenCheck(metrics.ResultUnsupported)
	}
	return c, nil
}

// Supports reports whether the token can perform alg. Algorithms with no
// mechanism binding are never supported and do not produce an error.
func (t *Token) Supports(alg algorithm.Algorithm) (bool, error) {
	c, err := t.Check(alg)
	if errors.Is(err, ErrNoMechanism) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.Supported, nil
}

// CheckAll checks every mechanism-bound algorithm in vocabulary order.
func (t *Token) CheckAll() ([]Capability, error) {
	algs := t.resolver.Table().InSpace(algid.SpaceMechanismType)
	out := make([]Capability, 0, len(algs))
	for _, alg := range algs {
		c, err := t.Check(alg)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// GenerateSecretKey creates a persistent secret key for alg labeled label.
// The key's usage attributes come from the resolver's key usage table.
// size is the key length in bytes. It is ignored for algorithms with a
// fixed key length, and zero selects the default length of the key type
// (see KeyLength).
func (t *Token) GenerateSecretKey(alg algorithm.Algorithm, label string, size int) (pkcs11.ObjectHandle, error) {
	template, err := secretKeyTemplate(t.resolver, alg, label)
	if err != nil {
		return 0, err
	}
	n, withLen, err := KeyLength(alg, size)
	if err != nil {
		return 0, err
	}
	if _, fixed := valueLengths[alg]; !fixed && withLen {
		template = append(template, pkcs11.NewAttribute(pkcs11.CKA_VALUE_LEN, n))
	}
	gen, _ := KeyGenMechanism(alg)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrClosed
	}

	session, err := t.ctx.OpenSession(t.slot, pkcs11.CKF_SERIAL_SESSION|pkcs11.CKF_RW_SESSION)
	if err != nil {
		return 0, fmt.Errorf("failed to open session: %w", err)
	}
	defer t.ctx.CloseSession(session)

	// Login if not already logged in
	// Note: We don't logout because C_Logout affects ALL sessions, not just this one
	if t.pin != "" {
		if err := t.ctx.Login(session, pkcs11.CKU_USER, t.pin); err != nil {
			if err != pkcs11.Error(pkcs11.CKR_USER_ALREADY_LOGGED_IN) {
				return 0, fmt.Errorf("failed to login: %w", err)
			}
		}
	}

	handle, err := t.ctx.GenerateKey(session, []*pkcs11.Mechanism{pkcs11.NewMechanism(uint(gen), nil)}, template)
	if err != nil {
		return 0, fmt.Errorf("failed to generate %s key: %w", alg, err)
	}
	return handle, nil
}

// Close releases the token. A token created by Open finalizes and unloads
// its module.
func (t *Token) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if !t.owned {
		return nil
	}
	err := t.ctx.Finalize()
	t.ctx.Destroy()
	return err
}
