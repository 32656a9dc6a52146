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

package mocks

import (
	"sort"
	"sync"

	"github.com/miekg/pkcs11"
)

// GenerateKeyCall represents a recorded secret key generation.
type GenerateKeyCall struct {
	Session   pkcs11.SessionHandle
	Mechanism uint
	Template  []*pkcs11.Attribute
}

// MockContext is an in-memory stand-in for *pkcs11.Ctx. Each slot reports
// the mechanisms registered with AddMechanism; unknown mechanisms fail
// with CKR_MECHANISM_INVALID as a real module does.
//
// Example usage:
//
//	mock := mocks.NewMockContext()
//	mock.AddToken(0, "algid")
//	mock.AddMechanism(0, pkcs11.CKM_AES_KEY_GEN, pkcs11.MechanismInfo{Flags: pkcs11.CKF_GENERATE})
type MockContext struct {
	mu sync.RWMutex

	tokens     map[uint]pkcs11.TokenInfo
	mechanisms map[uint]map[uint]pkcs11.MechanismInfo
	nextHandle pkcs11.ObjectHandle

	// SlotListErr, MechanismListErr and LoginErr inject failures.
	SlotListErr      error
	MechanismListErr error
	LoginErr         error

	// MechanismInfoFunc, when set, replaces the registered mechanism lookup.
	MechanismInfoFunc func(slot uint, mech uint) (pkcs11.MechanismInfo, error)

	// GenerateKeyCalls records every GenerateKey invocation.
	GenerateKeyCalls []GenerateKeyCall

	Initialized bool
	Finalized   bool
	Destroyed   bool
	Sessions    int
	Logins      int
}

// NewMockContext returns an empty mock with no slots.
func NewMockContext() *MockContext {
	return &MockContext{
		tokens:     make(map[uint]pkcs11.TokenInfo),
		mechanisms: make(map[uint]map[uint]pkcs11.MechanismInfo),
		nextHandle: 1,
	}
}

// AddToken places a token with the given label in slot.
func (m *MockContext) AddToken(slot uint, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[slot] = pkcs11.TokenInfo{Label: label}
	if m.mechanisms[slot] == nil {
		m.mechanisms[slot] = make(map[uint]pkcs11.MechanismInfo)
	}
}

// AddMechanism registers mech with info in slot.
func (m *MockContext) AddMechanism(slot, mech uint, info pkcs11.MechanismInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mechanisms[slot] == nil {
		m.mechanisms[slot] = make(map[uint]pkcs11.MechanismInfo)
	}
	m.mechanisms[slot][mech] = info
}

func (m *MockContext) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Initialized {
		return pkcs11.Error(pkcs11.CKR_CRYPTOKI_ALREADY_INITIALIZED)
	}
	m.Initialized = true
	return nil
}

func (m *MockContext) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finalized = true
	return nil
}

func (m *MockContext) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Destroyed = true
}

func (m *MockContext) GetSlotList(tokenPresent bool) ([]uint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.SlotListErr != nil {
		return nil, m.SlotListErr
	}
	slots := make([]uint, 0, len(m.tokens))
	for slot := range m.tokens {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots, nil
}

func (m *MockContext) GetTokenInfo(slotID uint) (pkcs11.TokenInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info, ok := m.tokens[slotID]
	if !ok {
		return pkcs11.TokenInfo{}, pkcs11.Error(pkcs11.CKR_SLOT_ID_INVALID)
	}
	return info, nil
}

func (m *MockContext) GetMechanismList(slotID uint) ([]*pkcs11.Mechanism, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.MechanismListErr != nil {
		return nil, m.MechanismListErr
	}
	mechs, ok := m.mechanisms[slotID]
	if !ok {
		return nil, pkcs11.Error(pkcs11.CKR_SLOT_ID_INVALID)
	}
	out := make([]*pkcs11.Mechanism, 0, len(mechs))
	for mech := range mechs {
		out = append(out, pkcs11.NewMechanism(mech, nil))
	}
	return out, nil
}

func (m *MockContext) GetMechanismInfo(slotID uint, mechs []*pkcs11.Mechanism) (pkcs11.MechanismInfo, error) {
	if len(mechs) != 1 {
		return pkcs11.MechanismInfo{}, pkcs11.Error(pkcs11.CKR_ARGUMENTS_BAD)
	}
	if m.MechanismInfoFunc != nil {
		return m.MechanismInfoFunc(slotID, mechs[0].Mechanism)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	slot, ok := m.mechanisms[slotID]
	if !ok {
		return pkcs11.MechanismInfo{}, pkcs11.Error(pkcs11.CKR_SLOT_ID_INVALID)
	}
	info, ok := slot[mechs[0].Mechanism]
	if !ok {
		return pkcs11.MechanismInfo{}, pkcs11.Error(pkcs11.CKR_MECHANISM_INVALID)
	}
	return info, nil
}

func (m *MockContext) OpenSession(slotID uint, flags uint) (pkcs11.SessionHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[slotID]; !ok {
		return 0, pkcs11.Error(pkcs11.CKR_SLOT_ID_INVALID)
	}
	m.Sessions++
	return pkcs11.SessionHandle(m.Sessions), nil
}

func (m *MockContext) CloseSession(sh pkcs11.SessionHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sessions--
	return nil
}

func (m *MockContext) Login(sh pkcs11.SessionHandle, userType uint, pin string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoginErr != nil {
		return m.LoginErr
	}
	m.Logins++
	return nil
}

func (m *MockContext) GenerateKey(sh pkcs11.SessionHandle, mechs []*pkcs11.Mechanism, temp []*pkcs11.Attribute) (pkcs11.ObjectHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(mechs) != 1 {
		return 0, pkcs11.Error(pkcs11.CKR_ARGUMENTS_BAD)
	}
	m.GenerateKeyCalls = append(m.GenerateKeyCalls, GenerateKeyCall{
		Session:   sh,
		Mechanism: mechs[0].Mechanism,
		Template:  temp,
	})
	h := m.nextHandle
	m.nextHandle++
	return h, nil
}
