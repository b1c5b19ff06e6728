package authority

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/kernel-community/nfteasy/babel-api/chainio/api"
)

// Registry answers whether an address currently holds minting authority.
// The set is owned outside this process; implementations only read it.
type Registry interface {
	IsAuthority(ctx context.Context, addr common.Address) (bool, error)
}

// StaticRegistry is an in-memory authority set.
type StaticRegistry struct {
	mu          sync.RWMutex
	authorities map[common.Address]struct{}
}

var _ Registry = (*StaticRegistry)(nil)

func NewStaticRegistry(addrs ...common.Address) *StaticRegistry {
	r := &StaticRegistry{authorities: make(map[common.Address]struct{}, len(addrs))}
	for _, a := range addrs {
		r.authorities[a] = struct{}{}
	}
	return r
}

func (r *StaticRegistry) Grant(addr common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authorities[addr] = struct{}{}
}

func (r *StaticRegistry) Revoke(addr common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.authorities, addr)
}

func (r *StaticRegistry) IsAuthority(_ context.Context, addr common.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.authorities[addr]
	return ok, nil
}

// RoleRegistry reads MINTER_ROLE membership from a deployed BabelAuthMint.
type RoleRegistry struct {
	contract api.BabelAuthMint

	mu   sync.Mutex
	role *common.Hash
}

var _ Registry = (*RoleRegistry)(nil)

func NewRoleRegistry(contract api.BabelAuthMint) *RoleRegistry {
	return &RoleRegistry{contract: contract}
}

func (r *RoleRegistry) IsAuthority(ctx context.Context, addr common.Address) (bool, error) {
	role, err := r.minterRole(ctx)
	if err != nil {
		return false, err
	}
	return r.contract.HasRole(ctx, role, addr)
}

// minterRole is fetched once and cached; failures are retried next call.
func (r *RoleRegistry) minterRole(ctx context.Context) (common.Hash, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.role != nil {
		return *r.role, nil
	}
	role, err := r.contract.MinterRole(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	r.role = &role
	return role, nil
}
