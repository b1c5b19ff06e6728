package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/wealdtech/go-merkletree/v2"
)

var (
	ErrEmptyAllowList = errors.New("allow list has no entries")
	ErrLeafNotFound   = errors.New("leaf not in tree")
	ErrHashLength     = fmt.Errorf("hash function must produce %d byte digests", common.HashLength)
)

// Tree is an immutable sorted-pair Merkle tree over an allow-list.
//
// Leaves are de-duplicated and ordered ascending, so the root depends only
// on the set of entries. Each level hashes adjacent pairs; a trailing node
// without a partner is promoted to the next level unchanged.
type Tree struct {
	hash    merkletree.HashType
	entries []Entry
	levels  [][]common.Hash
	index   map[common.Hash]int
}

type options struct {
	hash merkletree.HashType
}

type Option func(*options)

// WithHashType swaps keccak256 for another 32 byte hash; the on-chain
// verifier must use the same one.
func WithHashType(h merkletree.HashType) Option {
	return func(o *options) {
		o.hash = h
	}
}

func BuildTree(entries []Entry, opts ...Option) (*Tree, error) {
	o := options{hash: defaultHash()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hash.HashLength() != common.HashLength {
		return nil, ErrHashLength
	}
	if len(entries) == 0 {
		return nil, ErrEmptyAllowList
	}

	type row struct {
		leaf  common.Hash
		entry Entry
	}
	rows := make([]row, 0, len(entries))
	seen := make(map[common.Hash]struct{}, len(entries))
	for i, e := range entries {
		leaf, err := hashLeaf(o.hash, e.TokenID, e.Account)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, ok := seen[leaf]; ok {
			continue
		}
		seen[leaf] = struct{}{}
		rows = append(rows, row{leaf: leaf, entry: e})
	}
	sort.Slice(rows, func(i, j int) bool {
		return bytes.Compare(rows[i].leaf[:], rows[j].leaf[:]) < 0
	})

	t := &Tree{
		hash:    o.hash,
		entries: make([]Entry, len(rows)),
		index:   make(map[common.Hash]int, len(rows)),
	}
	leaves := make([]common.Hash, len(rows))
	for i, r := range rows {
		leaves[i] = r.leaf
		t.entries[i] = r.entry
		t.index[r.leaf] = i
	}

	t.levels = [][]common.Hash{leaves}
	for level := leaves; len(level) > 1; {
		next := make([]common.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, hashPair(o.hash, level[i], level[i+1]))
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

func (t *Tree) Root() common.Hash {
	return t.levels[len(t.levels)-1][0]
}

func (t *Tree) HashName() string {
	return t.hash.HashName()
}

// Len is the number of distinct leaves.
func (t *Tree) Len() int {
	return len(t.levels[0])
}

// Depth is the number of hashing levels above the leaves.
func (t *Tree) Depth() int {
	return len(t.levels) - 1
}

func (t *Tree) Leaves() []common.Hash {
	return append([]common.Hash(nil), t.levels[0]...)
}

// Entries returns the allow-list in leaf order.
func (t *Tree) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

func (t *Tree) HashLeaf(e Entry) (common.Hash, error) {
	return hashLeaf(t.hash, e.TokenID, e.Account)
}

func (t *Tree) Contains(e Entry) bool {
	leaf, err := t.HashLeaf(e)
	if err != nil {
		return false
	}
	_, ok := t.index[leaf]
	return ok
}

func (t *Tree) Proof(e Entry) (Proof, error) {
	leaf, err := t.HashLeaf(e)
	if err != nil {
		return nil, err
	}
	return t.ProofForLeaf(leaf)
}

func (t *Tree) ProofForLeaf(leaf common.Hash) (Proof, error) {
	idx, ok := t.index[leaf]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLeafNotFound, leaf.Hex())
	}
	proof := make(Proof, 0, t.Depth())
	for _, level := range t.levels[:len(t.levels)-1] {
		// a promoted node has no sibling at this level
		if sibling := idx ^ 1; sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		idx /= 2
	}
	return proof, nil
}

// Verify folds proof from entry's leaf and compares the result with root.
func Verify(root common.Hash, e Entry, proof Proof) bool {
	return VerifyWithHash(defaultHash(), root, e, proof)
}

func VerifyWithHash(h merkletree.HashType, root common.Hash, e Entry, proof Proof) bool {
	leaf, err := hashLeaf(h, e.TokenID, e.Account)
	if err != nil {
		return false
	}
	return VerifyLeaf(h, root, leaf, proof)
}

func VerifyLeaf(h merkletree.HashType, root, leaf common.Hash, proof Proof) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(h, computed, sibling)
	}
	return computed == root
}
