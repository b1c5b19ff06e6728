package claimserver

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/metrics/indicators/claims"
	"github.com/kernel-community/nfteasy/babel-api/signer"
)

// hardhat accounts #1 (minter) and #0 (not a minter)
const (
	bobKey   = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	aliceKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcd6e7d7b6b3bc6e29"
)

var (
	charlie = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	derek   = common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
)

type serverTestSuite struct {
	suite.Suite
	bob      *signer.PrivateKeySigner
	alice    *signer.PrivateKeySigner
	domain   signer.SigningDomain
	registry *authority.StaticRegistry
	reg      *prometheus.Registry
	handler  http.Handler
	tree     *merkle.Tree
}

func (s *serverTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	var err error
	s.bob, err = signer.NewPrivateKeySignerFromHex(bobKey)
	s.Require().NoError(err)
	s.alice, err = signer.NewPrivateKeySignerFromHex(aliceKey)
	s.Require().NoError(err)

	s.domain = signer.SigningDomain{
		Name:              signer.DefaultDomainName,
		Version:           signer.DefaultDomainVersion,
		ChainID:           big.NewInt(31337),
		VerifyingContract: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
	}
	s.registry = authority.NewStaticRegistry(s.bob.Address())
	s.reg = prometheus.NewRegistry()

	s.tree, err = merkle.BuildTree([]merkle.Entry{
		{TokenID: big.NewInt(1), Account: charlie},
		{TokenID: big.NewInt(2), Account: derek},
	})
	s.Require().NoError(err)
	exported, err := s.tree.Export()
	s.Require().NoError(err)

	server, err := NewServer(Config{
		Domain:     s.domain,
		Signer:     s.bob,
		Registry:   s.registry,
		Store:      NewMemoryStore(),
		ClaimsFile: exported,
		Indicators: claims.NewPromIndicators("BabelAuthMint", s.reg),
	})
	s.Require().NoError(err)
	s.handler = server.Handler()
}

func (s *serverTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, json.RawMessage) {
	var reader bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var resp struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp.Data
}

func (s *serverTestSuite) Test_IssueClaim() {
	w, data := s.do(http.MethodPost, "/claims", gin.H{"tokenId": "1", "account": charlie.Hex()})
	s.Equal(http.StatusOK, w.Code)

	var claim signer.SignedClaim
	s.Require().NoError(json.Unmarshal(data, &claim))
	s.Equal(s.bob.Address(), claim.Signer)
	s.Equal(charlie, claim.Request.Account)
	recovered, err := signer.RecoverSigner(s.domain, claim.Request, claim.Signature)
	s.Require().NoError(err)
	s.Equal(s.bob.Address(), recovered)

	// the same claim again is idempotent
	w, _ = s.do(http.MethodPost, "/claims", gin.H{"tokenId": "1", "account": charlie.Hex()})
	s.Equal(http.StatusOK, w.Code)

	// the token cannot be signed for someone else
	w, _ = s.do(http.MethodPost, "/claims", gin.H{"tokenId": "1", "account": derek.Hex()})
	s.Equal(http.StatusConflict, w.Code)

	w, data = s.do(http.MethodGet, "/claims/1", nil)
	s.Equal(http.StatusOK, w.Code)
	var issued IssuedClaim
	s.Require().NoError(json.Unmarshal(data, &issued))
	s.Equal(charlie, issued.Account)

	w, _ = s.do(http.MethodGet, "/claims/2", nil)
	s.Equal(http.StatusNotFound, w.Code)

	s.Equal(float64(2), metricSum(s.T(), s.reg, "babel_claim_signatures_total"))
}

type lockedSigner struct {
	addr common.Address
}

func (l lockedSigner) Address() common.Address { return l.addr }

func (l lockedSigner) SignHash([]byte) ([]byte, error) { return nil, signer.ErrNoKey }

func (s *serverTestSuite) Test_IssueClaimSignFailureKeepsReservation() {
	store := NewMemoryStore()
	reg := prometheus.NewRegistry()
	server, err := NewServer(Config{
		Domain:     s.domain,
		Signer:     lockedSigner{addr: s.bob.Address()},
		Store:      store,
		Indicators: claims.NewPromIndicators("BabelAuthMint", reg),
	})
	s.Require().NoError(err)

	body, err := json.Marshal(gin.H{"tokenId": "3", "account": charlie.Hex()})
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/claims", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal(float64(1), metricSum(s.T(), reg, "babel_claim_signatures_total"))

	account, ok, err := store.Get(context.Background(), big.NewInt(3))
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(charlie, account)
	s.ErrorIs(store.Reserve(context.Background(), big.NewInt(3), derek), ErrTokenTaken)
}

func (s *serverTestSuite) Test_IssueClaimBadInput() {
	var tests = map[string]struct {
		body gin.H
		code int
	}{
		"missing account": {gin.H{"tokenId": "1"}, http.StatusBadRequest},
		"negative token":  {gin.H{"tokenId": "-1", "account": charlie.Hex()}, http.StatusBadRequest},
		"short address":   {gin.H{"tokenId": "1", "account": "0x1234"}, http.StatusBadRequest},
		"hex token id":    {gin.H{"tokenId": "0x10", "account": charlie.Hex()}, http.StatusOK},
		"oversized token": {gin.H{"tokenId": "0x1" + string(bytes.Repeat([]byte("0"), 64)), "account": charlie.Hex()}, http.StatusBadRequest},
	}
	for name, tt := range tests {
		s.Run(name, func() {
			w, _ := s.do(http.MethodPost, "/claims", tt.body)
			s.Equal(tt.code, w.Code)
		})
	}
	w, _ := s.do(http.MethodGet, "/claims/abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *serverTestSuite) Test_VerifyClaim() {
	req := signer.ClaimRequest{TokenID: big.NewInt(3), Account: charlie}
	bobSig, err := signer.BuildSignature(s.domain, req, s.bob)
	s.Require().NoError(err)
	aliceSig, err := signer.BuildSignature(s.domain, req, s.alice)
	s.Require().NoError(err)

	verify := func(sig string, account common.Address) (int, Verdict) {
		w, data := s.do(http.MethodPost, "/claims/verify", gin.H{"tokenId": "3", "account": account.Hex(), "signature": sig})
		var v Verdict
		if w.Code == http.StatusOK {
			s.Require().NoError(json.Unmarshal(data, &v))
		}
		return w.Code, v
	}

	code, v := verify(bobSig.Hex(), charlie)
	s.Equal(http.StatusOK, code)
	s.True(v.Admitted)
	s.Equal(s.bob.Address(), v.Signer)

	// Alice is not an authority but her signature still recovers to her
	code, v = verify(aliceSig.Hex(), charlie)
	s.Equal(http.StatusOK, code)
	s.False(v.Admitted)
	s.Equal(s.alice.Address(), v.Signer)
	s.Contains(v.Reason, "authority")

	// a signature over Charlie's claim does not admit Derek
	code, v = verify(bobSig.Hex(), derek)
	s.Equal(http.StatusOK, code)
	s.False(v.Admitted)

	s.registry.Revoke(s.bob.Address())
	code, v = verify(bobSig.Hex(), charlie)
	s.Equal(http.StatusOK, code)
	s.False(v.Admitted)

	code, _ = verify("0x1234", charlie)
	s.Equal(http.StatusBadRequest, code)
}

func (s *serverTestSuite) Test_MerkleRoutes() {
	s.Equal(float64(2), metricSum(s.T(), s.reg, "babel_allow_list_size"))

	w, data := s.do(http.MethodGet, "/merkle/root", nil)
	s.Equal(http.StatusOK, w.Code)
	var root struct {
		Root   common.Hash `json:"root"`
		Leaves int         `json:"leaves"`
	}
	s.Require().NoError(json.Unmarshal(data, &root))
	s.Equal(s.tree.Root(), root.Root)
	s.Equal(2, root.Leaves)

	w, data = s.do(http.MethodGet, "/merkle/proof?tokenId=2&account="+derek.Hex(), nil)
	s.Equal(http.StatusOK, w.Code)
	var claim merkle.Claim
	s.Require().NoError(json.Unmarshal(data, &claim))
	s.True(merkle.Verify(s.tree.Root(), merkle.Entry{TokenID: big.NewInt(2), Account: derek}, claim.Proof))

	s.Equal(float64(1), metricSum(s.T(), s.reg, "babel_merkle_proofs_total"))

	w, _ = s.do(http.MethodGet, "/merkle/proof?tokenId=2&account="+charlie.Hex(), nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodGet, "/merkle/proof?tokenId=2", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *serverTestSuite) Test_HealthAndDomain() {
	w, _ := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)

	w, data := s.do(http.MethodGet, "/domain", nil)
	s.Equal(http.StatusOK, w.Code)
	var domain signer.SigningDomain
	s.Require().NoError(json.Unmarshal(data, &domain))
	s.Equal(s.domain.VerifyingContract, domain.VerifyingContract)
	s.Equal(0, s.domain.ChainID.Cmp(domain.ChainID))
}

func (s *serverTestSuite) Test_NewServerValidation() {
	_, err := NewServer(Config{Domain: s.domain})
	s.Error(err)
	_, err = NewServer(Config{Signer: s.bob})
	s.ErrorIs(err, signer.ErrNilChainID)

	server, err := NewServer(Config{Signer: s.bob, Domain: s.domain})
	s.Require().NoError(err)
	s.NotNil(server.Handler())
}

func TestClaimServer(t *testing.T) {
	suite.Run(t, new(serverTestSuite))
}

func metricSum(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
	return total
}
