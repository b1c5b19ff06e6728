package claimserver

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/signer"
	"github.com/kernel-community/nfteasy/babel-api/utils"
)

type ClaimPayload struct {
	TokenID string `json:"tokenId" form:"tokenId" binding:"required"`
	Account string `json:"account" form:"account" binding:"required"`
}

type VerifyPayload struct {
	ClaimPayload
	Signature string `json:"signature" binding:"required"`
}

type IssuedClaim struct {
	TokenID *big.Int       `json:"tokenId"`
	Account common.Address `json:"account"`
}

type Verdict struct {
	Admitted bool           `json:"admitted"`
	Signer   common.Address `json:"signer"`
	Reason   string         `json:"reason,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, OK.WithData(gin.H{"signer": s.cfg.Signer.Address()}))
}

func (s *Server) domain(c *gin.Context) {
	c.JSON(http.StatusOK, OK.WithData(s.cfg.Domain))
}

// issueClaim signs tokenId for account once the token is reserved for it.
func (s *Server) issueClaim(c *gin.Context) {
	var payload ClaimPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrParam)
		return
	}
	req, errResp := parseRequest(payload)
	if errResp != nil {
		c.JSON(http.StatusBadRequest, *errResp)
		return
	}

	if err := s.cfg.Store.Reserve(c, req.TokenID, req.Account); err != nil {
		if errors.Is(err, ErrTokenTaken) {
			c.JSON(http.StatusConflict, ErrIssued)
			return
		}
		s.cfg.Logger.Error("claim store failed", logger.WithField("err", err))
		c.JSON(http.StatusServiceUnavailable, ErrStore)
		return
	}

	claim, err := signer.SignClaim(s.cfg.Domain, req, s.cfg.Signer)
	if err != nil {
		s.observeSignature("failure")
		s.cfg.Logger.Error("claim signing failed, token stays reserved for account",
			logger.WithField("err", err),
			logger.WithField("tokenId", req.TokenID.String()),
			logger.WithField("account", req.Account.Hex()))
		c.JSON(http.StatusInternalServerError, ErrSign)
		return
	}
	s.observeSignature("success")
	s.cfg.Logger.Info("claim issued", logger.WithField("tokenId", req.TokenID.String()), logger.WithField("account", req.Account.Hex()))
	c.JSON(http.StatusOK, OK.WithData(claim))
}

func (s *Server) getClaim(c *gin.Context) {
	tokenID, err := utils.ParseTokenID(c.Param("tokenId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrTokenID)
		return
	}
	account, ok, err := s.cfg.Store.Get(c, tokenID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrStore)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, OK.WithData(IssuedClaim{TokenID: tokenID, Account: account}))
}

// verifyClaim runs the contract's signature admission off chain.
func (s *Server) verifyClaim(c *gin.Context) {
	var payload VerifyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrParam)
		return
	}
	req, errResp := parseRequest(payload.ClaimPayload)
	if errResp != nil {
		c.JSON(http.StatusBadRequest, *errResp)
		return
	}
	sig, err := signer.ParseClaimSignature(payload.Signature)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrSignature)
		return
	}

	recovered, err := authority.AdmitSignature(c, s.cfg.Registry, s.cfg.Domain, req, sig)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, OK.WithData(Verdict{Admitted: true, Signer: recovered}))
	case errors.Is(err, authority.ErrNotAuthority):
		c.JSON(http.StatusOK, OK.WithData(Verdict{Signer: recovered, Reason: err.Error()}))
	case recovered != (common.Address{}):
		c.JSON(http.StatusServiceUnavailable, ErrRegistry)
	default:
		c.JSON(http.StatusOK, OK.WithData(Verdict{Reason: err.Error()}))
	}
}

func (s *Server) merkleRoot(c *gin.Context) {
	if s.cfg.ClaimsFile == nil {
		c.JSON(http.StatusNotFound, ErrNoAllowed)
		return
	}
	c.JSON(http.StatusOK, OK.WithData(gin.H{
		"root":     s.cfg.ClaimsFile.Root,
		"hashType": s.cfg.ClaimsFile.HashType,
		"leaves":   len(s.cfg.ClaimsFile.Claims),
	}))
}

func (s *Server) merkleProof(c *gin.Context) {
	if s.cfg.ClaimsFile == nil {
		c.JSON(http.StatusNotFound, ErrNoAllowed)
		return
	}
	var payload ClaimPayload
	if err := c.ShouldBindQuery(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrParam)
		return
	}
	req, errResp := parseRequest(payload)
	if errResp != nil {
		c.JSON(http.StatusBadRequest, *errResp)
		return
	}
	claim, err := s.cfg.ClaimsFile.Find(merkle.Entry{TokenID: req.TokenID, Account: req.Account})
	if err != nil {
		c.JSON(http.StatusNotFound, ErrNotFound)
		return
	}
	if s.cfg.Indicators != nil {
		s.cfg.Indicators.AddProofsTotal(1)
	}
	c.JSON(http.StatusOK, OK.WithData(claim))
}

func (s *Server) observeSignature(state string) {
	if s.cfg.Indicators != nil {
		s.cfg.Indicators.IncrementSignaturesTotal(state)
	}
}

func parseRequest(payload ClaimPayload) (signer.ClaimRequest, *Response) {
	tokenID, err := utils.ParseTokenID(payload.TokenID)
	if err != nil {
		return signer.ClaimRequest{}, &ErrTokenID
	}
	account, err := utils.ParseAddress(payload.Account)
	if err != nil {
		return signer.ClaimRequest{}, &ErrAccount
	}
	return signer.ClaimRequest{TokenID: tokenID, Account: account}, nil
}
