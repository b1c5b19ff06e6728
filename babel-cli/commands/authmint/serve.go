package authmint

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kernel-community/nfteasy/babel-api/authority"
	"github.com/kernel-community/nfteasy/babel-api/claimserver"
	"github.com/kernel-community/nfteasy/babel-api/logger"
	"github.com/kernel-community/nfteasy/babel-api/merkle"
	"github.com/kernel-community/nfteasy/babel-api/metrics"
	"github.com/kernel-community/nfteasy/babel-cli/commands/chain"
	"github.com/kernel-community/nfteasy/babel-cli/conf"
)

type ServeOptions struct {
	Addr        string
	ClaimsFile  string
	MetricsAddr string
}

// Serve runs the claim signing service for one keystore minter until
// interrupted.
func Serve(signerAddr, password string, opts ServeOptions) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := NewService()
	defer s.ChainIO.Close()
	hs, err := s.ChainIO.HashSigner(chain.Wallet(signerAddr, password))
	if err != nil {
		panic(err)
	}
	domain, err := s.AuthMint.Domain(ctx, conf.C.Signing.Name, conf.C.Signing.Version)
	if err != nil {
		panic(err)
	}

	var store claimserver.ClaimStore = claimserver.NewMemoryStore()
	if conf.C.Server.RedisAddr != "" {
		redisStore, err := claimserver.NewRedisStore(conf.C.Server.RedisAddr, conf.C.Server.RedisPassword, conf.C.Server.RedisDB, s.AuthMint.Address())
		if err != nil {
			panic(err)
		}
		defer redisStore.Close()
		store = redisStore
	}

	var claimsFile *merkle.ClaimsFile
	if opts.ClaimsFile != "" {
		if claimsFile, err = merkle.ReadClaimsFile(opts.ClaimsFile); err != nil {
			panic(err)
		}
	}

	addr := opts.Addr
	if addr == "" {
		addr = conf.C.Server.Addr
	}
	server, err := claimserver.NewServer(claimserver.Config{
		Addr:       addr,
		Domain:     domain,
		Signer:     hs,
		Registry:   authority.NewRoleRegistry(s.AuthMint),
		Store:      store,
		ClaimsFile: claimsFile,
		Logger:     s.Logger,
		Indicators: s.Claims,
	})
	if err != nil {
		panic(err)
	}

	if opts.MetricsAddr != "" {
		metricsErr := metrics.NewBabelMetrics(opts.MetricsAddr, s.Logger).Start(ctx, s.Registry)
		go func() {
			for err := range metricsErr {
				s.Logger.Error("metrics server failed", logger.WithField("err", err))
			}
		}()
	}

	if err := server.Run(ctx); err != nil {
		panic(err)
	}
}
