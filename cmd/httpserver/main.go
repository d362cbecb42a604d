package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/lexproof/evidence-notary-backend/cmd/flags"
	notarycommon "github.com/lexproof/evidence-notary-backend/common"
	"github.com/lexproof/evidence-notary-backend/httpserver"
	"github.com/lexproof/evidence-notary-backend/interfaces"
	"github.com/lexproof/evidence-notary-backend/notary"
	"github.com/lexproof/evidence-notary-backend/registry"
	"github.com/lexproof/evidence-notary-backend/storage"
)

var cliFlags = []cli.Flag{
	flags.ListenAddrFlag,
	flags.MetricsAddrFlag,
	flags.OwnerFlag,
	flags.RegistryAddrFlag,
	flags.ImageBaseFlag,
	flags.EvidenceStorageFlag,
	flags.LogJSONFlag,
	flags.LogDebugFlag,
	flags.LogUIDFlag,
	flags.LogServiceFlag,
	flags.PprofFlag,
	flags.DrainSecondsFlag,
}

func main() {
	app := &cli.App{
		Name:  "notary-server",
		Usage: "Serve the evidence notarization and credential registry API",
		Flags: cliFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			ownerHex := cCtx.String(flags.OwnerFlag.Name)
			if !common.IsHexAddress(ownerHex) {
				return fmt.Errorf("invalid owner address: %s", ownerHex)
			}
			owner := common.HexToAddress(ownerHex)

			registryAddrHex := cCtx.String(flags.RegistryAddrFlag.Name)
			if !common.IsHexAddress(registryAddrHex) {
				return fmt.Errorf("invalid registry address: %s", registryAddrHex)
			}
			registryAddr := common.HexToAddress(registryAddrHex)

			sink := notarycommon.NewSlogEventSink(logger)

			credentialRegistry := registry.NewCredentialRegistry(owner, cCtx.String(flags.ImageBaseFlag.Name), sink, logger)
			ledger := notary.NewLedger(owner, registryAddr, credentialRegistry, sink, logger)

			// Optional evidence storage for inline uploads
			var evidence interfaces.StorageBackend
			if uri := cCtx.String(flags.EvidenceStorageFlag.Name); uri != "" {
				location := interfaces.StorageBackendLocation(uri)
				if err := location.Validate(); err != nil {
					logger.Error("Invalid evidence storage URI", "err", err)
					return err
				}

				factory := storage.NewStorageBackendFactory(logger)
				backend, err := factory.StorageBackendFor(location)
				if err != nil {
					logger.Error("Failed to create evidence storage backend", "err", err)
					return err
				}
				evidence = backend
				logger.Info("Evidence storage configured", "backend", backend.Name())
			}

			handler := httpserver.NewHandler(credentialRegistry, ledger, evidence, logger)

			cfg := flags.ConfigureServer(cCtx, logger)
			server, err := httpserver.New(cfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server",
				"owner", owner.Hex(),
				"fee", ledger.Fee().String())
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
