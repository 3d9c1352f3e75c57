package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/status-im/status-wallet-go/cmd/status-wallet-server/server"
	"github.com/status-im/status-wallet-go/internal/logging"
	"github.com/status-im/status-wallet-go/pkg/session"
)

var (
	address     = flag.String("address", "127.0.0.1:0", "host:port to listen")
	network     = flag.String("network", "devnet", "cluster to use: devnet, testnet or mainnet-beta")
	endpoint    = flag.String("endpoint", "", "custom RPC endpoint, overrides the cluster default")
	autoConnect = flag.Bool("auto-connect", false, "connect the selected wallet automatically")
	logFile     = flag.String("log-file", "", "write JSON logs to this file instead of the console")
	rootLogger  = zap.NewNop()
)

func main() {
	flag.Parse()

	var err error
	rootLogger, err = logging.BuildLogger(true, *logFile)
	if err != nil {
		fmt.Printf("failed to initialize log: %v\n", err)
		rootLogger = zap.NewNop()
	}
	zap.ReplaceGlobals(rootLogger)

	logger := rootLogger.Named("main")

	go handleInterrupts()

	srv := server.NewServer(rootLogger)
	srv.Setup()

	err = srv.Listen(*address)
	if err != nil {
		logger.Error("failed to start server", zap.Error(err))
		return
	}

	err = session.StartService(&session.StartRequest{
		Network:     *network,
		Endpoint:    *endpoint,
		AutoConnect: *autoConnect,
	})
	if err != nil {
		logger.Error("failed to start wallet service", zap.Error(err))
		return
	}

	logger.Info("wallet-server started", zap.String("address", srv.Address()))
	srv.Serve()
}

// handleInterrupts catches interrupt signal (SIGTERM/SIGINT) and
// gracefully stops the wallet service.
func handleInterrupts() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	<-ch
	_ = session.StopService()
	_ = rootLogger.Sync()
	os.Exit(0)
}
