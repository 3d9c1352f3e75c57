package session

import (
	"github.com/gorilla/rpc"
	gorillajson "github.com/gorilla/rpc/json"
)

var globalWalletService WalletService

func CreateRPCServer() (*rpc.Server, error) {
	return createRPCServer(&globalWalletService)
}

func createRPCServer(service *WalletService) (*rpc.Server, error) {
	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(gorillajson.NewCodec(), "application/json")
	err := rpcServer.RegisterTCPService(service, "wallet")
	return rpcServer, err
}

// StartService starts the service behind the RPC server without a round trip.
func StartService(args *StartRequest) error {
	return globalWalletService.Start(args, &struct{}{})
}

func StopService() error {
	return globalWalletService.Stop(&struct{}{}, &struct{}{})
}
