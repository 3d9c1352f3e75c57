package main

import "C"
import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"

	"github.com/gorilla/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/status-im/status-wallet-go/pkg/session"
)

var (
	globalRPCServer *rpc.Server
)

func marshalError(err error) *C.char {
	response := struct {
		Error string `json:"error"`
	}{
		Error: "",
	}
	if err != nil {
		response.Error = err.Error()
	}
	responseBytes, _ := json.Marshal(response)
	return C.CString(string(responseBytes))
}

func logPanic() {
	err := recover()
	if err != nil {
		fmt.Printf("Panic: %v\n", err)
	}
}

//export WalletInitializeRPC
func WalletInitializeRPC() *C.char {
	defer logPanic()

	zap.L().Info("WalletInitializeRPC - start")

	rpcServer, err := session.CreateRPCServer()
	if err != nil {
		return marshalError(err)
	}
	globalRPCServer = rpcServer

	zap.L().Info("WalletInitializeRPC - ok")
	return marshalError(nil)
}

//export WalletCallRPC
func WalletCallRPC(payload *C.char) *C.char {
	defer logPanic()

	if globalRPCServer == nil {
		return marshalError(errors.New("RPC server not initialized"))
	}

	// Payloads may carry key material, so only their size is logged.
	payloadBytes := []byte(C.GoString(payload))
	zap.L().Debug("calling RPC", zap.Int("size", len(payloadBytes)))

	req := httptest.NewRequest("POST", "/rpc", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	globalRPCServer.ServeHTTP(rr, req)

	resp := rr.Result()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return marshalError(errors.Wrap(err, "internal error reading response body"))
	}

	zap.L().Debug("RPC returned", zap.String("status", resp.Status))
	return C.CString(string(body))
}
