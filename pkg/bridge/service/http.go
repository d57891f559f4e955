package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
	apphttp "github.com/chainsafe/ton-deeplink/pkg/app/http"
	"github.com/chainsafe/ton-deeplink/pkg/bridge"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
)

const maxBodySize = 1 << 20

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the host API endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/status", apphttp.HandleError(h.status, logger))
	r.Get("/wallets", apphttp.HandleError(h.wallets, logger))
	r.Put("/wallets/preferred", apphttp.HandleError(h.setPreferredWallet, logger))

	r.Post("/connect", apphttp.HandleError(h.connect, logger))
	r.Post("/disconnect", apphttp.HandleError(h.disconnect, logger))
	r.Post("/transactions", apphttp.HandleError(h.sendTransaction, logger))
	r.Post("/transfers", apphttp.HandleError(h.transfer, logger))
	r.Post("/sign-data", apphttp.HandleError(h.signData, logger))
	r.Get("/operations/{id}", apphttp.HandleError(h.operation, logger))
	r.Post("/callbacks", apphttp.HandleError(h.callback, logger))

	r.Get("/balance", apphttp.HandleError(h.balance, logger))
	r.Get("/transactions/status", apphttp.HandleError(h.transactionStatus, logger))
}

func (h *HTTP) status(w http.ResponseWriter, r *http.Request) error {
	apphttp.WriteJSON(w, http.StatusOK, h.service.Status(r.Context()))
	return nil
}

func (h *HTTP) wallets(w http.ResponseWriter, r *http.Request) error {
	list, err := h.service.Wallets(r.Context(), r.URL.Query().Get("platform"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, list)
	return nil
}

func (h *HTTP) setPreferredWallet(w http.ResponseWriter, r *http.Request) error {
	var req bridge.PreferredWalletRequest
	if err := readJSON(r, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return apperrors.BadRequestError(nil, "name is required")
	}
	wallet, err := h.service.SetPreferredWallet(r.Context(), req.Name)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, wallet)
	return nil
}

func (h *HTTP) connect(w http.ResponseWriter, r *http.Request) error {
	op, err := h.service.StartConnect(r.Context())
	if err != nil {
		return err
	}
	writeOperation(w, op)
	return nil
}

func (h *HTTP) disconnect(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Disconnect(r.Context()); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *HTTP) sendTransaction(w http.ResponseWriter, r *http.Request) error {
	var req tonconnect.TransactionRequest
	if err := readJSON(r, &req); err != nil {
		return err
	}
	op, err := h.service.StartTransaction(r.Context(), req)
	if err != nil {
		return err
	}
	writeOperation(w, op)
	return nil
}

func (h *HTTP) transfer(w http.ResponseWriter, r *http.Request) error {
	var req bridge.TransferRequest
	if err := readJSON(r, &req); err != nil {
		return err
	}
	op, err := h.service.StartTransfer(r.Context(), &req)
	if err != nil {
		return err
	}
	writeOperation(w, op)
	return nil
}

func (h *HTTP) signData(w http.ResponseWriter, r *http.Request) error {
	var req bridge.SignDataRequest
	if err := readJSON(r, &req); err != nil {
		return err
	}
	op, err := h.service.StartSignData(r.Context(), &req)
	if err != nil {
		return err
	}
	writeOperation(w, op)
	return nil
}

func (h *HTTP) operation(w http.ResponseWriter, r *http.Request) error {
	op, err := h.service.GetOperation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, op)
	return nil
}

func (h *HTTP) callback(w http.ResponseWriter, r *http.Request) error {
	var req bridge.CallbackRequest
	if err := readJSON(r, &req); err != nil {
		return err
	}
	handled, err := h.service.HandleCallback(r.Context(), req.URL)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, &bridge.CallbackResponse{Handled: handled})
	return nil
}

func (h *HTTP) balance(w http.ResponseWriter, r *http.Request) error {
	b, err := h.service.GetBalance(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, b)
	return nil
}

func (h *HTTP) transactionStatus(w http.ResponseWriter, r *http.Request) error {
	boc := r.URL.Query().Get("boc")
	if boc == "" {
		return apperrors.BadRequestError(nil, "boc is required")
	}
	st, err := h.service.GetTransactionStatus(r.Context(), boc)
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, st)
	return nil
}

// writeOperation answers 202 while the wallet has yet to reply.
func writeOperation(w http.ResponseWriter, op *bridge.Operation) {
	status := http.StatusOK
	if !op.Done() {
		status = http.StatusAccepted
	}
	apphttp.WriteJSON(w, status, op)
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	return nil
}
