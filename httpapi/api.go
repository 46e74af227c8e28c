package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/features/command/activateasset"
	"github.com/availsys/asset-availability-go/features/command/extendassetlock"
	"github.com/availsys/asset-availability-go/features/command/lockasset"
	"github.com/availsys/asset-availability-go/features/command/registerasset"
	"github.com/availsys/asset-availability-go/features/command/unlockasset"
	"github.com/availsys/asset-availability-go/features/command/withdrawasset"
	"github.com/availsys/asset-availability-go/features/query/assetstatus"
	"github.com/availsys/asset-availability-go/shell"
)

const (
	pathValueAssetID = "assetID"
	pathValueOwnerID = "ownerID"

	maxRequestBodyBytes = 1 << 16
)

// Dependencies bundles everything the API needs. All command handler fields
// are required; Clock and Logger default to the system clock and no logging.
type Dependencies struct {
	RegisterAsset shell.CommandHandler[registerasset.Command]
	ActivateAsset shell.CommandHandler[activateasset.Command]
	WithdrawAsset shell.CommandHandler[withdrawasset.Command]
	LockAsset     shell.CommandHandler[lockasset.Command]
	ExtendLock    shell.CommandHandler[extendassetlock.Command]
	UnlockAsset   shell.CommandHandler[unlockasset.Command]
	AssetStatus   assetstatus.QueryHandler
	Clock         shell.Clock
	Logger        shell.ContextualLogger
}

// API is the HTTP surface of the availability service.
type API struct {
	deps Dependencies
}

// NewAPI creates the API from its dependencies.
func NewAPI(deps Dependencies) *API {
	if deps.Clock == nil {
		deps.Clock = shell.SystemClock{}
	}

	return &API{deps: deps}
}

// Routes returns the request multiplexer with all endpoints registered.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /assets", a.handleRegisterAsset)
	mux.HandleFunc("GET /assets/{assetID}", a.handleAssetStatus)
	mux.HandleFunc("POST /assets/{assetID}/activations", a.handleActivateAsset)
	mux.HandleFunc("POST /assets/{assetID}/withdrawals", a.handleWithdrawAsset)
	mux.HandleFunc("POST /assets/{assetID}/locks", a.handleLockAsset)
	mux.HandleFunc("PUT /assets/{assetID}/locks/{ownerID}/indefinite", a.handleExtendLock)
	mux.HandleFunc("DELETE /assets/{assetID}/locks/{ownerID}", a.handleUnlockAsset)

	return mux
}

type registerAssetRequest struct {
	AssetID string `json:"asset_id"`
}

type lockAssetRequest struct {
	OwnerID         string `json:"owner_id"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type rejectionResponse struct {
	Reason string `json:"reason"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type assetStatusResponse struct {
	AssetID    string     `json:"asset_id"`
	Status     string     `json:"status"`
	Owner      string     `json:"owner,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	Version    uint       `json:"version"`
}

func (a *API) handleRegisterAsset(w http.ResponseWriter, r *http.Request) {
	var request registerAssetRequest
	if !a.decodeBody(w, r, &request) {
		return
	}

	if request.AssetID == "" {
		a.writeError(w, http.StatusBadRequest, "asset_id must not be empty")
		return
	}

	command := registerasset.BuildCommand(core.AssetIDString(request.AssetID))

	result, err := a.deps.RegisterAsset.Handle(r.Context(), command)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	a.writeCommandOutcome(w, r, result, http.StatusCreated)
}

func (a *API) handleActivateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := core.AssetIDString(r.PathValue(pathValueAssetID))

	result, err := a.deps.ActivateAsset.Handle(r.Context(), activateasset.BuildCommand(assetID))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	a.writeCommandOutcome(w, r, result, http.StatusOK)
}

func (a *API) handleWithdrawAsset(w http.ResponseWriter, r *http.Request) {
	assetID := core.AssetIDString(r.PathValue(pathValueAssetID))

	result, err := a.deps.WithdrawAsset.Handle(r.Context(), withdrawasset.BuildCommand(assetID))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	a.writeCommandOutcome(w, r, result, http.StatusOK)
}

func (a *API) handleLockAsset(w http.ResponseWriter, r *http.Request) {
	assetID := core.AssetIDString(r.PathValue(pathValueAssetID))

	var request lockAssetRequest
	if !a.decodeBody(w, r, &request) {
		return
	}

	if request.OwnerID == "" {
		a.writeError(w, http.StatusBadRequest, "owner_id must not be empty")
		return
	}

	if request.DurationSeconds <= 0 {
		a.writeError(w, http.StatusBadRequest, "duration_seconds must be positive")
		return
	}

	command := lockasset.BuildCommand(
		assetID,
		core.OwnerIDString(request.OwnerID),
		time.Duration(request.DurationSeconds)*time.Second,
	)

	result, err := a.deps.LockAsset.Handle(r.Context(), command)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	a.writeCommandOutcome(w, r, result, http.StatusOK)
}

func (a *API) handleExtendLock(w http.ResponseWriter, r *http.Request) {
	assetID := core.AssetIDString(r.PathValue(pathValueAssetID))
	ownerID := core.OwnerIDString(r.PathValue(pathValueOwnerID))

	result, err := a.deps.ExtendLock.Handle(r.Context(), extendassetlock.BuildCommand(assetID, ownerID))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	a.writeCommandOutcome(w, r, result, http.StatusOK)
}

func (a *API) handleUnlockAsset(w http.ResponseWriter, r *http.Request) {
	assetID := core.AssetIDString(r.PathValue(pathValueAssetID))
	ownerID := core.OwnerIDString(r.PathValue(pathValueOwnerID))

	command := unlockasset.BuildCommand(assetID, ownerID, a.deps.Clock.Now())

	result, err := a.deps.UnlockAsset.Handle(r.Context(), command)
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	a.writeCommandOutcome(w, r, result, http.StatusOK)
}

func (a *API) handleAssetStatus(w http.ResponseWriter, r *http.Request) {
	assetID := core.AssetIDString(r.PathValue(pathValueAssetID))

	status, err := a.deps.AssetStatus.Handle(r.Context(), assetstatus.BuildQuery(assetID))
	if err != nil {
		a.writeFailure(w, r, err)
		return
	}

	response := assetStatusResponse{
		AssetID: string(status.AssetID),
		Status:  status.Status,
		Owner:   string(status.Owner),
		Version: status.Version,
	}

	if status.Status == assetstatus.StatusLocked {
		validUntil := status.ValidUntil
		response.ValidUntil = &validUntil
	}

	a.writeJSON(w, http.StatusOK, response)
}

// decodeBody decodes the request body into target and writes a 400 response
// on malformed input. It reports whether decoding succeeded.
func (a *API) decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	body, readErr := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if readErr != nil {
		a.writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	if unmarshalErr := jsoniter.ConfigFastest.Unmarshal(body, target); unmarshalErr != nil {
		a.writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}

	return true
}

// writeCommandOutcome maps a handler result to the wire: rejections become
// 422 responses with the reason code, successes the given status.
func (a *API) writeCommandOutcome(w http.ResponseWriter, r *http.Request, result shell.HandlerResult, successStatus int) {
	if result.Rejected {
		a.logInfo(r.Context(), "command rejected", "reason", result.RejectionReason)
		a.writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{Reason: result.RejectionReason})
		return
	}

	w.WriteHeader(successStatus)
}

// writeFailure maps infrastructure errors to status codes.
func (a *API) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shell.ErrAssetNotFound):
		a.writeError(w, http.StatusNotFound, "asset not found")

	case errors.Is(err, shell.ErrAssetAlreadyRegistered):
		a.writeError(w, http.StatusConflict, "asset already registered")

	case errors.Is(err, shell.ErrConcurrencyConflict):
		a.writeError(w, http.StatusConflict, "concurrent modification, retry the request")

	default:
		a.logError(r.Context(), "request failed", "error", err.Error())
		a.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, errorResponse{Error: message})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (a *API) logInfo(ctx context.Context, msg string, args ...any) {
	if a.deps.Logger != nil {
		a.deps.Logger.InfoContext(ctx, msg, args...)
	}
}

func (a *API) logError(ctx context.Context, msg string, args ...any) {
	if a.deps.Logger != nil {
		a.deps.Logger.ErrorContext(ctx, msg, args...)
	}
}
