package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/features/command/activateasset"
	"github.com/availsys/asset-availability-go/features/command/extendassetlock"
	"github.com/availsys/asset-availability-go/features/command/lockasset"
	"github.com/availsys/asset-availability-go/features/command/registerasset"
	"github.com/availsys/asset-availability-go/features/command/unlockasset"
	"github.com/availsys/asset-availability-go/features/command/withdrawasset"
	"github.com/availsys/asset-availability-go/features/query/assetstatus"
	"github.com/availsys/asset-availability-go/httpapi"
	"github.com/availsys/asset-availability-go/testutil"
)

func setupAPI(t *testing.T) (*httpapi.API, *testutil.InMemoryAssetRepository, *testutil.FixedClock) {
	t.Helper()

	repository := testutil.NewInMemoryAssetRepository()
	outbox := testutil.NewCapturingEventOutbox()
	clock := testutil.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	api := httpapi.NewAPI(httpapi.Dependencies{
		RegisterAsset: registerasset.NewCommandHandler(repository, outbox, registerasset.WithClock(clock)),
		ActivateAsset: activateasset.NewCommandHandler(repository, outbox, activateasset.WithClock(clock)),
		WithdrawAsset: withdrawasset.NewCommandHandler(repository, outbox, withdrawasset.WithClock(clock)),
		LockAsset:     lockasset.NewCommandHandler(repository, outbox, lockasset.WithClock(clock)),
		ExtendLock:    extendassetlock.NewCommandHandler(repository, outbox, extendassetlock.WithClock(clock)),
		UnlockAsset:   unlockasset.NewCommandHandler(repository, outbox),
		AssetStatus:   assetstatus.NewQueryHandler(repository),
		Clock:         clock,
	})

	return api, repository, clock
}

func doRequest(t *testing.T, api *httpapi.API, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	recorder := httptest.NewRecorder()
	api.Routes().ServeHTTP(recorder, request)

	return recorder
}

func Test_RegisterAsset_Returns201(t *testing.T) {
	api, _, _ := setupAPI(t)

	response := doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)

	assert.Equal(t, http.StatusCreated, response.Code)
}

func Test_RegisterAsset_Returns409_WhenDuplicate(t *testing.T) {
	api, _, _ := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)

	response := doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)

	assert.Equal(t, http.StatusConflict, response.Code)
}

func Test_RegisterAsset_Returns400_WhenBodyIsInvalid(t *testing.T) {
	api, _, _ := setupAPI(t)

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"asset_id":`},
		{name: "empty asset id", body: `{"asset_id":""}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			response := doRequest(t, api, http.MethodPost, "/assets", tc.body)
			assert.Equal(t, http.StatusBadRequest, response.Code)
		})
	}
}

func Test_ActivateAsset_Returns200_ThenStatusIsAvailable(t *testing.T) {
	api, _, _ := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)

	response := doRequest(t, api, http.MethodPost, "/assets/A1/activations", "")
	assert.Equal(t, http.StatusOK, response.Code)

	status := doRequest(t, api, http.MethodGet, "/assets/A1", "")
	assert.Equal(t, http.StatusOK, status.Code)
	assert.Contains(t, status.Body.String(), `"status":"AVAILABLE"`)
}

func Test_ActivateAsset_Returns422_WhenAlreadyActivated(t *testing.T) {
	api, _, _ := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)
	doRequest(t, api, http.MethodPost, "/assets/A1/activations", "")

	response := doRequest(t, api, http.MethodPost, "/assets/A1/activations", "")

	assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
	assert.Contains(t, response.Body.String(), core.ReasonAssetAlreadyActivated)
}

func Test_ActivateAsset_Returns404_WhenAssetUnknown(t *testing.T) {
	api, _, _ := setupAPI(t)

	response := doRequest(t, api, http.MethodPost, "/assets/missing/activations", "")

	assert.Equal(t, http.StatusNotFound, response.Code)
}

func Test_WithdrawAsset_Returns200(t *testing.T) {
	api, _, _ := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)

	response := doRequest(t, api, http.MethodPost, "/assets/A1/withdrawals", "")
	assert.Equal(t, http.StatusOK, response.Code)

	status := doRequest(t, api, http.MethodGet, "/assets/A1", "")
	assert.Contains(t, status.Body.String(), `"status":"WITHDRAWN"`)
}

func Test_LockAsset_Flow(t *testing.T) {
	api, _, _ := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)
	doRequest(t, api, http.MethodPost, "/assets/A1/activations", "")

	// lock for one hour
	response := doRequest(t, api, http.MethodPost, "/assets/A1/locks", `{"owner_id":"O1","duration_seconds":3600}`)
	assert.Equal(t, http.StatusOK, response.Code)

	status := doRequest(t, api, http.MethodGet, "/assets/A1", "")
	assert.Contains(t, status.Body.String(), `"status":"LOCKED"`)
	assert.Contains(t, status.Body.String(), `"owner":"O1"`)
	assert.Contains(t, status.Body.String(), `"valid_until"`)

	// a second lock is rejected
	secondLock := doRequest(t, api, http.MethodPost, "/assets/A1/locks", `{"owner_id":"O2","duration_seconds":3600}`)
	assert.Equal(t, http.StatusUnprocessableEntity, secondLock.Code)
	assert.Contains(t, secondLock.Body.String(), core.ReasonAssetCurrentlyLocked)

	// unlocking with the wrong owner is rejected
	wrongUnlock := doRequest(t, api, http.MethodDelete, "/assets/A1/locks/O2", "")
	assert.Equal(t, http.StatusUnprocessableEntity, wrongUnlock.Code)
	assert.Contains(t, wrongUnlock.Body.String(), core.ReasonNoLockOnTheAsset)

	// unlocking with the holding owner succeeds
	unlock := doRequest(t, api, http.MethodDelete, "/assets/A1/locks/O1", "")
	assert.Equal(t, http.StatusOK, unlock.Code)

	finalStatus := doRequest(t, api, http.MethodGet, "/assets/A1", "")
	assert.Contains(t, finalStatus.Body.String(), `"status":"AVAILABLE"`)
}

func Test_LockAsset_Returns400_WhenDurationMissing(t *testing.T) {
	api, _, _ := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)
	doRequest(t, api, http.MethodPost, "/assets/A1/activations", "")

	response := doRequest(t, api, http.MethodPost, "/assets/A1/locks", `{"owner_id":"O1"}`)

	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func Test_ExtendLock_MakesLockIndefinite(t *testing.T) {
	api, _, clock := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)
	doRequest(t, api, http.MethodPost, "/assets/A1/activations", "")
	doRequest(t, api, http.MethodPost, "/assets/A1/locks", `{"owner_id":"O1","duration_seconds":3600}`)

	response := doRequest(t, api, http.MethodPut, "/assets/A1/locks/O1/indefinite", "")
	assert.Equal(t, http.StatusOK, response.Code)

	expectedValidUntil := clock.Now().Add(core.IndefiniteLockDuration).Format(time.RFC3339)
	status := doRequest(t, api, http.MethodGet, "/assets/A1", "")
	assert.Contains(t, status.Body.String(), expectedValidUntil)
}

func Test_ExtendLock_Returns422_WhenHeldByAnotherOwner(t *testing.T) {
	api, _, _ := setupAPI(t)
	doRequest(t, api, http.MethodPost, "/assets", `{"asset_id":"A1"}`)
	doRequest(t, api, http.MethodPost, "/assets/A1/activations", "")
	doRequest(t, api, http.MethodPost, "/assets/A1/locks", `{"owner_id":"O1","duration_seconds":3600}`)

	response := doRequest(t, api, http.MethodPut, "/assets/A1/locks/O2/indefinite", "")

	assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
	assert.Contains(t, response.Body.String(), core.ReasonNoLockDefinedForOwner)
}

func Test_GetAssetStatus_Returns404_WhenAssetUnknown(t *testing.T) {
	api, _, _ := setupAPI(t)

	response := doRequest(t, api, http.MethodGet, "/assets/missing", "")

	assert.Equal(t, http.StatusNotFound, response.Code)
}

func Test_RateLimitMiddleware_Returns429_WhenLimitExceeded(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := httpapi.RateLimitMiddleware(rate.NewLimiter(0, 0), next)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/assets/A1", nil))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}
