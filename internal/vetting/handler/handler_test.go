package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"orgvet/internal/screening"
	"orgvet/internal/vetting"
	"orgvet/internal/vetting/handler/mocks"
)

func newRouter(t *testing.T) (*mocks.MockService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return svc, r
}

func cleanReport(name string) *vetting.Report {
	return &vetting.Report{
		ID:             uuid.NewString(),
		OrgName:        name,
		Sanctions:      screening.SanctionsResult{Found: false, Detail: "no SDN match for name"},
		Flags:          []vetting.Flag{},
		Recommendation: vetting.RecommendationClean,
		Summary: vetting.Summary{
			Headline:       "No watchlist flags found",
			Detail:         "2 of 3 sources checked, 0 flag(s) found",
			SourcesChecked: 2,
		},
		CheckedAt: time.Now(),
	}
}

func TestHandleVet(t *testing.T) {
	svc, router := newRouter(t)
	svc.EXPECT().
		Vet(gomock.Any(), vetting.Request{OrgName: "Harmless Bakery", EIN: "12-3456789", LookbackYears: 7}).
		Return(cleanReport("Harmless Bakery"), nil)

	body := bytes.NewBufferString(`{"orgName": "Harmless Bakery", "ein": "12-3456789", "lookbackYears": 7}`)
	req := httptest.NewRequest(http.MethodPost, "/vet", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var report vetting.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "Harmless Bakery", report.OrgName)
	assert.Equal(t, vetting.RecommendationClean, report.Recommendation)
	assert.NotEmpty(t, report.ID)
}

func TestHandleVetMissingOrgName(t *testing.T) {
	_, router := newRouter(t)

	body := bytes.NewBufferString(`{"ein": "12-3456789"}`)
	req := httptest.NewRequest(http.MethodPost, "/vet", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "orgName is required")
}

func TestHandleVetMalformedBody(t *testing.T) {
	_, router := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/vet", bytes.NewBufferString(`not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVetServiceFailure(t *testing.T) {
	svc, router := newRouter(t)
	svc.EXPECT().
		Vet(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("audit vetting determination: sink down"))

	body := bytes.NewBufferString(`{"orgName": "Harmless Bakery"}`)
	req := httptest.NewRequest(http.MethodPost, "/vet", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sink down")
}
