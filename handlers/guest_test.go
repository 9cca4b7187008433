package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"guestdesk/config"
	"guestdesk/handlers"
	"guestdesk/models"
	"guestdesk/services/guest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGuests implements guest.Service with canned responses.
type stubGuests struct {
	sess    *models.GuestSession
	sessErr error

	report  *guest.SaveReport
	saveErr error

	closed []string
}

func (s *stubGuests) OpenSession(ctx context.Context, reservationNameID, pmsProfileID string, profileIndex int) (*models.GuestSession, error) {
	return s.sess, s.sessErr
}

func (s *stubGuests) Session(sessionID string) (*models.GuestSession, error) {
	if s.sess == nil || s.sess.SessionID != sessionID {
		return nil, guest.ErrSessionNotFound
	}
	return s.sess, nil
}

func (s *stubGuests) ApplyPatch(sessionID string, patch guest.RecordPatch) (*models.GuestSession, error) {
	return s.Session(sessionID)
}

func (s *stubGuests) Scan(ctx context.Context, sessionID string, side models.ScanSide) (*models.GuestSession, error) {
	return s.Session(sessionID)
}

func (s *stubGuests) Save(ctx context.Context, sessionID string) (*guest.SaveReport, error) {
	return s.report, s.saveErr
}

func (s *stubGuests) CloseSession(sessionID string) {
	s.closed = append(s.closed, sessionID)
}

func newRouter(guests guest.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hb := handlers.NewHandlerBundle(&config.Config{}, zap.NewNop(), guests, nil, nil)
	r := gin.New()
	r.POST("/api/reservations/:id/guests", hb.OpenGuestSession)
	r.GET("/api/guests/:sessionId", hb.GetGuestSession)
	r.POST("/api/guests/:sessionId/save", hb.SaveGuest)
	r.DELETE("/api/guests/:sessionId", hb.CloseGuestSession)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpenGuestSessionReturnsSession(t *testing.T) {
	t.Parallel()
	stub := &stubGuests{sess: &models.GuestSession{
		SessionID:         "S-1",
		ReservationNameID: "RES-1",
		Record:            models.GuestRecord{GivenName: "Jane", CanSave: true},
	}}
	r := newRouter(stub)

	w := doJSON(t, r, http.MethodPost, "/api/reservations/RES-1/guests", `{"profileIndex":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var sess models.GuestSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	assert.Equal(t, "S-1", sess.SessionID)
	assert.Equal(t, "Jane", sess.Record.GivenName)
}

func TestGetGuestSessionNotFound(t *testing.T) {
	t.Parallel()
	r := newRouter(&stubGuests{})

	w := doJSON(t, r, http.MethodGet, "/api/guests/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveGuestStatusCodes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		stub     *stubGuests
		wantCode int
	}{
		{
			name:     "success",
			stub:     &stubGuests{report: &guest.SaveReport{Success: true}},
			wantCode: http.StatusOK,
		},
		{
			name: "validation blocked",
			stub: &stubGuests{report: &guest.SaveReport{
				ValidationErrors: models.ValidationErrors{"givenName": "Given Name is Required"},
			}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "already saved",
			stub:     &stubGuests{saveErr: guest.ErrNotSavable},
			wantCode: http.StatusConflict,
		},
		{
			name:     "unknown session",
			stub:     &stubGuests{saveErr: guest.ErrSessionNotFound},
			wantCode: http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := newRouter(tc.stub)
			w := doJSON(t, r, http.MethodPost, "/api/guests/S-1/save", "{}")
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestCloseGuestSession(t *testing.T) {
	t.Parallel()
	stub := &stubGuests{}
	r := newRouter(stub)

	w := doJSON(t, r, http.MethodDelete, "/api/guests/S-9", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"S-9"}, stub.closed)
}
