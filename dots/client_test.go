package dots_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"guestdesk/config"
	"guestdesk/dots"
	"guestdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		DotsURL:               baseURL,
		HotelDomain:           "demo.example.com",
		KioskID:               "KIOSK-01",
		Username:              "kiosk",
		Password:              "secret",
		SystemType:            "KIOSK",
		Language:              "E",
		LegNumber:             "1",
		ChainCode:             "CH",
		DestinationEntityID:   "HOTEL1",
		DestinationSystemType: "PMS",
	}
}

// capture records the last request path and body the fake server saw.
type capture struct {
	path string
	body []byte
}

func newServer(t *testing.T, status int, response string, cap *capture) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if cap != nil {
			cap.path = r.URL.Path
			cap.body = body
		}
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchReservationCarriesAuthEnvelope(t *testing.T) {
	t.Parallel()
	var cap capture
	srv := newServer(t, http.StatusOK,
		`{"result":true,"responseData":[{"ReservationNameID":"RES-1","ReservationNumber":"RN-1"}]}`, &cap)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	res, err := c.FetchReservation(context.Background(), "RES-1")
	require.NoError(t, err)
	assert.Equal(t, "RES-1", res.ReservationNameID)
	assert.Equal(t, "/api/ows/FetchReservation", cap.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(cap.body, &sent))
	assert.Equal(t, "demo.example.com", sent["hotelDomain"])
	assert.Equal(t, "KIOSK-01", sent["kioskID"])
	assert.Equal(t, "kiosk", sent["username"])
	assert.Equal(t, "1", sent["legNumber"])
	fetch, ok := sent["FetchBookingRequest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RES-1", fetch["ReservationNameID"])
}

func TestFetchReservationEmptyResponseIsDataShape(t *testing.T) {
	t.Parallel()
	srv := newServer(t, http.StatusOK, `{"result":true,"responseData":[]}`, nil)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := c.FetchReservation(context.Background(), "RES-404")
	require.Error(t, err)
	assert.Equal(t, dots.KindDataShape, dots.KindOf(err))
}

func TestServerErrorIsApplicationFailure(t *testing.T) {
	t.Parallel()
	srv := newServer(t, http.StatusInternalServerError, `boom`, nil)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := c.FetchReservation(context.Background(), "RES-1")
	require.Error(t, err)
	assert.Equal(t, dots.KindApplication, dots.KindOf(err))
}

func TestUnreachableServerIsTransportFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	_, err := c.FetchReservation(context.Background(), "RES-1")
	require.Error(t, err)
	assert.Equal(t, dots.KindTransport, dots.KindOf(err))
}

func TestPushReservationDetailsWrapsInRequestObject(t *testing.T) {
	t.Parallel()
	var cap capture
	srv := newServer(t, http.StatusOK, `{"result":true}`, &cap)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	err := c.PushReservationDetails(context.Background(),
		&models.Reservation{ReservationNameID: "RES-1"}, true)
	require.NoError(t, err)
	assert.Equal(t, "/api/local/PushReservationDetails", cap.path)

	var sent struct {
		RequestObject []map[string]any `json:"RequestObject"`
		SyncFromCloud *bool            `json:"SyncFromCloud"`
	}
	require.NoError(t, json.Unmarshal(cap.body, &sent))
	require.Len(t, sent.RequestObject, 1)
	assert.Equal(t, "RES-1", sent.RequestObject[0]["ReservationNameID"])
	require.NotNil(t, sent.SyncFromCloud)
	assert.True(t, *sent.SyncFromCloud)
}

func TestPushReservationDetailsRejectedResult(t *testing.T) {
	t.Parallel()
	srv := newServer(t, http.StatusOK, `{"result":false}`, nil)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	err := c.PushReservationDetails(context.Background(), &models.Reservation{}, false)
	require.Error(t, err)
	assert.Equal(t, dots.KindApplication, dots.KindOf(err))
}

func TestReservationRoundTripPreservesUnknownFields(t *testing.T) {
	t.Parallel()
	srv := newServer(t, http.StatusOK,
		`{"result":true,"responseData":[{"ReservationNameID":"RES-1","BrandNewField":{"nested":[1,2,3]}}]}`, nil)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	res, err := c.FetchReservation(context.Background(), "RES-1")
	require.NoError(t, err)

	var cap capture
	pushSrv := newServer(t, http.StatusOK, `{"result":true}`, &cap)
	pushClient := dots.NewClient(testConfig(pushSrv.URL), zap.NewNop())
	require.NoError(t, pushClient.PushReservationDetails(context.Background(), res, true))

	var sent struct {
		RequestObject []map[string]json.RawMessage `json:"RequestObject"`
	}
	require.NoError(t, json.Unmarshal(cap.body, &sent))
	require.Len(t, sent.RequestObject, 1)
	assert.JSONEq(t, `{"nested":[1,2,3]}`, string(sent.RequestObject[0]["BrandNewField"]),
		"fields the kiosk does not model still survive a re-push")
}

func TestCreateAccompanyingGuestReturnsNewProfileID(t *testing.T) {
	t.Parallel()
	var cap capture
	srv := newServer(t, http.StatusOK,
		`{"result":true,"responseData":{"PmsProfileID":"P-77"}}`, &cap)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	id, err := c.CreateAccompanyingGuest(context.Background(), dots.CreateGuestRequest{
		ReservationNumber: "RN-1",
		FirstName:         "Jane",
		LastName:          "Public",
	})
	require.NoError(t, err)
	assert.Equal(t, "P-77", id)
	// The integration layer's own spelling of this path.
	assert.Equal(t, "/api/ows/CreateAccompanyingGuset", cap.path)
}

func TestCreateAccompanyingGuestFalseResultIsNotAnError(t *testing.T) {
	t.Parallel()
	srv := newServer(t, http.StatusOK, `{"result":false}`, nil)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	id, err := c.CreateAccompanyingGuest(context.Background(), dots.CreateGuestRequest{})
	require.NoError(t, err)
	assert.Empty(t, id, "callers fall back to the identifier they already hold")
}

func TestUpdatePassportUsesLegacyPayloadKey(t *testing.T) {
	t.Parallel()
	var cap capture
	srv := newServer(t, http.StatusOK, `{"result":true}`, &cap)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	err := c.UpdatePassport(context.Background(), dots.ProfileUpdate{
		ProfileID:      "P-1",
		DocumentNumber: "AB123",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/ows/UpdatePassport", cap.path)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(cap.body, &sent))
	require.Contains(t, sent, "UpdateProileRequest", "the integration layer's own spelling")

	var update map[string]any
	require.NoError(t, json.Unmarshal(sent["UpdateProileRequest"], &update))
	assert.Equal(t, "P-1", update["profileID"])
	assert.Nil(t, update["addresses"], "contact blocks ride along as null")
}

func TestFetchProfileDocumentEmptyMeansNone(t *testing.T) {
	t.Parallel()
	srv := newServer(t, http.StatusOK, `{"result":true,"responseData":[]}`, nil)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	doc, err := c.FetchProfileDocument(context.Background(), "P-1", "RES-1")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestUpdateGuestReserveStatusKeepsUnsetSideNull(t *testing.T) {
	t.Parallel()
	var cap capture
	srv := newServer(t, http.StatusOK, `{"result":true}`, &cap)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	one := 1
	require.NoError(t, c.UpdateGuestReserveStatus(context.Background(), "P-1", "RES-1", &one, nil))

	var sent struct {
		RequestObject map[string]json.RawMessage `json:"RequestObject"`
	}
	require.NoError(t, json.Unmarshal(cap.body, &sent))
	assert.Equal(t, "1", string(sent.RequestObject["Checkin"]))
	assert.Equal(t, "null", string(sent.RequestObject["Checkout"]))
}

func TestGetNationalityListClearsLegNumber(t *testing.T) {
	t.Parallel()
	var cap capture
	srv := newServer(t, http.StatusOK,
		`{"result":true,"responseData":[{"CountryCode":"US","CountryName":"United States"}]}`, &cap)
	c := dots.NewClient(testConfig(srv.URL), zap.NewNop())

	countries, err := c.GetNationalityList(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "US", countries[0].CountryCode)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(cap.body, &sent))
	assert.Equal(t, "", sent["legNumber"])
	assert.Equal(t, "demo.example.com", sent["hotelDomain"])
}
