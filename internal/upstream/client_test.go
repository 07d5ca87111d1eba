package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestDo_AttachesBearerOnlyWhenTokenPresent(t *testing.T) {
	var gotAuth []string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Write([]byte(`{"statusCode":200,"success":true,"message":"ok"}`))
	})
	defer srv.Close()

	_, err := client.Do(context.Background(), http.MethodGet, "/creator", Options{Token: "tok-1"})
	require.NoError(t, err)
	_, err = client.Do(context.Background(), http.MethodGet, "/creator", Options{})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth[0])
	assert.Empty(t, gotAuth[1], "header must be omitted entirely without a token")
}

func TestDo_OmitsEmptyQueryParams(t *testing.T) {
	var gotQuery url.Values
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"statusCode":200,"success":true}`))
	})
	defer srv.Close()

	q := url.Values{}
	q.Set("page", "1")
	q.Set("limit", "10")
	q.Set("searchTerm", "")
	_, err := client.Do(context.Background(), http.MethodGet, "/creator", Options{Query: q})
	require.NoError(t, err)

	assert.Equal(t, "1", gotQuery.Get("page"))
	_, present := gotQuery["searchTerm"]
	assert.False(t, present, "empty searchTerm must not be sent")
}

func TestDo_NonOKCarriesServerMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"statusCode":409,"success":false,"message":"email already in use"}`))
	})
	defer srv.Close()

	_, err := client.Do(context.Background(), http.MethodPost, "/agent/create", Options{JSON: map[string]string{}})
	var rf *RequestFailed
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusConflict, rf.Status)
	assert.Equal(t, "email already in use", rf.Message)
}

func TestDo_NonOKFallsBackToGenericMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	})
	defer srv.Close()

	_, err := client.Do(context.Background(), http.MethodGet, "/trip", Options{})
	var rf *RequestFailed
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, "request failed with status 500", rf.Message)
}

func TestDo_NetworkFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // connection refused from here on

	_, err := client.Do(context.Background(), http.MethodGet, "/creator", Options{})
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestDo_MultipartDataFieldStyle(t *testing.T) {
	var gotData string
	var gotImage []byte
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotData = r.FormValue("data")
		f, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 3)
		f.Read(buf)
		gotImage = buf
		w.Write([]byte(`{"statusCode":200,"success":true,"message":"Trip created"}`))
	})
	defer srv.Close()

	env, err := client.Do(context.Background(), http.MethodPost, "/trip/create", Options{
		Form: &Form{
			Style:  StyleDataField,
			Fields: map[string]any{"title": "Bali"},
			Files:  []File{{Field: "image", Name: "trip.jpg", Content: []byte{1, 2, 3}}},
		},
		Token: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, "Trip created", env.Message)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(gotData), &payload))
	assert.Equal(t, "Bali", payload["title"])
	assert.Equal(t, []byte{1, 2, 3}, gotImage)
}

func TestDo_MultipartFlatStyle(t *testing.T) {
	var gotName, gotSocial string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("fullName")
		gotSocial = r.FormValue("socialMedia")
		w.Write([]byte(`{"statusCode":200,"success":true}`))
	})
	defer srv.Close()

	_, err := client.Do(context.Background(), http.MethodPost, "/creator/create", Options{
		Form: &Form{
			Style: StyleFlat,
			Fields: map[string]any{
				"fullName":    "Jane Doe",
				"socialMedia": []map[string]any{{"platform": "instagram", "link": "https://ig.example/jane"}},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", gotName)
	var social []map[string]any
	require.NoError(t, json.Unmarshal([]byte(gotSocial), &social))
	assert.Equal(t, "instagram", social[0]["platform"])
}

func TestEnvelopePage_NormalizesBothNestings(t *testing.T) {
	nested := &Envelope{Data: json.RawMessage(`{"data":{"meta":{"page":1,"limit":10,"total":25},"data":[{"_id":"a"}]}}`)}
	flat := &Envelope{Data: json.RawMessage(`{"meta":{"page":2,"limit":10,"total":25},"data":[{"_id":"b"}]}`)}

	p1, err := nested.Page()
	require.NoError(t, err)
	assert.Equal(t, 25, p1.Meta.Total)
	assert.Len(t, p1.Items, 1)

	p2, err := flat.Page()
	require.NoError(t, err)
	assert.Equal(t, 2, p2.Meta.Page)
	assert.Len(t, p2.Items, 1)
}

func TestEnvelopePage_BareArraySynthesizesMeta(t *testing.T) {
	env := &Envelope{Data: json.RawMessage(`[{"_id":"a"},{"_id":"b"}]`)}
	p, err := env.Page()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Meta.Total)
	assert.Len(t, p.Items, 2)
}
