package serializer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRespondJSONEncodingError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]any{"c": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHttpReader(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`[]`))
		case "/gone":
			w.WriteHeader(http.StatusGone)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	r := NewHttpReader(WithUserAgent("test-agent"), WithTotalTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, r.Client.Timeout)

	data, err := r.Read(srv.URL + "/ok")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, "test-agent", gotUA)

	_, err = r.Read(srv.URL + "/gone")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Read(srv.URL + "/broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = r.Read("")
	assert.Error(t, err)
}

func TestHttpReaderCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHttpReader().ReadWithContext(ctx, srv.URL)
	assert.Error(t, err)
}

func TestWithClient(t *testing.T) {
	c := &http.Client{}
	r := NewHttpReader(WithClient(c))
	assert.Same(t, c, r.Client)

	r = NewHttpReader(WithClient(nil))
	assert.NotNil(t, r.Client)
}
