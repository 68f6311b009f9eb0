package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/export"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/selection"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/session"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	r, err := render.New(render.Config{Width: 320, Height: 200}, zap.NewNop())
	require.NoError(t, err)
	return session.New(r, zap.NewNop())
}

func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	return newTestClientFor(t, newTestSession(t))
}

func newTestClientFor(t *testing.T, sess *session.Session) *http.Client {
	t.Helper()
	server := NewServer(ServerConfig{}, sess, sheetchart.DefaultOptions(), zap.NewNop())

	ln := fasthttputil.NewInmemoryListener()
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		_ = fasthttp.Serve(ln, server.Router().Handler)
	}()

	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return ln.Dial()
			},
		},
	}
}

func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Region", "Sales"},
		{"North", 10},
		{"South", 20},
		{"East", 15},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func do(t *testing.T, client *http.Client, method, path string, body []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, "http://test"+path, bytes.NewReader(body))
	require.NoError(t, err)
	res, err := client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, data
}

func upload(t *testing.T, client *http.Client) {
	t.Helper()
	res, _ := do(t, client, http.MethodPost, "/api/v1/dataset?name=sales.xlsx", workbookBytes(t))
	require.Equal(t, http.StatusCreated, res.StatusCode)
}

func TestHealth(t *testing.T) {
	client := newTestClient(t)
	res, body := do(t, client, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestDatasetLifecycle(t *testing.T) {
	client := newTestClient(t)

	res, _ := do(t, client, http.MethodGet, "/api/v1/dataset", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body := do(t, client, http.MethodPost, "/api/v1/dataset?name=sales.xlsx", workbookBytes(t))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, "sales.xlsx", summary["book_name"])
	assert.EqualValues(t, 3, summary["rows"])
	assert.Equal(t, "Region", summary["x_column"])
	assert.Equal(t, "Sales", summary["y_column"])

	res, _ = do(t, client, http.MethodGet, "/api/v1/dataset", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDatasetUploadErrors(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		path string
		body []byte
		want string
	}{
		{"/api/v1/dataset?name=notes.txt", []byte("hello"), "Please upload an Excel file (.xlsx or .xls)"},
		{"/api/v1/dataset?name=broken.xlsx", []byte("not a zip"), "Error parsing Excel file. Please make sure it's a valid Excel file."},
		{"/api/v1/dataset", nil, "name is required"},
	}
	for _, tt := range tests {
		res, body := do(t, client, http.MethodPost, tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, tt.path)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, tt.want, resp.Error, tt.path)
	}
}

func TestRejectedUploadKeepsPendingLoad(t *testing.T) {
	sess := newTestSession(t)
	client := newTestClientFor(t, sess)

	pending := sess.BeginLoad()
	res, _ := do(t, client, http.MethodPost, "/api/v1/dataset?name=broken.xlsx", []byte("not a zip"))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	wb, err := sheetchart.Decode(workbookBytes(t), "earlier.xlsx", sheetchart.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, pending.Complete(wb.Dataset), "a rejected upload must not supersede a load in flight")

	res, body := do(t, client, http.MethodGet, "/api/v1/dataset", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, "earlier.xlsx", summary["book_name"])
}

func TestSelectionAndPreview(t *testing.T) {
	client := newTestClient(t)
	upload(t, client)

	res, body := do(t, client, http.MethodPost, "/api/v1/selection?kind=line", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var snap selection.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "line", string(snap.Committed.Kind))
	assert.Equal(t, "Region", snap.Committed.X)

	res, body = do(t, client, http.MethodPost, "/api/v1/preview?kind=pie&y=Region", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "line", string(snap.Committed.Kind))
	assert.Equal(t, "pie", string(snap.Effective.Kind))
	assert.Equal(t, "Region", snap.Effective.Y)

	res, body = do(t, client, http.MethodDelete, "/api/v1/preview", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.True(t, snap.Preview.IsZero())
	assert.Equal(t, snap.Committed, snap.Effective)

	res, _ = do(t, client, http.MethodPost, "/api/v1/selection?kind=scatter", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSeries(t *testing.T) {
	client := newTestClient(t)

	_, body := do(t, client, http.MethodGet, "/api/v1/series", nil)
	assert.JSONEq(t, `{"series":null}`, string(body))

	upload(t, client)
	_, body = do(t, client, http.MethodGet, "/api/v1/series", nil)
	var resp struct {
		Series struct {
			Title  string    `json:"title"`
			Values []float64 `json:"values"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Sales vs Region", resp.Series.Title)
	assert.Equal(t, []float64{10, 20, 15}, resp.Series.Values)
}

func TestChartDownload(t *testing.T) {
	client := newTestClient(t)
	upload(t, client)

	tests := []struct {
		query       string
		contentType string
		fileName    string
		magic       string
	}{
		{"", "image/png", "chart.png", "\x89PNG"},
		{"?format=document&name=report", "application/pdf", "report.pdf", "%PDF"},
	}
	for _, tt := range tests {
		res, body := do(t, client, http.MethodGet, "/api/v1/chart"+tt.query, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, tt.query)
		assert.Equal(t, tt.contentType, res.Header.Get("Content-Type"))
		assert.Equal(t, fmt.Sprintf("attachment; filename=%q", tt.fileName), res.Header.Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(body, []byte(tt.magic)), tt.query)
	}

	res, _ := do(t, client, http.MethodGet, "/api/v1/chart?format=gif", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDataDownload(t *testing.T) {
	client := newTestClient(t)

	res, _ := do(t, client, http.MethodGet, "/api/v1/data", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	upload(t, client)
	res, body := do(t, client, http.MethodGet, "/api/v1/data", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, export.DataContentType, res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "filtered-data.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.DataSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Sales"}, rows[0])
	assert.Len(t, rows, 4)
}
