package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deweydb/dewey/internal/apperr"
)

func TestHTTPInvoker_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotArgs map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotArgs)
		_, _ = w.Write([]byte(`[{"id":7,"name":"Billing","user_id":"u1","created_at":1,"updated_at":2,"icon_path":null}]`))
	}))
	defer srv.Close()

	inv, err := NewHTTPInvoker(srv.URL+"/", "tok", srv.Client())
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, inv.Invoke(context.Background(), CmdGetUserProjects, map[string]any{"userId": "u1"}, &out))

	assert.Equal(t, "/invoke/get_user_projects", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, map[string]any{"userId": "u1"}, gotArgs)
	require.Len(t, out, 1)
	assert.Equal(t, "Billing", out[0]["name"])
}

func TestHTTPInvoker_RejectionIsNormalizable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":"CUSTOM_ERROR","error":"{\"message\":\"Project not found\",\"category\":\"PROJECT\",\"severity\":\"Warning\",\"subcategory\":\"NotFound\"}"}`))
	}))
	defer srv.Close()

	inv, err := NewHTTPInvoker(srv.URL, "", nil)
	require.NoError(t, err)

	err = inv.Invoke(context.Background(), CmdCreateProject, nil, nil)

	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusUnprocessableEntity, rej.StatusCode)

	e := apperr.Normalize(err)
	assert.Equal(t, apperr.CategoryProject, e.Category)
	assert.Equal(t, apperr.SeverityWarning, e.Severity)
	assert.Equal(t, apperr.SubNotFound, e.Subcategory)
	assert.Equal(t, "Project not found", e.Message)
}

func TestHTTPInvoker_PlainTextRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "panicked in handler", http.StatusInternalServerError)
	}))
	defer srv.Close()

	inv, err := NewHTTPInvoker(srv.URL, "", nil)
	require.NoError(t, err)

	e := apperr.Normalize(inv.Invoke(context.Background(), CmdHasEncryptionKey, nil, nil))
	assert.Equal(t, apperr.CategoryUnknown, e.Category)
	assert.Equal(t, "panicked in handler", e.Message)
}

func TestHTTPInvoker_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	inv, err := NewHTTPInvoker(url, "", nil)
	require.NoError(t, err)

	err = inv.Invoke(context.Background(), CmdHasEncryptionKey, nil, nil)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.CategoryConnection, ae.Category)
	assert.Equal(t, apperr.SubConnectionFailed, ae.Subcategory)
}

func TestNewHTTPInvoker_RejectsBadScheme(t *testing.T) {
	_, err := NewHTTPInvoker("ftp://localhost", "", nil)
	assert.Error(t, err)
}
