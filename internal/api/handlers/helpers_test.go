package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloo-solutions/chairside/internal/api/middleware"
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/stretchr/testify/require"
)

var testPrincipal = &domain.Principal{KeyID: "key-1", ShopID: "shop-456", UserRef: "sam", Role: domain.RoleBarber}

func requestWithPrincipal(method, url string, body []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.PrincipalKey, testPrincipal)
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}
