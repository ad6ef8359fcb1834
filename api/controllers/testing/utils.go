package testing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/require"
)

// PerformRequest Helper for performing requests in tests. A string body is
// sent as-is so malformed payloads can be tested; anything else is JSON encoded.
func PerformRequest(router http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	reqBody := &bytes.Buffer{}
	switch b := body.(type) {
	case nil:
	case string:
		reqBody.WriteString(b)
	default:
		if err := json.NewEncoder(reqBody).Encode(b); err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// DecodeJSON fails the test when the recorded body does not decode into v.
func DecodeJSON(t require.TestingT, res *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v), "body: %s", res.Body.String())
}
